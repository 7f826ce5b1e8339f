// Package table holds the row/column shape shared by readers, validators
// and aggregators: an ordered list of records with a stable column order.
package table

import (
	"fmt"
	"sort"
)

// Record is one row of a table: column name to cell value. Raw cells hold
// strings or numbers as produced by a reader; validated cells hold the
// coerced Go value for their column (string, int64, float64 or time.Time).
type Record map[string]any

// Table is an ordered sequence of records sharing one column set. The column
// order is the order columns were first seen, so exports stay deterministic.
type Table struct {
	columns []string
	rows    []Record
}

// New creates a table with an explicit column order. Rows added later may
// introduce additional columns, which are appended to the order.
func New(columns ...string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// FromRecords builds a table from rows, deriving the column order from the
// columnOrder argument first and then from first appearance in the rows.
func FromRecords(rows []Record, columnOrder ...string) *Table {
	t := New(columnOrder...)
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Columns returns the column names in order. The returned slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has seen the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Rows returns the underlying rows. Callers must not reorder the slice.
func (t *Table) Rows() []Record { return t.rows }

// Row returns the record at index i.
func (t *Table) Row(i int) Record { return t.rows[i] }

// Append adds one record, registering any columns not seen before. New
// columns coming from the record map are registered in sorted order so the
// overall column order never depends on map iteration.
func (t *Table) Append(r Record) {
	var unseen []string
	for name := range r {
		if !t.HasColumn(name) {
			unseen = append(unseen, name)
		}
	}
	sort.Strings(unseen)
	for _, name := range unseen {
		t.addColumn(name)
	}
	t.rows = append(t.rows, r)
}

// AppendTable appends every row of other, preserving the receiver's column
// order and registering columns only other has. Used to concatenate
// per-file tables into one batch.
func (t *Table) AppendTable(other *Table) {
	for _, c := range other.columns {
		if !t.HasColumn(c) {
			t.addColumn(c)
		}
	}
	t.rows = append(t.rows, other.rows...)
}

// Column extracts the named column as a value slice, one entry per row.
// Rows missing the column yield a nil entry.
func (t *Table) Column(name string) []any {
	out := make([]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[name]
	}
	return out
}

// SetColumn replaces the named column with values, one per row. The length
// must match the row count; other columns are untouched.
func (t *Table) SetColumn(name string, values []any) error {
	if len(values) != len(t.rows) {
		return fmt.Errorf("set column %q: %d values for %d rows", name, len(values), len(t.rows))
	}
	if !t.HasColumn(name) {
		t.addColumn(name)
	}
	for i, r := range t.rows {
		r[name] = values[i]
	}
	return nil
}

func (t *Table) addColumn(name string) {
	t.columns = append(t.columns, name)
}
