// Package aggregate implements the pipeline's time-series engine: monthly
// market-share fractions for the tracked product, per-event-type activity
// counts, and trailing moving averages (unweighted and weighted) over
// configurable window sizes.
package aggregate

import (
	"sort"
	"time"
)

// Kind tells the exporter how to print a column's cells.
type Kind int

const (
	// KindCount cells are whole numbers and print without decimals.
	KindCount Kind = iota
	// KindRatio cells are fractions/averages and print at the configured
	// decimal precision.
	KindRatio
)

// Column is one named series of a frame. Cells are keyed by the frame's
// date index; an absent key is a missing cell (insufficient window history,
// or a date the series has no value for after an outer join).
type Column struct {
	Name  string
	Kind  Kind
	cells map[time.Time]float64
}

// Set stores a cell value for the given date.
func (c *Column) Set(date time.Time, value float64) {
	c.cells[date] = value
}

// Get returns the cell value for the given date and whether it exists.
func (c *Column) Get(date time.Time) (float64, bool) {
	v, ok := c.cells[date]
	return v, ok
}

// Frame is a table indexed by date with one or more numeric columns. The
// index holds exactly the dates present in the input: there is no
// gap-filling.
type Frame struct {
	index   []time.Time
	columns []*Column
}

// NewFrame creates a frame over the given index. The index is deduplicated
// and sorted ascending.
func NewFrame(index []time.Time) *Frame {
	seen := make(map[time.Time]struct{}, len(index))
	var idx []time.Time
	for _, d := range index {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		idx = append(idx, d)
	}
	sort.Slice(idx, func(i, j int) bool { return idx[i].Before(idx[j]) })
	return &Frame{index: idx}
}

// Index returns the frame's dates in ascending order.
func (f *Frame) Index() []time.Time { return f.index }

// Columns returns the frame's columns in insertion order.
func (f *Frame) Columns() []*Column { return f.columns }

// AddColumn appends an empty column and returns it.
func (f *Frame) AddColumn(name string, kind Kind) *Column {
	col := &Column{Name: name, Kind: kind, cells: make(map[time.Time]float64, len(f.index))}
	f.columns = append(f.columns, col)
	return col
}

// Column returns the named column, or nil if the frame has no such column.
func (f *Frame) Column(name string) *Column {
	for _, c := range f.columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Series returns the column's values over the frame index in order. Every
// index date must have a cell; the second return value reports whether it
// did.
func (f *Frame) Series(name string) ([]float64, bool) {
	col := f.Column(name)
	if col == nil {
		return nil, false
	}
	out := make([]float64, len(f.index))
	for i, d := range f.index {
		v, ok := col.Get(d)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// Merge outer-joins two frames on their date index: the result's index is
// the sorted union, its columns are a's columns followed by b's, and cells
// keep their original presence (a date one side never saw stays missing for
// that side's columns).
func Merge(a, b *Frame) *Frame {
	union := make([]time.Time, 0, len(a.index)+len(b.index))
	union = append(union, a.index...)
	union = append(union, b.index...)

	merged := NewFrame(union)
	for _, src := range append(append([]*Column{}, a.columns...), b.columns...) {
		dst := merged.AddColumn(src.Name, src.Kind)
		for date, v := range src.cells {
			dst.Set(date, v)
		}
	}
	return merged
}
