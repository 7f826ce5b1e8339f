// Package schema holds the declarative validation schemas for the pipeline's
// data sources. A schema maps column names to column specifications (target
// type, optional value remapping, optional choice set) and is read-only
// configuration: the orchestrator resolves it once per run and passes it into
// the validation engine.
package schema

import (
	"fmt"
	"sort"
)

// ColumnType is the declared target type of a column.
type ColumnType string

const (
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeText    ColumnType = "text"
	TypeDate    ColumnType = "date"
)

// Known data source names.
const (
	SourceSales = "sales"
	SourceCRM   = "crm"
)

// ColumnSpec describes how one column is coerced and constrained.
type ColumnSpec struct {
	// Type is the target type every cell is coerced to.
	Type ColumnType `json:"type"`

	// ValueMapping maps a canonical value to the raw synonym strings that
	// must be rewritten to it. The canonical value always maps to itself.
	ValueMapping map[string][]string `json:"value_mapping,omitempty"`

	// Choices, when non-empty, is the set of canonical values the column
	// may contain after coercion and remapping.
	Choices []string `json:"choices,omitempty"`
}

// HasChoices reports whether the spec declares a choice set.
func (s ColumnSpec) HasChoices() bool { return len(s.Choices) > 0 }

// Schema maps column name to specification for one data source.
type Schema map[string]ColumnSpec

// ColumnNames returns the schema's column names sorted for deterministic
// iteration. Column results are independent, so order never affects output,
// but stable iteration keeps logs and first-error reporting reproducible.
func (s Schema) ColumnNames() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Registry holds one schema per data source.
type Registry map[string]Schema

// Get returns the schema for the named source.
func (r Registry) Get(source string) (Schema, error) {
	s, ok := r[source]
	if !ok {
		return nil, fmt.Errorf("no schema registered for source %q", source)
	}
	return s, nil
}
