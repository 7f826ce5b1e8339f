package validation

import (
	"context"
	"fmt"
	"log/slog"

	"salescrm/internal/schema"
	"salescrm/internal/table"
)

// TableValidator applies column validators across a whole table per its
// schema.
type TableValidator struct {
	logger *slog.Logger
}

// NewTableValidator creates a table validator. A nil logger falls back to
// slog.Default().
func NewTableValidator(logger *slog.Logger) *TableValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableValidator{logger: logger}
}

// Validate replaces every schema column of t with its validated values and
// returns t. Columns present in the table but absent from the schema pass
// through unmodified. The first failing column aborts the table: no result
// is returned and the caller must discard the run. Column results are
// independent, so the (sorted) iteration order never changes the output,
// only which error surfaces first.
func (v *TableValidator) Validate(ctx context.Context, sch schema.Schema, t *table.Table) (*table.Table, error) {
	for _, column := range sch.ColumnNames() {
		if !t.HasColumn(column) {
			err := fmt.Errorf("schema column %q not present in table", column)
			v.logger.ErrorContext(ctx, "table validation failed",
				"column", column,
				"error", err,
			)
			return nil, err
		}

		validator, err := Select(column, sch[column])
		if err != nil {
			v.logger.ErrorContext(ctx, "table validation failed",
				"column", column,
				"error", err,
			)
			return nil, err
		}

		validated, err := validator.Validate(t.Column(column))
		if err != nil {
			v.logger.ErrorContext(ctx, "table validation failed",
				"column", column,
				"rows", t.Len(),
				"error", err,
			)
			return nil, err
		}

		if err := t.SetColumn(column, validated); err != nil {
			return nil, err
		}
	}
	return t, nil
}
