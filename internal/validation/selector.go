package validation

import (
	apperrors "salescrm/internal/errors"
	"salescrm/internal/schema"
)

// Select returns the validator for a column specification. Decision order:
// a declared choice set wins, then the scalar types, then date. Any other
// target type is an explicit error.
func Select(column string, spec schema.ColumnSpec) (ColumnValidator, error) {
	if spec.HasChoices() {
		return newChoice(column, spec)
	}

	switch spec.Type {
	case schema.TypeInteger, schema.TypeFloat, schema.TypeText:
		return newScalar(column, spec)
	case schema.TypeDate:
		return &dateValidator{column: column}, nil
	}
	return nil, &apperrors.UnsupportedTypeError{Column: column, TargetType: string(spec.Type)}
}
