package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessagesCarryContext(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains []string
	}{
		{
			name:     "type coercion names value and target type",
			err:      &TypeCoercionError{Column: "unit_sales", Value: "ten", TargetType: "integer"},
			contains: []string{"unit_sales", "ten", "integer"},
		},
		{
			name:     "choice violation lists offending values",
			err:      &ChoiceViolationError{Column: "event_type", Violations: []string{"webinar"}, Choices: []string{"f2f", "group call"}},
			contains: []string{"event_type", "webinar", "f2f"},
		},
		{
			name:     "unsupported type names the type",
			err:      &UnsupportedTypeError{Column: "date", TargetType: "timestamp"},
			contains: []string{"date", "timestamp"},
		},
		{
			name:     "mapping conflict names both canonicals",
			err:      &MappingConflictError{Column: "product_name", Synonym: "glob", Canonical: [2]string{"Globberin", "Vorbulon"}},
			contains: []string{"glob", "Globberin", "Vorbulon"},
		},
		{
			name:     "unsupported format names the path",
			err:      &UnsupportedSourceFormatError{Path: "sales/drop.txt", Expected: []string{".json", ".xlsx"}},
			contains: []string{"sales/drop.txt", ".json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, want := range tt.contains {
				assert.Contains(t, tt.err.Error(), want)
			}
		})
	}
}

func TestClassifiersMatchWrappedErrors(t *testing.T) {
	coercion := fmt.Errorf("validate sales: %w", &TypeCoercionError{Column: "date", Value: "n/a", TargetType: "date"})
	choice := fmt.Errorf("validate crm: %w", &ChoiceViolationError{Column: "event_type", Violations: []string{"C"}})

	assert.True(t, IsTypeCoercion(coercion))
	assert.False(t, IsTypeCoercion(choice))
	assert.True(t, IsChoiceViolation(choice))
	assert.False(t, IsChoiceViolation(coercion))
	assert.True(t, IsUnsupportedType(fmt.Errorf("x: %w", &UnsupportedTypeError{Column: "c"})))
	assert.True(t, IsUnsupportedSourceFormat(fmt.Errorf("x: %w", &UnsupportedSourceFormatError{Path: "p"})))
}
