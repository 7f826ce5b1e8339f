package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "salescrm/internal/errors"
	"salescrm/internal/schema"
)

func TestScalarCoercion(t *testing.T) {
	tests := []struct {
		name    string
		spec    schema.ColumnSpec
		in      []any
		want    []any
		wantErr bool
	}{
		{
			name: "integers from strings and json numbers",
			spec: schema.ColumnSpec{Type: schema.TypeInteger},
			in:   []any{"10", float64(30), int64(7), " 42 "},
			want: []any{int64(10), int64(30), int64(7), int64(42)},
		},
		{
			name:    "fractional number is not an integer",
			spec:    schema.ColumnSpec{Type: schema.TypeInteger},
			in:      []any{float64(10.5)},
			wantErr: true,
		},
		{
			name:    "word is not an integer",
			spec:    schema.ColumnSpec{Type: schema.TypeInteger},
			in:      []any{"10", "ten"},
			wantErr: true,
		},
		{
			name: "floats",
			spec: schema.ColumnSpec{Type: schema.TypeFloat},
			in:   []any{"0.25", float64(1), int64(3)},
			want: []any{0.25, 1.0, 3.0},
		},
		{
			name: "text keeps strings and stringifies numbers",
			spec: schema.ColumnSpec{Type: schema.TypeText},
			in:   []any{"acct-1", int64(12), float64(1.5)},
			want: []any{"acct-1", "12", "1.5"},
		},
		{
			name:    "nil cell fails coercion",
			spec:    schema.ColumnSpec{Type: schema.TypeInteger},
			in:      []any{nil},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := newScalar("col", tt.spec)
			require.NoError(t, err)

			got, err := v.Validate(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsTypeCoercion(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScalarRemapping(t *testing.T) {
	spec := schema.ColumnSpec{
		Type:         schema.TypeText,
		ValueMapping: map[string][]string{"A": {"a1", " A"}},
	}
	v, err := newScalar("product_name", spec)
	require.NoError(t, err)

	got, err := v.Validate([]any{"a1", " A", "A"})
	require.NoError(t, err)
	assert.Equal(t, []any{"A", "A", "A"}, got)
}

func TestScalarRemappingPassesUnmappedThrough(t *testing.T) {
	spec := schema.ColumnSpec{
		Type:         schema.TypeText,
		ValueMapping: map[string][]string{"A": {"a1"}},
	}
	v, err := newScalar("product_name", spec)
	require.NoError(t, err)

	got, err := v.Validate([]any{"a1", "mystery"})
	require.NoError(t, err)
	assert.Equal(t, []any{"A", "mystery"}, got)
}

func TestScalarRemappingConflictFailsFast(t *testing.T) {
	spec := schema.ColumnSpec{
		Type: schema.TypeText,
		ValueMapping: map[string][]string{
			"A": {"shared"},
			"B": {"shared"},
		},
	}
	_, err := newScalar("product_name", spec)
	require.Error(t, err)

	var conflict *apperrors.MappingConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "shared", conflict.Synonym)
}

func TestDateValidator(t *testing.T) {
	v := &dateValidator{column: "date"}

	got, err := v.Validate([]any{"2024-03-01", "2024-03-01 10:30:00", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), got[2])

	_, err = v.Validate([]any{"not a date"})
	require.Error(t, err)
	assert.True(t, apperrors.IsTypeCoercion(err))
}

func TestChoiceValidator(t *testing.T) {
	spec := schema.ColumnSpec{
		Type:    schema.TypeText,
		Choices: []string{"A", "B"},
	}

	t.Run("subset passes", func(t *testing.T) {
		v, err := newChoice("col", spec)
		require.NoError(t, err)

		got, err := v.Validate([]any{"A", "B", "A"})
		require.NoError(t, err)
		assert.Equal(t, []any{"A", "B", "A"}, got)
	})

	t.Run("violation names the offending value", func(t *testing.T) {
		v, err := newChoice("col", spec)
		require.NoError(t, err)

		_, err = v.Validate([]any{"A", "B", "C"})
		require.Error(t, err)

		var violation *apperrors.ChoiceViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, []string{"C"}, violation.Violations)
		assert.Contains(t, err.Error(), "C")
	})

	t.Run("remapping runs before the choice check", func(t *testing.T) {
		mapped := schema.ColumnSpec{
			Type:         schema.TypeText,
			Choices:      []string{"A", "B"},
			ValueMapping: map[string][]string{"A": {"a-raw"}},
		}
		v, err := newChoice("col", mapped)
		require.NoError(t, err)

		got, err := v.Validate([]any{"a-raw", "B"})
		require.NoError(t, err)
		assert.Equal(t, []any{"A", "B"}, got)
	})
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		spec schema.ColumnSpec
		want any
	}{
		{"choices win over type", schema.ColumnSpec{Type: schema.TypeText, Choices: []string{"A"}}, &choiceValidator{}},
		{"integer", schema.ColumnSpec{Type: schema.TypeInteger}, &scalarValidator{}},
		{"float", schema.ColumnSpec{Type: schema.TypeFloat}, &scalarValidator{}},
		{"text", schema.ColumnSpec{Type: schema.TypeText}, &scalarValidator{}},
		{"date", schema.ColumnSpec{Type: schema.TypeDate}, &dateValidator{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select("col", tt.spec)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}

	t.Run("unknown type is an explicit error", func(t *testing.T) {
		_, err := Select("col", schema.ColumnSpec{Type: "timestamp"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUnsupportedType(err))
	})
}
