package validation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "salescrm/internal/errors"
	"salescrm/internal/schema"
)

// ColumnValidator coerces and constrains one column of raw values. The two
// steps always run in order: type coercion first, value remapping second.
// Validators are pure: they return a new value slice and never keep state
// between calls.
type ColumnValidator interface {
	Validate(values []any) ([]any, error)
}

// dateLayouts are the accepted input formats for date columns, tried in
// order. The first two cover the sales and CRM drops; the rest cover
// timestamps seen in upstream exports.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// scalarValidator handles the integer, float and text target types. One
// implementation covers all three: the coercion differs per type but the
// remapping step is shared.
type scalarValidator struct {
	column  string
	spec    schema.ColumnSpec
	mapping map[string]string // raw synonym -> canonical, canonical -> itself
}

// newScalar builds a scalar validator, precomputing the reverse remapping
// lookup. A raw synonym claimed by two different canonical values is a
// configuration error and fails construction.
func newScalar(column string, spec schema.ColumnSpec) (*scalarValidator, error) {
	v := &scalarValidator{column: column, spec: spec}
	if len(spec.ValueMapping) == 0 {
		return v, nil
	}

	v.mapping = make(map[string]string, len(spec.ValueMapping)*2)
	canonicals := make([]string, 0, len(spec.ValueMapping))
	for canonical := range spec.ValueMapping {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	for _, canonical := range canonicals {
		if err := v.addMapping(canonical, canonical); err != nil {
			return nil, err
		}
		for _, synonym := range v.spec.ValueMapping[canonical] {
			if err := v.addMapping(synonym, canonical); err != nil {
				return nil, err
			}
		}
	}
	return v, nil
}

func (v *scalarValidator) addMapping(raw, canonical string) error {
	if existing, ok := v.mapping[raw]; ok && existing != canonical {
		return &apperrors.MappingConflictError{
			Column:    v.column,
			Synonym:   raw,
			Canonical: [2]string{existing, canonical},
		}
	}
	v.mapping[raw] = canonical
	return nil
}

// Validate coerces every value to the target type, then rewrites raw
// synonyms to their canonical value. Values with no remapping entry pass
// through unchanged; a later choice check surfaces unknown synonyms by
// their original spelling.
func (v *scalarValidator) Validate(values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, raw := range values {
		coerced, err := v.transformType(raw)
		if err != nil {
			return nil, err
		}
		out[i] = v.mapValue(coerced)
	}
	return out, nil
}

func (v *scalarValidator) transformType(raw any) (any, error) {
	switch v.spec.Type {
	case schema.TypeInteger:
		return v.toInteger(raw)
	case schema.TypeFloat:
		return v.toFloat(raw)
	case schema.TypeText:
		return v.toText(raw)
	}
	return nil, &apperrors.UnsupportedTypeError{Column: v.column, TargetType: string(v.spec.Type)}
}

func (v *scalarValidator) toInteger(raw any) (any, error) {
	switch val := raw.(type) {
	case int:
		return int64(val), nil
	case int64:
		return val, nil
	case float64:
		// JSON numbers decode as float64; only whole values are integers.
		if val == math.Trunc(val) {
			return int64(val), nil
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return n, nil
		}
	}
	return nil, &apperrors.TypeCoercionError{Column: v.column, Value: raw, TargetType: string(schema.TypeInteger)}
}

func (v *scalarValidator) toFloat(raw any) (any, error) {
	switch val := raw.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f, nil
		}
	}
	return nil, &apperrors.TypeCoercionError{Column: v.column, Value: raw, TargetType: string(schema.TypeFloat)}
}

func (v *scalarValidator) toText(raw any) (any, error) {
	switch val := raw.(type) {
	case string:
		return val, nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	}
	return nil, &apperrors.TypeCoercionError{Column: v.column, Value: raw, TargetType: string(schema.TypeText)}
}

func (v *scalarValidator) mapValue(coerced any) any {
	if v.mapping == nil {
		return coerced
	}
	s, ok := coerced.(string)
	if !ok {
		return coerced
	}
	if canonical, ok := v.mapping[s]; ok {
		return canonical
	}
	return coerced
}

// dateValidator parses every value as a calendar date. It has no remapping
// step.
type dateValidator struct {
	column string
}

func (v *dateValidator) Validate(values []any) ([]any, error) {
	out := make([]any, len(values))
	for i, raw := range values {
		t, err := v.parse(raw)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func (v *dateValidator) parse(raw any) (time.Time, error) {
	switch val := raw.(type) {
	case time.Time:
		return val, nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, &apperrors.TypeCoercionError{Column: v.column, Value: raw, TargetType: string(schema.TypeDate)}
}

// choiceValidator wraps the scalar validator and checks afterwards that the
// distinct coerced values form a subset of the declared choices.
type choiceValidator struct {
	column  string
	scalar  *scalarValidator
	choices map[string]struct{}
}

func newChoice(column string, spec schema.ColumnSpec) (*choiceValidator, error) {
	scalar, err := newScalar(column, spec)
	if err != nil {
		return nil, err
	}
	choices := make(map[string]struct{}, len(spec.Choices))
	for _, c := range spec.Choices {
		choices[c] = struct{}{}
	}
	return &choiceValidator{column: column, scalar: scalar, choices: choices}, nil
}

func (v *choiceValidator) Validate(values []any) ([]any, error) {
	out, err := v.scalar.Validate(values)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var violations []string
	for _, val := range out {
		s, ok := val.(string)
		if !ok {
			s = fmt.Sprint(val)
		}
		if _, allowed := v.choices[s]; allowed {
			continue
		}
		if _, dup := seen[s]; !dup {
			seen[s] = struct{}{}
			violations = append(violations, s)
		}
	}
	if len(violations) > 0 {
		sort.Strings(violations)
		choices := make([]string, 0, len(v.choices))
		for c := range v.choices {
			choices = append(choices, c)
		}
		sort.Strings(choices)
		return nil, &apperrors.ChoiceViolationError{Column: v.column, Violations: violations, Choices: choices}
	}
	return out, nil
}
