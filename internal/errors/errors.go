// Package errors defines the pipeline's error taxonomy. Every failure in
// the validation and aggregation core maps to one of the typed errors here,
// carries enough context to diagnose without re-running (offending column,
// value, type), and aborts the whole run: there is no partial acceptance.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// TypeCoercionError reports a column value that cannot be cast or parsed to
// the column's declared target type.
type TypeCoercionError struct {
	Column     string
	Value      any
	TargetType string
	Cause      error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("column %q: value %v is not a valid %s", e.Column, e.Value, e.TargetType)
}

func (e *TypeCoercionError) Unwrap() error { return e.Cause }

// ChoiceViolationError reports coerced values that fall outside a column's
// declared choice set.
type ChoiceViolationError struct {
	Column     string
	Violations []string
	Choices    []string
}

func (e *ChoiceViolationError) Error() string {
	return fmt.Sprintf("column %q: values [%s] are not a subset of choices [%s]",
		e.Column, strings.Join(e.Violations, ", "), strings.Join(e.Choices, ", "))
}

// UnsupportedTypeError reports a column specification whose target type has
// no matching validator.
type UnsupportedTypeError struct {
	Column     string
	TargetType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("column %q: no validator for target type %q", e.Column, e.TargetType)
}

// MappingConflictError reports a value-remapping table in which one raw
// synonym is claimed by two different canonical values.
type MappingConflictError struct {
	Column    string
	Synonym   string
	Canonical [2]string
}

func (e *MappingConflictError) Error() string {
	return fmt.Sprintf("column %q: synonym %q is claimed by both %q and %q",
		e.Column, e.Synonym, e.Canonical[0], e.Canonical[1])
}

// UnsupportedSourceFormatError reports an input file whose format does not
// match what its source expects (e.g. a non-JSON file in the sales drop
// directory).
type UnsupportedSourceFormatError struct {
	Path     string
	Expected []string
}

func (e *UnsupportedSourceFormatError) Error() string {
	return fmt.Sprintf("unsupported source format %q (expected %s)", e.Path, strings.Join(e.Expected, " or "))
}

// IsTypeCoercion reports whether err is or wraps a TypeCoercionError.
func IsTypeCoercion(err error) bool {
	var target *TypeCoercionError
	return errors.As(err, &target)
}

// IsChoiceViolation reports whether err is or wraps a ChoiceViolationError.
func IsChoiceViolation(err error) bool {
	var target *ChoiceViolationError
	return errors.As(err, &target)
}

// IsUnsupportedType reports whether err is or wraps an UnsupportedTypeError.
func IsUnsupportedType(err error) bool {
	var target *UnsupportedTypeError
	return errors.As(err, &target)
}

// IsUnsupportedSourceFormat reports whether err is or wraps an
// UnsupportedSourceFormatError.
func IsUnsupportedSourceFormat(err error) bool {
	var target *UnsupportedSourceFormatError
	return errors.As(err, &target)
}
