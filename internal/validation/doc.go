// Package validation implements the schema-driven validation engine for the
// sales/CRM pipeline.
//
// This package contains three layers:
//
// ColumnValidator: a closed set of per-column validators. The scalar variant
// coerces integer, float and text columns and applies value remapping; the
// date variant parses calendar dates; the choice variant wraps the scalar
// variant and enforces a declared choice set afterwards.
//
// Select: chooses the validator variant for a column specification. A spec
// with choices always gets the choice variant; an unknown target type is an
// explicit error rather than a silent no-op.
//
// TableValidator: applies the selected validators column by column across a
// table. Validation is all-or-nothing: the first failing column aborts the
// table and the error names the offending column and value.
//
// Example usage:
//
//	tv := validation.NewTableValidator(slog.Default())
//	validated, err := tv.Validate(ctx, salesSchema, rawTable)
//	if err != nil {
//	    // run aborts, nothing of rawTable is accepted
//	}
package validation
