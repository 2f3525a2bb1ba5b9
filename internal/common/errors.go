// Package common defines shared constants and sentinel errors used across
// the FieldVault components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository / locator errors.
	ErrorNotFound = errors.New("not found")

	// Source workbook cannot be read at all (present but unparsable).
	// A missing workbook is not an error for reads: it yields an empty
	// result set.
	ErrorSourceUnavailable = errors.New("source unavailable")

	// Generic internal failure surfaced by the submission pipeline.
	ErrorInternal = errors.New("internal error")

	// Validation errors on incoming requests.
	ErrorValidation = errors.New("validation error")

	// Unknown record kind (anything outside PM / Asset / CM).
	ErrorUnknownKind = errors.New("unknown record kind")
)
