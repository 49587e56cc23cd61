// Package errs defines the error kinds shared across roadsign components.
// Callers wrap them with fmt.Errorf("...: %w", ...) and test with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidArgument marks malformed input: an empty selection pool,
	// a bad catalog source, a missing template field, an out-of-range level.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a reference to something that does not exist,
	// such as a sign ID absent from the catalog or an unknown quiz ID.
	ErrNotFound = errors.New("not found")

	// ErrGeneration marks a failed or contract-violating quiz generation.
	ErrGeneration = errors.New("generation failed")
)
