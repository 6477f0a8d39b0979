package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrArgument reports input whose shape does not fit the schema,
	// e.g. unknown properties or repeated values for a single property.
	ErrArgument = errors.New("argument error")
	// ErrLookup reports names that cannot be resolved.
	ErrLookup = errors.New("lookup error")
	// ErrSchema reports an invalid declaration.
	ErrSchema = errors.New("schema error")
	// ErrMalformed reports input that is not well-formed text for its format.
	ErrMalformed = errors.New("malformed input")
)

// FieldError represents a single validation failure at a property path.
type FieldError struct {
	Path   string // e.g. "channels[2].gain", empty for the root value
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *FieldError) Error() string {
	where := e.Path
	if where == "" {
		where = "value"
	}
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", where, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %T)", where, e.Reason, e.Value)
}

// ValidationError carries every failure found by one validation call.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FieldErrors returns the failures carried by err if it is (or wraps) a
// *ValidationError. Otherwise returns nil.
func FieldErrors(err error) []*FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Errors
	}
	return nil
}
