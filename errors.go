package htmlsanitizer

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is wrapped by every PolicyError.
var ErrInvalidPolicy = errors.New("invalid policy")

// PolicyError reports a problem in a policy document.
type PolicyError struct {
	Field string // YAML key at fault, empty for document-level errors
	Err   error
}

// Error implements the error interface.
func (e *PolicyError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid policy field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid policy: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *PolicyError) Unwrap() error { return e.Err }

// Is reports ErrInvalidPolicy as a match.
func (e *PolicyError) Is(target error) bool { return target == ErrInvalidPolicy }
