package snapshot

import (
	"errors"
	"fmt"
)

// ErrServerFault marks an unexpected internal failure. Its message is safe
// to show to clients; the wrapped cause is not.
var ErrServerFault = errors.New("internal server error")

// ValidationError is a client-correctable input problem.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func fault(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrServerFault, op, err)
}
