package voting

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile = errors.New("required file not provided")
	ErrNoSelection = errors.New("nothing selected")
	ErrNotNumeric  = errors.New("candidate code must be digits only")
)

// ValidationError is a local precondition failure. It never reaches the network.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
