package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict (slug, coupon code, email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller lacks access (ownership or plan gate).
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition indicates an order status change outside the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError marks input the caller can correct. Handlers render the
// message as a client error; errors without this type are treated as
// internal faults and never shown verbatim.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string { return e.msg }

// Invalid wraps a message as a ValidationError.
func Invalid(msg string) error { return ValidationError{msg: msg} }

// Invalidf wraps a formatted message as a ValidationError.
func Invalidf(format string, args ...any) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}
