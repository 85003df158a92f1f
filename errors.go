package fintrack

import (
	"errors"
	"fmt"
)

// Reasons wrapped by ValidationError.
var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrUnknownSource   = errors.New("unknown money source")
	ErrUnknownCategory = errors.New("unknown expense category")
	ErrUnknownPerson   = errors.New("unknown person")
	ErrBlankName       = errors.New("name must not be blank")
	ErrInvalidDay      = errors.New("day of month must be between 1 and 28")
	ErrUnknownDeposit  = errors.New("unknown scheduled deposit")
	ErrNegativeBalance = errors.New("balance must not be negative")
	ErrDecrease        = errors.New("a balance can only be adjusted upward")
)

// Import errors. Their messages are shown to the user verbatim.
var (
	ErrImportFormat = errors.New("Invalid backup file format")
	ErrParseJSON    = errors.New("Failed to parse JSON file")
)

// ValidationError reports a rejected user input. Nothing has been mutated
// when it is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid %s: %v", e.Field, e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error { return &ValidationError{Field: field, Err: err} }

// DeserializationError reports a persisted value that could not be decoded.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("could not decode %q: %v", e.Key, e.Err)
}
func (e *DeserializationError) Unwrap() error { return e.Err }
