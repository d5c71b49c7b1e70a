package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is wrapped by every ValidationError.
var ErrInvalidValue = errors.New("config: invalid value")

// ValidationError describes a setting whose value cannot be used.
type ValidationError struct {
	// Path is the dot-separated setting path.
	Path string
	// Message describes the problem.
	Message string
	// Value is the rejected value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns ErrInvalidValue.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidValue
}
