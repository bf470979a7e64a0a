package config

import "fmt"

// ErrorType categorizes configuration errors.
type ErrorType int

const (
	// NotFound indicates the configuration file was not found.
	NotFound ErrorType = iota
	// Invalid indicates the configuration file could not be parsed.
	Invalid
	// ValidationFailed indicates a configuration value is out of range.
	ValidationFailed
)

// Error represents a configuration error.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// File is the configuration file path, if known.
	File string
	// Field is the configuration field involved, if any.
	Field string
	// Message is the error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := "configuration error"
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" [field: %s]", e.Field)
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError creates a configuration Error.
func newError(typ ErrorType, file, message string, cause error) *Error {
	return &Error{Type: typ, File: file, Message: message, Cause: cause}
}

// newFieldError creates a validation Error for a specific field.
func newFieldError(field, message string) *Error {
	return &Error{Type: ValidationFailed, Field: field, Message: message}
}
