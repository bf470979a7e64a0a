package generator

import "fmt"

// ErrorType categorizes pipeline errors.
type ErrorType int

const (
	// RenderFailed indicates template rendering failed for a file.
	RenderFailed ErrorType = iota
	// PathError indicates an invalid or unsafe output path was produced.
	PathError
	// WriteFailed indicates a file write operation failed.
	WriteFailed
)

// Error represents a pipeline error attributable to a specific file.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Message is the error message.
	Message string
	// File is the template-relative file path.
	File string
	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.File != "" {
		if e.Cause != nil {
			return fmt.Sprintf("%s (file: %s): %v", e.Message, e.File, e.Cause)
		}
		return fmt.Sprintf("%s (file: %s)", e.Message, e.File)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError creates a new pipeline Error.
func newError(typ ErrorType, message, file string, cause error) *Error {
	return &Error{
		Type:    typ,
		Message: message,
		File:    file,
		Cause:   cause,
	}
}
