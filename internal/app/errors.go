package app

import "fmt"

// ErrorType categorizes workflow errors.
type ErrorType int

const (
	// InvalidInput indicates missing or malformed workflow input.
	InvalidInput ErrorType = iota
	// FetchFailed indicates the template could not be fetched.
	FetchFailed
	// ManifestInvalid indicates the template manifest failed validation.
	ManifestInvalid
	// ToolVersionUnsupported indicates the template requires a newer tool.
	ToolVersionUnsupported
	// ParamsInvalid indicates parameter resolution failed.
	ParamsInvalid
	// RenderFailed indicates one or more template files failed to render.
	RenderFailed
	// WriteFailed indicates output files could not be written.
	WriteFailed
	// DiscoveryFailed indicates template discovery failed.
	DiscoveryFailed
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case InvalidInput:
		return "InvalidInput"
	case FetchFailed:
		return "FetchFailed"
	case ManifestInvalid:
		return "ManifestInvalid"
	case ToolVersionUnsupported:
		return "ToolVersionUnsupported"
	case ParamsInvalid:
		return "ParamsInvalid"
	case RenderFailed:
		return "RenderFailed"
	case WriteFailed:
		return "WriteFailed"
	case DiscoveryFailed:
		return "DiscoveryFailed"
	default:
		return "Unknown"
	}
}

// Error represents a workflow failure.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error wrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError creates a workflow Error.
func newError(typ ErrorType, message string, cause error) *Error {
	return &Error{Type: typ, Message: message, Cause: cause}
}
