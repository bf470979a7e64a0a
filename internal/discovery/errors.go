package discovery

import "fmt"

// ErrorType categorizes discovery errors.
type ErrorType int

const (
	// APIFailed indicates the GitHub search API request failed.
	APIFailed ErrorType = iota
	// RateLimited indicates the GitHub API rate limit was hit.
	RateLimited
	// CacheFailed indicates the local cache could not be read or written.
	CacheFailed
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case APIFailed:
		return "APIFailed"
	case RateLimited:
		return "RateLimited"
	case CacheFailed:
		return "CacheFailed"
	default:
		return "Unknown"
	}
}

// Error represents a discovery failure.
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

// newError creates a discovery Error.
func newError(typ ErrorType, message string, cause error) *Error {
	return &Error{Type: typ, Message: message, Cause: cause}
}
