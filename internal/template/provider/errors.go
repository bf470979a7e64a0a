package provider

import "fmt"

// ErrorType categorizes provider errors.
type ErrorType int

const (
	// FetchFailed indicates the template could not be retrieved.
	FetchFailed ErrorType = iota
	// NotFound indicates the template does not exist at the source.
	NotFound
	// AuthFailed indicates authentication was rejected (private repository).
	AuthFailed
	// InvalidSource indicates the source string could not be parsed.
	InvalidSource
	// InvalidTemplate indicates the fetched tree is not a usable template,
	// most commonly a missing or invalid manifest.
	InvalidTemplate
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	switch t {
	case FetchFailed:
		return "FetchFailed"
	case NotFound:
		return "NotFound"
	case AuthFailed:
		return "AuthFailed"
	case InvalidSource:
		return "InvalidSource"
	case InvalidTemplate:
		return "InvalidTemplate"
	default:
		return "Unknown"
	}
}

// Error is a provider failure tied to a specific template source.
type Error struct {
	// Type categorizes the error.
	Type ErrorType
	// Provider is the provider name ("github", "local").
	Provider string
	// Source is the template source string or path involved.
	Source string
	// Message is the human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Provider, e.Message, e.Source, e.Cause)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Provider, e.Message, e.Source)
}

// Unwrap returns the underlying cause for error wrapping.
func (e *Error) Unwrap() error {
	return e.Cause
}

// newError creates a provider Error.
func newError(typ ErrorType, provider, source, message string, cause error) *Error {
	return &Error{
		Type:     typ,
		Provider: provider,
		Source:   source,
		Message:  message,
		Cause:    cause,
	}
}

func notFoundError(provider, source string) *Error {
	return newError(NotFound, provider, source, "template not found", nil)
}

func authError(provider, source string) *Error {
	return newError(AuthFailed, provider, source, "authentication failed (private repository?)", nil)
}

func fetchError(provider, source string, cause error) *Error {
	return newError(FetchFailed, provider, source, "failed to fetch template", cause)
}

func sourceError(provider, source string, cause error) *Error {
	return newError(InvalidSource, provider, source, "invalid template source", cause)
}

func templateError(provider, source, message string, cause error) *Error {
	return newError(InvalidTemplate, provider, source, message, cause)
}
