package params

import (
	"fmt"
	"strings"
)

// ErrorType represents the type of parameter resolution error.
type ErrorType int

const (
	// UnknownParameter indicates a user-supplied name not declared in the manifest.
	UnknownParameter ErrorType = iota
	// PatternMismatch indicates a string value failing its validation pattern.
	PatternMismatch
	// InvalidBoolean indicates a value outside the accepted boolean literals.
	InvalidBoolean
	// InvalidChoice indicates an enum value not among the declared choices.
	InvalidChoice
)

// Error describes a single parameter that failed resolution.
type Error struct {
	// Type is the error type.
	Type ErrorType
	// Name is the parameter name.
	Name string
	// Value is the rejected user-supplied value.
	Value string
	// Message is the human-readable reason with a corrective hint.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("parameter %q: %s", e.Name, e.Message)
}

// Errors is the batch of parameter errors from one resolution pass.
// Every declared parameter is checked before errors are surfaced.
type Errors []*Error

// Error implements the error interface.
func (es Errors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d parameter errors:", len(es))
	for _, e := range es {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// newError creates a parameter Error.
func newError(typ ErrorType, name, value, format string, args ...any) *Error {
	return &Error{
		Type:    typ,
		Name:    name,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	}
}
