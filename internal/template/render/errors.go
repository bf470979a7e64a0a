package render

import "fmt"

// ErrorType represents the type of rendering error.
type ErrorType int

const (
	// UnknownTag indicates an unrecognized {% ... %} tag keyword.
	UnknownTag ErrorType = iota
	// UnknownFilter indicates a filter name missing from the registry.
	UnknownFilter
	// UnclosedBlock indicates a missing {% endif %}, {% endfor %}, {% endraw %},
	// or an unterminated {{ }} / {% %} delimiter.
	UnclosedBlock
	// UnexpectedTag indicates a block-closing or branch tag outside its block.
	UnexpectedTag
	// InvalidExpression indicates a malformed expression or filter argument.
	InvalidExpression
	// UndefinedVariable indicates a reference to an undeclared variable
	// (fatal only when strict variable mode is enabled).
	UndefinedVariable
	// NotIterable indicates a {% for %} over a non-list variable.
	NotIterable
	// LimitExceeded indicates the output size or loop iteration budget was hit.
	LimitExceeded
)

// String returns the error type name.
func (t ErrorType) String() string {
	switch t {
	case UnknownTag:
		return "unknown tag"
	case UnknownFilter:
		return "unknown filter"
	case UnclosedBlock:
		return "unclosed block"
	case UnexpectedTag:
		return "unexpected tag"
	case InvalidExpression:
		return "invalid expression"
	case UndefinedVariable:
		return "undefined variable"
	case NotIterable:
		return "not iterable"
	case LimitExceeded:
		return "limit exceeded"
	default:
		return "unknown"
	}
}

// Error represents a fatal template rendering error with source position.
type Error struct {
	// Type is the error type.
	Type ErrorType
	// File is the template-relative file path ("" when rendering raw input).
	File string
	// Line is the 1-indexed line of the offending construct.
	Line int
	// Col is the 1-indexed column of the offending construct.
	Col int
	// Message is the human-readable reason, including a corrective hint.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// newError creates a render Error at the given position.
func newError(typ ErrorType, line, col int, format string, args ...any) *Error {
	return &Error{
		Type:    typ,
		Line:    line,
		Col:     col,
		Message: fmt.Sprintf(format, args...),
	}
}

// Warning reports a non-fatal finding during rendering, currently always a
// reference to an undefined variable.
type Warning struct {
	// File is the template-relative file path ("" when rendering raw input).
	File string
	// Line is the 1-indexed line of the reference.
	Line int
	// Col is the 1-indexed column of the reference.
	Col int
	// Name is the undefined variable name.
	Name string
}

// String formats the warning for display.
func (w Warning) String() string {
	if w.File != "" {
		return fmt.Sprintf("%s:%d:%d: undefined variable %q rendered as empty", w.File, w.Line, w.Col, w.Name)
	}
	return fmt.Sprintf("%d:%d: undefined variable %q rendered as empty", w.Line, w.Col, w.Name)
}
