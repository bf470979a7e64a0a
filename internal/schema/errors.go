package schema

import (
	"fmt"
	"strings"
)

// ValidationError describes a single manifest field that failed validation.
type ValidationError struct {
	// Field is the dotted path of the offending field (e.g. "template.version",
	// "parameters.db.default"). "manifest" means the document itself.
	Field string
	// Message is the human-readable reason.
	Message string
	// Suggestion is a corrective hint shown to the template author.
	Suggestion string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Suggestion)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the batch of field-level errors collected in a single
// validation pass. Validation never stops at the first field error so callers
// can display a complete report in one pass.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (es ValidationErrors) Error() string {
	if len(es) == 1 {
		return "invalid manifest: " + es[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "invalid manifest: %d errors:", len(es))
	for _, e := range es {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}

// Fields returns the offending field paths in declaration order.
func (es ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(es))
	for _, e := range es {
		fields = append(fields, e.Field)
	}
	return fields
}

// newError creates a ValidationError without a suggestion.
func newError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// newErrorWithSuggestion creates a ValidationError with a corrective hint.
func newErrorWithSuggestion(field, message, suggestion string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Suggestion: suggestion}
}
