package render

import "strings"

// Kind identifies the runtime type of a template variable value.
type Kind int

const (
	// KindString is a plain string value.
	KindString Kind = iota
	// KindBool is a boolean value.
	KindBool
	// KindList is an ordered list of strings, iterable with {% for %}.
	KindList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is an immutable template variable value.
type Value struct {
	kind Kind
	str  string
	b    bool
	list []string
}

// StringValue creates a string Value.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// BoolValue creates a boolean Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// ListValue creates a list Value. The items slice is copied.
func ListValue(items []string) Value {
	copied := make([]string, len(items))
	copy(copied, items)
	return Value{kind: KindList, list: copied}
}

// Kind returns the value kind.
func (v Value) Kind() Kind {
	return v.kind
}

// Str returns the string form of the value, as emitted by {{ }}.
// Booleans render as "true"/"false"; lists join their items with ", ".
func (v Value) Str() string {
	switch v.kind {
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return v.str
	}
}

// Bool returns the boolean value. The second return is false for non-boolean values.
func (v Value) Bool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// List returns the list items. The second return is false for non-list values.
func (v Value) List() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// falsyLiterals are string values treated as false in {% if %} conditions,
// matching the boolean literal set accepted by parameter resolution.
var falsyLiterals = map[string]bool{
	"": true, "false": true, "no": true, "n": true, "0": true,
}

// Truthy reports whether the value is treated as true in conditions.
// Booleans use their own value, lists are truthy when non-empty, and strings
// are truthy unless empty or a falsy boolean literal (case-insensitive).
func (v Value) Truthy() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindList:
		return len(v.list) > 0
	default:
		return !falsyLiterals[strings.ToLower(v.str)]
	}
}

// Variables provides read-only variable lookup during rendering.
// Implementations must be safe for concurrent readers: evaluation never
// mutates the variable scope.
type Variables interface {
	// Get retrieves a variable value by name.
	// Returns (value, true) if found, (zero, false) if not found.
	Get(name string) (Value, bool)

	// Names returns all variable names in sorted order.
	Names() []string
}

// MapVariables implements Variables using a plain map.
type MapVariables struct {
	data map[string]Value
}

// NewMapVariables creates a MapVariables from a map. The map is copied.
func NewMapVariables(data map[string]Value) *MapVariables {
	copied := make(map[string]Value, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return &MapVariables{data: copied}
}

// Get retrieves a variable value by name.
func (m *MapVariables) Get(name string) (Value, bool) {
	v, ok := m.data[name]
	return v, ok
}

// Names returns all variable names in sorted order.
func (m *MapVariables) Names() []string {
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

// sortStrings sorts in place (insertion sort; variable sets are small).
func sortStrings(items []string) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j] < items[j-1]; j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}
