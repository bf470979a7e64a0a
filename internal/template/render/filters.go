package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// filterSpec describes a registered filter: its argument contract and its
// application function. Arguments are validated at parse time so application
// can never fail during evaluation.
type filterSpec struct {
	// needsArg indicates the filter requires a `: arg` argument.
	needsArg bool
	// checkArg validates the argument at parse time (nil when no argument).
	checkArg func(arg string) error
	// apply transforms the value. arg is pre-validated.
	apply func(value, arg string) string
}

// filterRegistry is the closed set of filters available inside {{ }}.
// Templates cannot register new filters; unknown names are fatal parse errors.
var filterRegistry = map[string]*filterSpec{
	"upcase": {
		apply: func(value, _ string) string { return strings.ToUpper(value) },
	},
	"downcase": {
		apply: func(value, _ string) string { return strings.ToLower(value) },
	},
	"capitalize": {
		apply: func(value, _ string) string {
			runes := []rune(value)
			if len(runes) == 0 {
				return value
			}
			runes[0] = unicode.ToUpper(runes[0])
			return string(runes)
		},
	},
	"trim": {
		apply: func(value, _ string) string { return strings.TrimSpace(value) },
	},
	"truncate": {
		needsArg: true,
		checkArg: func(arg string) error {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("truncate requires an integer length, got %q", arg)
			}
			if n < 0 {
				return fmt.Errorf("truncate length must not be negative, got %d", n)
			}
			return nil
		},
		apply: func(value, arg string) string {
			n, _ := strconv.Atoi(arg)
			return truncate(value, n)
		},
	},
}

// truncate shortens value to at most n runes, replacing the tail with "..."
// when truncation occurs and the budget allows it.
func truncate(value string, n int) string {
	runes := []rune(value)
	if len(runes) <= n {
		return value
	}
	const ellipsis = "..."
	if n <= len(ellipsis) {
		return string(runes[:n])
	}
	return string(runes[:n-len(ellipsis)]) + ellipsis
}

// FilterNames returns the registered filter names in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filterRegistry))
	for name := range filterRegistry {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}
