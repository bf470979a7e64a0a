package cli

import (
	"fmt"
	"strings"
)

// parseParamFlags parses repeated --param key=value flags into a map.
// Duplicate keys are an error so a typo never silently wins.
func parseParamFlags(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", pair)
		}
		if _, dup := params[key]; dup {
			return nil, fmt.Errorf("duplicate --param key %q", key)
		}
		params[key] = value
	}
	return params, nil
}

// validProjectName rejects names that would produce surprising output paths.
func validProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("invalid project name: %s", name)
	}
	return nil
}
