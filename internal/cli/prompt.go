package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/skaffio/skaff/internal/schema"
)

// promptForParams interactively fills in parameter values the user did not
// provide on the command line. Values already in provided are left alone.
func promptForParams(manifest *schema.Manifest, provided map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(provided))
	for k, v := range provided {
		values[k] = v
	}

	names := make([]string, 0, len(manifest.Parameters))
	for name := range manifest.Parameters {
		if _, ok := values[name]; !ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return values, nil
	}
	sort.Strings(names)

	printInfo("")
	printInfo("Template parameters:")

	for _, name := range names {
		spec := manifest.Parameters[name]
		value, err := promptForParam(name, spec)
		if err != nil {
			return nil, fmt.Errorf("prompt for parameter %q failed: %w", name, err)
		}
		values[name] = value
	}
	return values, nil
}

// promptForParam prompts for a single parameter based on its type.
func promptForParam(name string, spec schema.ParameterSpec) (string, error) {
	message := name
	if spec.Description != "" {
		message += " - " + spec.Description
	}

	switch spec.Type {
	case schema.ParamBoolean:
		return promptBoolean(message, spec)
	case schema.ParamEnum:
		return promptEnum(message, spec)
	default:
		return promptString(message, spec)
	}
}

func promptString(message string, spec schema.ParameterSpec) (string, error) {
	prompt := &survey.Input{
		Message: message,
		Default: spec.DefaultString(),
	}

	var opts []survey.AskOpt
	if re := spec.PatternRegexp(); re != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			if !re.MatchString(s) {
				return fmt.Errorf("value must match pattern: %s", spec.Pattern)
			}
			return nil
		}))
	}

	var result string
	if err := survey.AskOne(prompt, &result, opts...); err != nil {
		return "", err
	}
	return result, nil
}

func promptBoolean(message string, spec schema.ParameterSpec) (string, error) {
	defaultVal := false
	if b, ok := spec.Default.(bool); ok {
		defaultVal = b
	}

	var result bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultVal,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return strconv.FormatBool(result), nil
}

func promptEnum(message string, spec schema.ParameterSpec) (string, error) {
	var result string
	prompt := &survey.Select{
		Message: message,
		Options: spec.Choices,
		Default: spec.DefaultString(),
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}
