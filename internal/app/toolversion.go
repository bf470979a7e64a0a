package app

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/skaffio/skaff/internal/debug"
)

// checkToolVersion enforces a template's minimum tool version. An empty
// minimum always passes; an unparsable current version (development builds)
// skips the check.
func checkToolVersion(minVersion, current string) error {
	if minVersion == "" {
		return nil
	}

	cur, err := semver.NewVersion(current)
	if err != nil {
		debug.Debug("[app] Skipping tool version check, current version %q is not semver", current)
		return nil
	}

	min, err := semver.NewVersion(minVersion)
	if err != nil {
		return newError(ManifestInvalid,
			fmt.Sprintf("template declares invalid min_tool_version %q", minVersion), err)
	}

	if cur.LessThan(min) {
		return newError(ToolVersionUnsupported,
			fmt.Sprintf("template requires skaff >= %s, current version is %s", minVersion, current), nil)
	}
	return nil
}
