// Package build carries build-time information, set via ldflags:
//
//	-X github.com/skaffio/skaff/internal/build.version=x.y.z
package build

var (
	version   = "0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Version returns the application version.
func Version() string {
	return version
}

// GitCommit returns the git commit the binary was built from.
func GitCommit() string {
	return gitCommit
}

// BuildDate returns the build timestamp.
func BuildDate() string {
	return buildDate
}
