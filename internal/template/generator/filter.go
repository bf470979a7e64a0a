package generator

import (
	"bytes"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/skaffio/skaff/internal/debug"
	"github.com/skaffio/skaff/internal/schema"
)

// binarySniffLen is how many leading bytes are checked for null bytes when
// deciding whether a file is binary.
const binarySniffLen = 512

// defaultBinaryExtensions are file extensions always treated as binary.
func defaultBinaryExtensions() []string {
	return []string{
		// Images
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".ico", ".svg",
		// Archives
		".zip", ".tar", ".gz", ".bz2", ".xz", ".rar", ".7z",
		// Executables
		".exe", ".dll", ".so", ".dylib", ".bin",
		// Media
		".mp3", ".mp4", ".avi", ".mov", ".wav",
		// Documents
		".pdf", ".doc", ".docx", ".xls", ".xlsx",
		// Fonts
		".ttf", ".otf", ".woff", ".woff2",
	}
}

// Included reports whether a candidate path survives the manifest's file
// rules. A path is included iff no include patterns are declared or at least
// one matches, AND no exclude pattern matches, AND it is not implicitly
// excluded. Exclude always dominates include, regardless of declaration order.
//
// Glob semantics: `*` matches within one path segment, `**` matches across
// segments, `?` is a single non-separator character. Patterns are anchored
// to the template root. All patterns were syntax-checked at manifest
// validation time, so matching here cannot fail.
func Included(rules schema.FileRules, relPath string) bool {
	relPath = path.Clean(strings.ReplaceAll(relPath, "\\", "/"))

	if implicitlyExcluded(relPath) {
		return false
	}

	for _, pattern := range rules.Exclude {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			debug.Debug("[generator] Excluding %s (matched exclude pattern %q)", relPath, pattern)
			return false
		}
	}

	if len(rules.Include) == 0 {
		return true
	}
	for _, pattern := range rules.Include {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	debug.Debug("[generator] Excluding %s (no include pattern matched)", relPath)
	return false
}

// implicitlyExcluded reports whether a path is always excluded regardless of
// the manifest's rules: the manifest file itself and version-control metadata.
func implicitlyExcluded(relPath string) bool {
	if relPath == schema.ManifestFileName {
		return true
	}
	if relPath == ".git" || strings.HasPrefix(relPath, ".git/") {
		return true
	}
	return false
}

// IsBinary reports whether a file must be copied through without rendering,
// by extension denylist or by a null byte in its leading bytes.
func IsBinary(relPath string, content []byte, extraExtensions []string) bool {
	ext := strings.ToLower(path.Ext(relPath))
	for _, binaryExt := range defaultBinaryExtensions() {
		if ext == binaryExt {
			return true
		}
	}
	for _, binaryExt := range extraExtensions {
		if ext == strings.ToLower(binaryExt) {
			return true
		}
	}
	return isBinaryContent(content)
}

// isBinaryContent checks the leading bytes for a null byte.
func isBinaryContent(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) != -1
}
