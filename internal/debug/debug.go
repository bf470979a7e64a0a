// Package debug provides stderr trace logging, enabled with the --debug
// flag or the SKAFF_DEBUG environment variable.
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled = os.Getenv("SKAFF_DEBUG") != ""
	noColor bool
)

const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug tracing.
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled reports whether debug tracing is enabled.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor disables colored trace output.
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// Debug prints a timestamped trace message to stderr.
func Debug(format string, args ...interface{}) {
	mu.RLock()
	on, plain := enabled, noColor
	mu.RUnlock()
	if !on {
		return
	}

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)

	if plain {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s %s\n", timestamp, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "%s[DEBUG]%s %s%s%s %s\n",
		colorCyan, colorReset, colorGray, timestamp, colorReset, msg)
}

// DebugValue prints a key=value trace line to stderr.
func DebugValue(key string, value interface{}) {
	Debug("%s = %v", key, value)
}
