package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	warnMark    = color.New(color.FgYellow).SprintFunc()
	errorMark   = color.New(color.FgRed).SprintFunc()
	progressFmt = color.New(color.FgBlue).SprintFunc()
	dimFmt      = color.New(color.FgHiBlack).SprintFunc()
	boldFmt     = color.New(color.Bold).SprintFunc()
)

// printInfo prints an informational message.
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Println(msg)
}

// printSuccess prints a success message.
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", successMark("✓"), msg)
}

// printWarning prints a warning message.
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", warnMark("⚠"), msg)
}

// printProgress prints a progress line.
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Printf("%s %s\n", progressFmt("→"), msg)
}

// printError prints an error to stderr.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorMark("✗"), err)
}

// printErrorMsg prints an error message to stderr.
func printErrorMsg(msg string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorMark("✗"), msg)
}
