package logging

import (
	"fmt"
	"os"
	"strings"
)

// DebugEnabled returns true if debug mode is enabled via FT_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("FT_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		Logger().With("debug", true).Printf(format, args...)
	}
}

// Debugln prints its operands separated by spaces, only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		Logger().With("debug", true).Print(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
	}
}
