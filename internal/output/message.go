package output

import (
	"fmt"
	"io"
	"os"
)

// Message prefixes. Kept as variables so tests can assert on rendered
// output without repeating the glyphs.
const (
	infoPrefix    = "ℹ️  "
	warnPrefix    = "⚠️  "
	successPrefix = "✅ "
)

// Stdout and Stderr are the default message sinks; tests swap them.
//
//nolint:gochecknoglobals // Output sinks, overridden in tests
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Infof prints an informational message to stdout.
func Infof(format string, args ...any) {
	_, _ = fmt.Fprintln(Stdout, infoPrefix+fmt.Sprintf(format, args...))
}

// Warnf prints a warning to stderr. Destructive-operation warnings (such
// as an opt-out burning residual balance) go through here so they survive
// stdout redirection.
func Warnf(format string, args ...any) {
	_, _ = fmt.Fprintln(Stderr, warnPrefix+fmt.Sprintf(format, args...))
}

// Successf prints a success message to stdout.
func Successf(format string, args ...any) {
	_, _ = fmt.Fprintln(Stdout, successPrefix+fmt.Sprintf(format, args...))
}
