// Package output renders execution results and errors for the CLI, in
// text or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format selects how results are rendered.
type Format string

const (
	// FormatText renders human-readable lines.
	FormatText Format = "text"
	// FormatJSON renders indented JSON, one document per Print.
	FormatJSON Format = "json"
	// FormatAuto defers the choice to DetectFormat.
	FormatAuto Format = "auto"
)

// ParseFormat maps a user-supplied format name to a Format. Anything
// unrecognized resolves to auto rather than erroring; the node URL is worth
// failing startup over, the output format is not.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FormatJSON):
		return FormatJSON
	case string(FormatText):
		return FormatText
	default:
		return FormatAuto
	}
}

// DetectFormat resolves auto to a concrete format: text when the writer is a
// terminal, JSON otherwise so piped output stays machine-readable. An
// explicit choice passes through untouched.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto {
		return explicit
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return FormatText
	}
	return FormatJSON
}

// Formatter renders values in a fixed format to a fixed writer.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a formatter. The format should already be concrete
// (run through DetectFormat); a formatter never re-detects.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// Format returns the formatter's concrete format.
func (f *Formatter) Format() Format {
	return f.format
}

// IsJSON reports whether the formatter emits JSON.
func (f *Formatter) IsJSON() bool {
	return f.format == FormatJSON
}

// Print renders a value. JSON mode emits an indented document; text mode
// prints strings and Stringers directly and everything else via %v.
func (f *Formatter) Print(v any) error {
	if f.IsJSON() {
		enc := json.NewEncoder(f.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	switch val := v.(type) {
	case string:
		_, err := fmt.Fprintln(f.writer, val)
		return err
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.writer, val.String())
		return err
	default:
		_, err := fmt.Fprintf(f.writer, "%v\n", val)
		return err
	}
}
