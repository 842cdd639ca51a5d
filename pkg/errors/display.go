package errors

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/term"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m" // Error code
	colorYellow = "\033[33m" // Context keys
	colorCyan   = "\033[36m" // Suggestions
	colorDim    = "\033[90m" // Cause
	colorBold   = "\033[1m"
)

// Formatter handles error display with optional color support.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool

	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer

	// Indent is the prefix for context and suggestion lines.
	Indent string
}

// DefaultFormatter returns a Formatter for stderr, colored when stderr is a TTY.
func DefaultFormatter() *Formatter {
	return NewFormatter(os.Stderr)
}

// NewFormatter returns a Formatter writing to w. Color is enabled only
// when w is a terminal.
func NewFormatter(w io.Writer) *Formatter {
	f, _ := w.(*os.File)
	return &Formatter{
		UseColor: IsTTY(f),
		Writer:   w,
		Indent:   "  ",
	}
}

// IsTTY returns true if the given file is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Format renders err. CSVPlotErrors get code, context, cause and
// suggestions; aggregated errors are rendered one after another.
func (f *Formatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		return f.formatMultiple(merr.Errors)
	}

	ce, ok := AsCSVPlotError(err)
	if !ok {
		return f.formatStandardError(err)
	}
	if isUserMessage(ce) {
		return ce.Message
	}
	return f.formatCSVPlotError(ce)
}

// isUserMessage reports whether ce is a plain prompt-level message that is
// shown without code or decoration.
func isUserMessage(ce *CSVPlotError) bool {
	if ce.Cause != nil || ce.HasSuggestions() {
		return false
	}
	switch ce.Category {
	case CategoryInput, CategoryTable, CategoryPlot:
		return true
	}
	return false
}

func (f *Formatter) formatStandardError(err error) string {
	if f.UseColor {
		return colorRed + "Error: " + colorReset + err.Error()
	}
	return "Error: " + err.Error()
}

func (f *Formatter) formatCSVPlotError(ce *CSVPlotError) string {
	var sb strings.Builder

	f.writeErrorHeader(&sb, ce)
	if ce.HasContext() {
		f.writeContext(&sb, ce)
	}
	if ce.Cause != nil {
		f.writeCause(&sb, ce)
	}
	if ce.HasSuggestions() {
		f.writeSuggestions(&sb, ce)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// writeErrorHeader writes "ERROR [CODE]: message".
func (f *Formatter) writeErrorHeader(sb *strings.Builder, ce *CSVPlotError) {
	if f.UseColor {
		sb.WriteString(colorRed + colorBold + "ERROR" + colorReset)
		sb.WriteString(colorRed + " [" + ce.Code + "]: " + colorReset)
	} else {
		sb.WriteString("ERROR [" + ce.Code + "]: ")
	}
	sb.WriteString(ce.Message)
	sb.WriteString("\n")
}

func (f *Formatter) writeContext(sb *strings.Builder, ce *CSVPlotError) {
	keys := make([]string, 0, len(ce.Context))
	for k := range ce.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sb.WriteString(f.Indent)
		if f.UseColor {
			sb.WriteString(colorYellow + key + ": " + colorReset)
		} else {
			sb.WriteString(key + ": ")
		}
		sb.WriteString(ce.Context[key])
		sb.WriteString("\n")
	}
}

func (f *Formatter) writeCause(sb *strings.Builder, ce *CSVPlotError) {
	sb.WriteString(f.Indent)
	if f.UseColor {
		sb.WriteString(colorDim + "cause: " + ce.Cause.Error() + colorReset)
	} else {
		sb.WriteString("cause: " + ce.Cause.Error())
	}
	sb.WriteString("\n")
}

func (f *Formatter) writeSuggestions(sb *strings.Builder, ce *CSVPlotError) {
	if ce.HasContext() || ce.Cause != nil {
		sb.WriteString("\n")
	}
	for _, suggestion := range ce.Suggestions {
		sb.WriteString(f.Indent)
		if f.UseColor {
			sb.WriteString(colorCyan + "→ " + suggestion + colorReset)
		} else {
			sb.WriteString("→ " + suggestion)
		}
		sb.WriteString("\n")
	}
}

func (f *Formatter) formatMultiple(errs []error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		parts = append(parts, f.Format(err))
	}
	return strings.Join(parts, "\n")
}

// Display writes a formatted error to the formatter's writer.
func (f *Formatter) Display(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(f.Writer, f.Format(err))
}

// Display writes a formatted error to stderr with default settings.
func Display(err error) {
	DefaultFormatter().Display(err)
}

// Sprint returns a formatted error string without colors.
func Sprint(err error) string {
	f := &Formatter{Writer: io.Discard, Indent: "  "}
	return f.Format(err)
}

// CategoryLabel returns a human-readable label for an error category.
func CategoryLabel(cat Category) string {
	switch cat {
	case CategoryInput:
		return "Input Error"
	case CategoryTable:
		return "Table Error"
	case CategoryPlot:
		return "Plot Error"
	case CategoryExport:
		return "Export Error"
	case CategoryViewer:
		return "Viewer Error"
	case CategoryConfig:
		return "Configuration Error"
	case CategoryIO:
		return "I/O Error"
	case CategoryInternal:
		return "Internal Error"
	default:
		return "Error"
	}
}
