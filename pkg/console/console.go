// Package console writes colored and styled text to the terminal using ANSI
// escape codes.
//
// Every line is written as: color code, style codes in the order given, the
// text, then a reset code. Unknown color names fall back to white so callers
// never have to handle a failure.
package console

import (
	"fmt"
	"io"
	"strings"
)

// Reset ends any color or style started by a previous escape code.
const Reset = "\033[0m"

// Color is an ANSI foreground color.
type Color int

// Foreground colors in ANSI code order.
const (
	Black Color = 30 + iota
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
	White
)

// DefaultColor is used whenever a color name is not recognized.
const DefaultColor = White

var colorNames = map[string]Color{
	"black":  Black,
	"red":    Red,
	"green":  Green,
	"yellow": Yellow,
	"blue":   Blue,
	"purple": Purple,
	"cyan":   Cyan,
	"white":  White,
}

// ParseColor maps a color name to a Color. The second result is false when
// the name is not one of the eight supported colors, in which case the
// returned Color is DefaultColor.
func ParseColor(name string) (Color, bool) {
	if c, ok := colorNames[name]; ok {
		return c, true
	}
	return DefaultColor, false
}

// Code returns the escape sequence that switches to c.
func (c Color) Code() string {
	return fmt.Sprintf("\033[%dm", int(c))
}

// String returns the color name.
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Style is a text attribute applied after the color.
type Style string

const (
	Bold      Style = "bold"
	Underline Style = "underline"
)

var styleCodes = map[Style]string{
	Bold:      "\033[1m",
	Underline: "\033[4m",
}

// ParseStyle maps a style name to a Style.
func ParseStyle(name string) (Style, bool) {
	s := Style(name)
	_, ok := styleCodes[s]
	return s, ok
}

// Code returns the escape sequence for s, or "" for an unknown style.
func (s Style) Code() string {
	return styleCodes[s]
}

// Sprint returns text wrapped in the escape codes for color and styles.
// Unknown style names are skipped.
func Sprint(text, color string, styles ...string) string {
	c, _ := ParseColor(color)

	var sb strings.Builder
	sb.WriteString(c.Code())
	for _, name := range styles {
		if s, ok := ParseStyle(name); ok {
			sb.WriteString(s.Code())
		}
	}
	sb.WriteString(text)
	sb.WriteString(Reset)
	return sb.String()
}

// Display writes the styled text to w followed by a newline.
func Display(w io.Writer, text, color string, styles ...string) {
	fmt.Fprintln(w, Sprint(text, color, styles...))
}

// Printer is a Display bound to one writer.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes one styled line.
func (p *Printer) Print(text, color string, styles ...string) {
	Display(p.w, text, color, styles...)
}

// Plain writes one line without any escape codes.
func (p *Printer) Plain(text string) {
	fmt.Fprintln(p.w, text)
}

// Printf writes formatted text without escape codes and without adding a
// newline.
func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
