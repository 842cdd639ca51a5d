// Package help renders the csvplot menu, the startup banner and the help
// screen.
//
// The menu is the fixed list of numbered actions printed before every
// prompt. The help screen expands each action with what it asks for, the
// supported plot kinds and output formats, and how output files are named
// when no name is given.
//
// # Usage
//
//	r := help.NewRenderer(os.Stdout)
//	r.RenderMenu()        // bold numbered menu
//	r.RenderFull()        // complete help screen
//	r.RenderOption("5")   // detail for one menu entry
//
// Option metadata is available without rendering:
//
//	opt, ok := help.GetOption("3")
//	keys := help.Keys()
package help

import "io"

// ANSI codes used by the help screen. The menu itself goes through the
// console package so that it keeps the exact "color + bold" sequence.
const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorGray   = "\033[90m"
)

// Renderer formats and writes help output.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a new help renderer that writes to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}
