package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/r3d91ll/csvplot/pkg/console"
	"github.com/r3d91ll/csvplot/pkg/export"
	"github.com/r3d91ll/csvplot/pkg/plot"
)

const (
	// keyColumnWidth fits the longest key plus its padding: "exit".
	keyColumnWidth = 8

	indentGroup  = "  "
	indentOption = "    "
	indentPrompt = "        "
)

var (
	helpBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	bannerStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Bold(true).Padding(0, 3).Align(lipgloss.Center)
)

// RenderMenu writes the main menu, every line in bold.
func (r *Renderer) RenderMenu() {
	console.Display(r.w, "\nMenu:", "", "bold")
	for _, opt := range Options {
		console.Display(r.w, opt.Label, "", "bold")
	}
}

// RenderFull writes the complete help screen.
func (r *Renderer) RenderFull() {
	var sb strings.Builder

	sb.WriteString(Header("csvplot help"))
	sb.WriteString("\n")
	for _, g := range GroupOrder {
		r.renderGroup(&sb, g)
	}
	r.renderReference(&sb)

	r.writeln(helpBoxStyle.Render(strings.TrimRight(sb.String(), "\n")))
}

// RenderOption writes the detail for one menu entry. It returns false if
// key is not a menu input.
func (r *Renderer) RenderOption(key string) bool {
	opt, ok := GetOption(key)
	if !ok {
		r.writeln(fmt.Sprintf(indentGroup+"'%s' is not a menu option. Type 'help' to see all options.", key))
		return false
	}

	r.writeln("")
	r.writeln(indentGroup + StyleKey(opt.Key) + "  " + Bold(opt.Label))
	r.writeln(indentGroup + Dim(opt.Description))
	if len(opt.Prompts) > 0 {
		r.writeln(indentGroup + Bold("Asks for:"))
		for i, p := range opt.Prompts {
			r.writeln(fmt.Sprintf("%s%d. %s", indentOption, i+1, p))
		}
	}
	if opt.NeedsTable {
		r.writeln(indentGroup + Dim("Requires a loaded CSV file (option 1)."))
	}
	r.writeln("")
	return true
}

// Banner returns the boxed startup banner.
func Banner(version, sessionID string) string {
	body := "csvplot " + version + "\nPlot columns of CSV files from the terminal"
	if sessionID != "" {
		body += "\nsession " + sessionID
	}
	return bannerStyle.Render(body)
}

func (r *Renderer) renderGroup(sb *strings.Builder, g Group) {
	opts := GetOptionsByGroup(g)
	if len(opts) == 0 {
		return
	}

	sb.WriteString("\n")
	sb.WriteString(indentGroup + StyleGroup(g.DisplayName()) + "\n")
	for _, opt := range opts {
		key := StyleKey(opt.Key)
		pad := keyColumnWidth - lipgloss.Width(key)
		if pad < 1 {
			pad = 1
		}
		sb.WriteString(indentOption + key + strings.Repeat(" ", pad) + opt.Description + "\n")
		if len(opt.Prompts) > 0 {
			sb.WriteString(indentPrompt + Dim("asks for: "+strings.Join(opt.Prompts, "; ")) + "\n")
		}
	}
}

func (r *Renderer) renderReference(sb *strings.Builder) {
	sb.WriteString("\n")
	sb.WriteString(indentGroup + StyleGroup("Reference") + "\n")
	sb.WriteString(indentOption + "Plot types:     " + ValueList(plot.SupportedKinds()) +
		Dim(" (default "+plot.DefaultKind.String()+")") + "\n")
	sb.WriteString(indentOption + "Compare types:  " + ValueList(plot.SupportedCompareKinds()) +
		Dim(" (default "+plot.DefaultCompareKind.String()+", line adds a best-fit line)") + "\n")
	sb.WriteString(indentOption + "Save formats:   " + ValueList(export.SupportedFormats()) +
		Dim(" (default "+export.DefaultFormat.String()+")") + "\n")
	sb.WriteString(indentOption + "File names:     " +
		Dim("used as typed; empty saves to ") + StyleValue(export.DefaultName) +
		Dim(", or to the chart title for comparisons") + "\n")
	sb.WriteString(indentOption + "Keys:           " +
		StyleValue("Tab") + Dim(" complete  ") +
		StyleValue("↑↓") + Dim(" history  ") +
		StyleValue("Ctrl+D") + Dim(" exit") + "\n")
}

func (r *Renderer) writeln(s string) {
	fmt.Fprintln(r.w, s)
}
