package summary

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/prodsensor/action/internal/analysis"
)

// Verdict line styles for TTY output.
var (
	readyStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
	notReadyStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "203"})
	conditionalStyle = lipgloss.NewStyle().Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	unknownStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "242", Dark: "246"})
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// VerdictLine returns a styled one-line verdict for terminal display.
func VerdictLine(v analysis.Verdict) string {
	style := unknownStyle
	label := "UNKNOWN"
	switch v {
	case analysis.VerdictProductionReady:
		style, label = readyStyle, "PRODUCTION READY"
	case analysis.VerdictNotProductionReady:
		style, label = notReadyStyle, "NOT PRODUCTION READY"
	case analysis.VerdictConditionallyReady:
		style, label = conditionalStyle, "CONDITIONALLY READY"
	}
	return style.Render(label)
}

// WriteTerminal writes the markdown summary to w, rendered through
// glamour when w is a terminal and passed through unchanged otherwise,
// so piped CI logs stay plain.
func WriteTerminal(w io.Writer, markdown string) {
	f, isFile := w.(*os.File)
	if !isFile || !IsTerminal(f) {
		fmt.Fprintln(w, markdown)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(glamourStyle()),
		glamour.WithWordWrap(terminalWidth(f)),
	)
	if err != nil {
		fmt.Fprintln(w, markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Fprintln(w, markdown)
		return
	}
	fmt.Fprint(w, out)
}

// glamourStyle returns a zero-margin glamour style config matching the
// detected terminal background.
func glamourStyle() gansi.StyleConfig {
	style := styles.LightStyleConfig
	if termenv.HasDarkBackground() {
		style = styles.DarkStyleConfig
	}
	zeroMargin := uint(0)
	style.Document.Margin = &zeroMargin
	style.CodeBlock.Margin = &zeroMargin
	return style
}

// terminalWidth returns the terminal width for f, defaulting to 100
// when detection fails.
func terminalWidth(f *os.File) int {
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
