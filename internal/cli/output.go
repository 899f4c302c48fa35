package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#48BB78")
	colorWarning = lipgloss.Color("#F6AD55")
	colorError   = lipgloss.Color("#FC8181")
	colorMuted   = lipgloss.Color("#718096")

	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleTitle   = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1)
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render("✓ ")+fmt.Sprintf(format, args...))
}

func printFiles(w io.Writer, files []string) {
	for _, f := range files {
		fmt.Fprintln(w, styleMuted.Render("  + "+f))
	}
}

// printWarnings renders the collected warnings in a single box. Nothing is
// printed when there are none.
func printWarnings(w io.Writer, list []string) {
	if len(list) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(styleTitle.Render("Warnings"))
	for _, msg := range list {
		b.WriteString("\n- ")
		b.WriteString(strings.ReplaceAll(msg, "\n", "\n  "))
	}
	fmt.Fprintln(w, stylePanel.Render(b.String()))
}

// printError writes err and its remediation hint, if any.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, styleError.Render("✗ ")+err.Error())
	if e := errs.As(err); e != nil && e.Advice != "" {
		fmt.Fprintln(w, styleMuted.Render("  "+e.Advice))
	}
}
