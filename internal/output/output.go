// Package output renders human-facing CLI output with consistent styling.
// Colors are applied only when writing to a terminal; piped output stays
// plain.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Key     lipgloss.Style
}

// Printer writes styled human-readable output.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a Printer. When tty is false every style is a no-op,
// so redirected output contains no escape sequences.
func NewPrinter(w io.Writer, tty bool) *Printer {
	if !tty {
		return &Printer{w: w}
	}
	return &Printer{
		w: w,
		styles: Styles{
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Bold:    lipgloss.NewStyle().Bold(true),
			Muted:   lipgloss.NewStyle().Faint(true),
			Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		},
	}
}

// Successf prints a success line.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.w, "%s: %s\n", p.styles.Warning.Render("Warning"), fmt.Sprintf(format, args...))
}

// Printf writes formatted text without styling.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.w, format, args...)
}

// Mutedf prints a de-emphasized line (paths, hints).
func (p *Printer) Mutedf(format string, args ...any) {
	fmt.Fprintln(p.w, p.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// KeyValue prints a "Key: value" line with the key highlighted.
func (p *Printer) KeyValue(key, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Key.Render(key+":"), value)
}

// Table prints rows with space-aligned columns and bold headers.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(p.w, "  ")
		}
		fmt.Fprint(p.w, p.styles.Bold.Render(padRight(h, widths[i])))
	}
	fmt.Fprintln(p.w)

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				fmt.Fprint(p.w, "  ")
			}
			fmt.Fprint(p.w, padRight(cell, widths[i]))
		}
		fmt.Fprintln(p.w)
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
