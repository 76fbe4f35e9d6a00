// Package cli provides shared formatting helpers for CLI output.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
const (
	green   = "#A9DC76"
	red     = "#FF6188"
	orange  = "#FC9867"
	cyan    = "#78DCE8"
	comment = "#727072"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(green))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(red))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(orange))
	iconStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(cyan))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(comment))
	boldStyle    = lipgloss.NewStyle().Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cyan)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cyan)).
			Padding(0, 2).
			MarginLeft(2)

	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(cyan))
)

// Width of section divider lines.
const sectionWidth = 42

// Success renders s in the success color.
func Success(s string) string { return successStyle.Render(s) }

// Fail renders s in the error color.
func Fail(s string) string { return errorStyle.Render(s) }

// Warn renders s in the warning color.
func Warn(s string) string { return warnStyle.Render(s) }

// Dim renders s in dim text.
func Dim(s string) string { return dimStyle.Render(s) }

// Bold renders s in bold.
func Bold(s string) string { return boldStyle.Render(s) }

// Icon renders an icon name in the accent color.
func Icon(s string) string { return iconStyle.Render(s) }

// Header prints a bordered title box. Used by `navstamp check` and
// `navstamp doctor`.
func Header(title string) {
	fmt.Println()
	fmt.Println(headerStyle.Render(title))
}

// Section prints a section divider line: ── Name ─────────────────
func Section(name string) {
	prefix := "── " + name + " "
	remaining := sectionWidth - lipgloss.Width(prefix)
	if remaining < 0 {
		remaining = 0
	}
	fmt.Printf("\n  %s\n\n", sectionStyle.Render(prefix+strings.Repeat("─", remaining)))
}

// Box prints a light-border box around content lines.
func Box(lines []string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(comment)).
		Padding(0, 2).
		MarginLeft(2)
	fmt.Println()
	fmt.Println(box.Render(strings.Join(lines, "\n")))
}

// Footer prints the project footer in dim text.
func Footer() {
	fmt.Printf("\n  %s\n\n", Dim("github.com/navstamp/navstamp"))
}

// ChangeLine formats one changed file for apply output.
func ChangeLine(path, action, icon string) string {
	return fmt.Sprintf("  %s %s %s %s", Success("+"), path, Icon(icon), Dim("("+action+")"))
}

// FailLine formats one failed file for apply output.
func FailLine(path, msg string) string {
	return fmt.Sprintf("  %s %s %s", Fail("!"), path, Dim(msg))
}

// ShortenHome replaces $HOME prefix with ~.
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// FormatNumber adds comma separators (1234 -> "1,234").
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return FormatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}
