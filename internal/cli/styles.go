package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	// Color palette
	primary = lipgloss.Color("#FF6B9D")
	subtle  = lipgloss.Color("240")
	accent  = lipgloss.Color("#82AAFF")
	warning = lipgloss.Color("#FFCB6B")

	titleStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(subtle)

	accentStyle = lipgloss.NewStyle().
			Foreground(accent)

	warnStyle = lipgloss.NewStyle().
			Foreground(warning)
)

// truncate shortens s to at most max display cells, never splitting a
// rune. CJK characters occupy two cells, so width is measured, not byte
// length.
func truncate(s string, max int) string {
	return runewidth.Truncate(s, max, "…")
}
