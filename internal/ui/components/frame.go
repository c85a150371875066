package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/ui/theme"
)

// ContentWidth returns the reading width used by every page section.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6 // page border + padding
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Page centers content in the given area inside a rounded page border.
func Page(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Height(height - 2).
		Padding(0, 2).
		Render(content)
}

// Card wraps content in a bordered card of content width cw.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(content)
}

// Heading renders a section heading with an optional dim suffix, such as
// "Section 2/5".
func Heading(title, suffix string) string {
	h := theme.Selected.Render(title)
	if suffix != "" {
		h += "  " + theme.Hint.Render(suffix)
	}
	return h
}
