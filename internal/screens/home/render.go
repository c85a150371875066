package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/ui/components"
	"github.com/abhisek/hagios/internal/ui/theme"
)

const titleFull = `╻ ╻┏━┓┏━╸╻┏━┓┏━┓
┣━┫┣━┫┃╺┓┃┃ ┃┗━┓
╹ ╹╹ ╹┗━┛╹┗━┛┗━┛`

const titleCompact = "H · A · G · I · O · S"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(art))
}

// renderStatsBar shows completed modules and the overall progress bar.
func renderStatsBar(done, total int, percent float64, cw int) string {
	count := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("✅ %d of %d modules", done, total))
	bar := components.NewProgressBar("", percent, true, cw-4).View()

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Padding(0, 1).
		Render(count + "\n" + bar)
}

// renderDescriptor shows the highlighted module's details.
func renderDescriptor(d catalog.Descriptor, cw int) string {
	s := theme.Selected.Render(d.Title)
	if d.Subtitle != "" {
		s += "\n" + theme.Hint.Render(d.Subtitle)
	}
	if d.Description != "" {
		s += "\n\n" + theme.Body.Render(d.Description)
	}
	if d.KeyVerse != "" {
		s += "\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render("“"+d.KeyVerse+"”")
	}
	return components.Card(s, cw)
}
