// Package errorpanel shows a failure that stops a screen from loading, such
// as module content that could not be fetched.
package errorpanel

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/ui/layout"
	"github.com/abhisek/hagios/internal/ui/theme"
)

// ErrorPanel is a read-only screen describing err.
type ErrorPanel struct {
	title string
	err   error
}

var _ screen.Screen = (*ErrorPanel)(nil)

// New creates an ErrorPanel with the given title.
func New(title string, err error) *ErrorPanel {
	return &ErrorPanel{title: title, err: err}
}

func (p *ErrorPanel) Init() tea.Cmd {
	return nil
}

func (p *ErrorPanel) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

// Hint suggests what the learner can do about the error.
func (p *ErrorPanel) Hint() string {
	switch {
	case errors.Is(p.err, catalog.ErrDataUnavailable):
		return "The content could not be loaded. Check your connection or content directory and try again."
	case errors.Is(p.err, catalog.ErrUnknownModule):
		return "This module is not part of the course."
	default:
		return "Something went wrong."
	}
}

func (p *ErrorPanel) View(width, height int) string {
	msg := ""
	if p.err != nil {
		msg = p.err.Error()
	}
	body := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("⚠ "+p.title) +
		"\n\n" + theme.Body.Render(p.Hint()) +
		"\n\n" + theme.Hint.Render(msg)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (p *ErrorPanel) Title() string {
	return p.title
}

func (p *ErrorPanel) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
