package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/quiz"
	"github.com/abhisek/hagios/internal/ui/theme"
)

// MultiChoice presents one quiz question. Enter locks in the highlighted
// option; the correct answer is revealed once Reveal is set.
type MultiChoice struct {
	Question  quiz.Question
	Number    string // e.g. "2/5"
	Selected  int
	Submitted bool
	Reveal    bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(q quiz.Question, number string) MultiChoice {
	return MultiChoice{Question: q, Number: number}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Question.Options)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Question.Options) > 0 {
			m.Submitted = true
		}
	}

	return m, nil
}

// Chosen returns the ID of the submitted option.
func (m MultiChoice) Chosen() (string, bool) {
	if !m.Submitted || m.Selected >= len(m.Question.Options) {
		return "", false
	}
	return m.Question.Options[m.Selected].ID, true
}

// IsCorrect returns true if the submitted option is the right one.
func (m MultiChoice) IsCorrect() bool {
	id, ok := m.Chosen()
	return ok && id == m.Question.CorrectOptionID
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	s := ""
	if m.Number != "" {
		s += theme.Hint.Render("Question "+m.Number) + "\n"
	}
	s += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question.Prompt) + "\n\n"

	for i, opt := range m.Question.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+rune(i%26), opt.Text)

		var style lipgloss.Style
		switch {
		case m.Reveal && opt.ID == m.Question.CorrectOptionID:
			style = theme.Correct
		case m.Reveal && m.Submitted && i == m.Selected:
			style = theme.Incorrect
		case m.Submitted && i == m.Selected:
			style = theme.Selected
		case m.Submitted || m.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		s += style.Render(line) + "\n"
	}

	return s
}
