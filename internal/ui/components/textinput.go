package components

import (
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and a minimum-length
// indicator.
type TextInput struct {
	Model     textinput.Model
	Label     string
	MinLength int // runes required beyond this count; 0 disables the check
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(label, placeholder string, minLength, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if width > 0 {
		ti.SetWidth(width)
	}
	return TextInput{
		Model:     ti,
		Label:     label,
		MinLength: minLength,
	}
}

// Init returns nil.
func (t TextInput) Init() tea.Cmd {
	return nil
}

// Focus gives the input keyboard focus.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Long reports whether the value is longer than MinLength runes.
func (t TextInput) Long() bool {
	return utf8.RuneCountInString(t.Model.Value()) > t.MinLength
}

// View renders the label, input and length indicator.
func (t TextInput) View() string {
	label := theme.Body.Render(t.Label)
	if t.Model.Focused() {
		label = theme.Selected.Render(t.Label)
	}
	view := t.Model.View()
	if t.MinLength > 0 {
		if t.Long() {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render("…")
		}
	}
	return label + "\n" + view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}
