package screen

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/store"
	"github.com/abhisek/hagios/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Env is the state shared by every screen.
type Env struct {
	Ctx      context.Context
	Catalog  catalog.Catalog
	Source   catalog.Source
	Tracker  *progress.Tracker
	Journals *journal.Store
	KV       store.KV
	Logger   *slog.Logger
}

// StatusMsg asks the app to show a one-line notice in the footer.
type StatusMsg struct {
	Text  string
	Error bool
}

// Status returns a command emitting a StatusMsg.
func Status(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// Warn returns a command emitting an error StatusMsg for err.
func Warn(prefix string, err error) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: prefix + ": " + err.Error(), Error: true} }
}
