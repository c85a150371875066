// Package module is the reading view for one module: its sections, the
// links to the neighbouring modules and the entry points to the journal and
// quiz.
package module

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/router"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/screens/errorpanel"
	journalscreen "github.com/abhisek/hagios/internal/screens/journal"
	quizscreen "github.com/abhisek/hagios/internal/screens/quiz"
	"github.com/abhisek/hagios/internal/session"
	"github.com/abhisek/hagios/internal/ui/components"
	"github.com/abhisek/hagios/internal/ui/layout"
	"github.com/abhisek/hagios/internal/ui/theme"
)

// Open returns a command that loads module id and pushes its screen, or an
// error panel when the content is unavailable.
func Open(env *screen.Env, id string) tea.Cmd {
	return load(env, id, false)
}

func load(env *screen.Env, id string, replace bool) tea.Cmd {
	return func() tea.Msg {
		var next screen.Screen
		s, err := session.Open(env.Ctx, env.Source, env.Catalog, id)
		if err != nil {
			env.Logger.WarnContext(env.Ctx, "module unavailable", "module", id, "error", err)
			next = errorpanel.New("Module unavailable", err)
		} else {
			if err := session.SaveSelection(env.Ctx, env.KV, s.Module); err != nil {
				env.Logger.WarnContext(env.Ctx, "selection not saved", "module", id, "error", err)
			}
			next = New(env, s)
		}
		if replace {
			return router.ReplaceScreenMsg{Screen: next}
		}
		return router.PushScreenMsg{Screen: next}
	}
}

// ModuleScreen renders one section at a time.
type ModuleScreen struct {
	env      *screen.Env
	sess     *session.Session
	vp       viewport.Model
	rendered int // section index currently in vp, -1 when stale
}

var (
	_ screen.Screen          = (*ModuleScreen)(nil)
	_ screen.KeyHintProvider = (*ModuleScreen)(nil)
)

// New creates a ModuleScreen for an opened session.
func New(env *screen.Env, sess *session.Session) *ModuleScreen {
	vp := viewport.New()
	vp.SoftWrap = true
	return &ModuleScreen{env: env, sess: sess, vp: vp, rendered: -1}
}

func (m *ModuleScreen) Init() tea.Cmd {
	return nil
}

// Session returns the screen's module session.
func (m *ModuleScreen) Session() *session.Session {
	return m.sess
}

func (m *ModuleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "right", "l":
		if m.sess.NextSection() {
			m.rendered = -1
		}
	case "left", "h":
		if m.sess.PrevSection() {
			m.rendered = -1
		}
	case "d":
		return m, router.Push(journalscreen.New(m.env, m.sess))
	case "q":
		key := m.sess.Content.AnswerKey()
		if len(key.Questions) == 0 {
			return m, screen.Status("This module has no quiz.")
		}
		return m, router.Push(quizscreen.New(m.env, m.sess.Module.ID, key))
	case "n":
		link, ok := m.sess.NextModule(m.env.Tracker)
		switch {
		case !ok:
			return m, screen.Status("This is the last module.")
		case link.Locked:
			return m, screen.Status("Complete this module to unlock the next one.")
		}
		return m, load(m.env, link.Module.ID, true)
	case "p":
		prev, ok := m.sess.PreviousModule()
		if !ok {
			return m, screen.Status("This is the first module.")
		}
		return m, load(m.env, prev.ID, true)
	case "up", "down", "k", "j", "pgup", "pgdown", "space":
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ModuleScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := theme.Title.Width(cw).Render(m.sess.Module.Title)
	status, _ := m.env.Tracker.StatusOf(m.env.Catalog, m.sess.Module.ID)
	header := title + "\n" + theme.Subtitle.Width(cw).Render(statusLabel(status))

	sec, ok := m.sess.CurrentSection()
	heading := theme.Hint.Render("This module has no sections yet.")
	if ok {
		heading = components.Heading(sec.Title, "Section "+m.sess.SectionLabel())
	}

	footer := m.footer(cw)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer) - 6
	bodyHeight = max(bodyHeight, 3)
	if m.vp.Width() != cw || m.vp.Height() != bodyHeight {
		m.vp.SetWidth(cw)
		m.vp.SetHeight(bodyHeight)
		m.rendered = -1
	}
	if m.rendered != m.sess.Section {
		text := ""
		if ok {
			text = sec.Text()
		}
		m.vp.SetContent(theme.Body.Render(text))
		m.vp.GotoTop()
		m.rendered = m.sess.Section
	}

	content := strings.Join([]string{header, heading, m.vp.View(), footer}, "\n\n")
	return components.Page(content, width, height)
}

// footer renders the previous/next module links. The next link shows as
// locked until this module is completed.
func (m *ModuleScreen) footer(cw int) string {
	left := ""
	if prev, ok := m.sess.PreviousModule(); ok {
		left = theme.Unselected.Render("← " + prev.Title)
	}

	right := ""
	if link, ok := m.sess.NextModule(m.env.Tracker); ok {
		if link.Locked {
			right = theme.Locked.Render("🔒 " + link.Module.Title)
		} else {
			right = theme.Selected.Render(link.Module.Title + " →")
		}
	}

	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	gap = max(gap, 1)
	return left + strings.Repeat(" ", gap) + right
}

func (m *ModuleScreen) Title() string {
	return fmt.Sprintf("Module %d of %d", m.sess.Module.Order+1, m.sess.Catalog.Len())
}

func (m *ModuleScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Section"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "d", Description: "Journal"},
	}
	if len(m.sess.Content.AnswerKey().Questions) > 0 {
		hints = append(hints, layout.KeyHint{Key: "q", Description: "Quiz"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "p/n", Description: "Prev/Next module"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
	return hints
}

func statusLabel(s progress.Status) string {
	return s.Icon() + " " + s.Label()
}
