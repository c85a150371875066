package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/screen"
	modulescreen "github.com/abhisek/hagios/internal/screens/module"
	"github.com/abhisek/hagios/internal/session"
	"github.com/abhisek/hagios/internal/ui/components"
	"github.com/abhisek/hagios/internal/ui/layout"
	"github.com/abhisek/hagios/internal/ui/theme"
)

// HomeScreen lists the modules with their lock state and overall progress.
type HomeScreen struct {
	env      *screen.Env
	modules  []catalog.Descriptor
	statuses []progress.Status
	menu     components.Menu
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.Resumer         = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates a HomeScreen with the last opened module highlighted.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env, modules: env.Catalog.Modules()}
	h.rebuild()

	if id, ok := session.LoadSelection(env.Ctx, env.KV); ok {
		if i, err := env.Catalog.IndexOf(id); err == nil {
			h.menu.Select(i)
		}
	}
	return h
}

// rebuild re-derives statuses and menu items, keeping the cursor.
func (h *HomeScreen) rebuild() {
	selected := h.menu.Selected
	h.statuses = h.env.Tracker.Statuses(h.env.Catalog)

	items := make([]components.MenuItem, len(h.modules))
	for i, m := range h.modules {
		id := m.ID
		items[i] = components.MenuItem{
			Label:    m.Title,
			Icon:     h.statuses[i].Icon(),
			Detail:   m.Duration,
			Disabled: h.statuses[i] == progress.StatusLocked,
			Action: func() tea.Cmd {
				return modulescreen.Open(h.env, id)
			},
		}
	}
	h.menu = components.NewMenu(items)
	h.menu.Select(selected)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes statuses after a module screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.rebuild()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "t" {
		p, err := theme.Toggle(h.env.Ctx, h.env.KV)
		if err != nil {
			return h, screen.Warn("theme not saved", err)
		}
		return h, screen.Status("Theme: " + p.Name)
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	sections = append(sections, renderStatsBar(h.env.Tracker.CompletedCount(h.env.Catalog),
		len(h.modules), h.env.Tracker.PercentComplete(h.env.Catalog), cw))

	if len(h.modules) == 0 {
		sections = append(sections, theme.Hint.Render("No modules available."))
	} else {
		sections = append(sections, h.menu.View())
		if !compact {
			sections = append(sections, renderDescriptor(h.modules[h.menu.Selected], cw))
		}
	}

	return components.Page(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Modules"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "t", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
