package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/router"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/screens/home"
	"github.com/abhisek/hagios/internal/screens/welcome"
	"github.com/abhisek/hagios/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Env *screen.Env

	// SkipWelcome starts directly on the module list.
	SkipWelcome bool

	// Initial, when set, is pushed above the module list at startup.
	Initial screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env       *screen.Env
	router    *router.Router
	width     int
	height    int
	status    string
	statusErr bool
	initial   screen.Screen
}

// newAppModel creates an AppModel starting on the welcome splash, or on the
// module list when opts.SkipWelcome is set.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	homeFactory := func() screen.Screen { return home.New(env) }

	var first screen.Screen
	if opts.SkipWelcome || opts.Initial != nil {
		first = homeFactory()
	} else {
		first = welcome.New(homeFactory)
	}
	return AppModel{
		env:     env,
		router:  router.New(first),
		initial: opts.Initial,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.initial != nil {
		cmds = append(cmds, router.Push(m.initial))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.Error
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	percent := layout.RoundPercent(m.env.Tracker.PercentComplete(m.env.Catalog))
	header := layout.RenderHeader(title, percent, m.width)
	footer := layout.RenderFooter(m.hints(active), m.status, m.statusErr, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(opts.Env.Ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
