package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette is a named set of colors the styles are built from.
type Palette struct {
	Name      string
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

// Light is parchment and ink; the default.
var Light = Palette{
	Name:      "light",
	Primary:   lipgloss.Color("#7C4A1E"), // Walnut
	Secondary: lipgloss.Color("#2F6F6A"), // Deep teal
	Accent:    lipgloss.Color("#B7791F"), // Gold
	Success:   lipgloss.Color("#2F855A"),
	Error:     lipgloss.Color("#C53030"),
	Text:      lipgloss.Color("#1F2933"),
	TextDim:   lipgloss.Color("#6B7280"),
	Bg:        lipgloss.Color("#FBF7EF"),
	BgCard:    lipgloss.Color("#F1E9DA"),
	Border:    lipgloss.Color("#D6C7A9"),
}

// Dark keeps the same hues on a night background.
var Dark = Palette{
	Name:      "dark",
	Primary:   lipgloss.Color("#E0B37A"),
	Secondary: lipgloss.Color("#5FB3A9"),
	Accent:    lipgloss.Color("#F6C453"),
	Success:   lipgloss.Color("#48BB78"),
	Error:     lipgloss.Color("#FC8181"),
	Text:      lipgloss.Color("#F5F1E8"),
	TextDim:   lipgloss.Color("#9CA3AF"),
	Bg:        lipgloss.Color("#14110F"),
	BgCard:    lipgloss.Color("#241F1B"),
	Border:    lipgloss.Color("#3D342C"),
}

// Colors of the active palette.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Locked     lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current = Light

func init() {
	use(Light)
}

// Current returns the active palette.
func Current() Palette {
	return current
}

// Apply switches to the named palette. Unknown names select Light and
// report false.
func Apply(name string) bool {
	switch name {
	case Dark.Name:
		use(Dark)
		return true
	case Light.Name:
		use(Light)
		return true
	default:
		use(Light)
		return false
	}
}

func use(p Palette) {
	current = p

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	Bg = p.Bg
	BgCard = p.BgCard
	Border = p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Foreground(TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
