package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hagios/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗  ██████╗ ██╗ ██████╗ ███████╗
 ██║  ██║██╔══██╗██╔════╝ ██║██╔═══██╗██╔════╝
 ███████║███████║██║  ███╗██║██║   ██║███████╗
 ██╔══██║██╔══██║██║   ██║██║██║   ██║╚════██║
 ██║  ██║██║  ██║╚██████╔╝██║╚██████╔╝███████║
 ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝ ╚═╝ ╚═════╝ ╚══════╝`

const bannerCompact = "H A G I O S"

// RenderBanner returns the HAGIOS banner in the primary color, or a compact
// fallback for terminals narrower than 50 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 50 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
