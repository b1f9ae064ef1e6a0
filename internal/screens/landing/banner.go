package landing

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

const bannerArt = `
 ██████╗  █████╗ ██████╗ ██╗     ███████╗██╗   ██╗
 ██╔══██╗██╔══██╗██╔══██╗██║     ██╔════╝╚██╗ ██╔╝
 ██████╔╝███████║██████╔╝██║     █████╗   ╚████╔╝
 ██╔═══╝ ██╔══██║██╔══██╗██║     ██╔══╝    ╚██╔╝
 ██║     ██║  ██║██║  ██║███████╗███████╗   ██║
 ╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "P A R L E Y"

// RenderBanner returns the banner in the primary color, compact below 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
