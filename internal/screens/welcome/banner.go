package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/ui/theme"
)

const bannerArt = `
 ┌─┐┌┬┐┬ ┬┌┬┐┬ ┬   ┌─┐┌─┐┌┐┌┌┬┐┬─┐┌─┐
 └─┐ │ │ │ ││└┬┘   │  ├┤ │││ │ ├┬┘├┤
 └─┘ ┴ └─┘─┴┘ ┴    └─┘└─┘┘└┘ ┴ ┴└─└─┘`

const bannerCompact = "S T U D Y   C E N T R E"

// RenderBanner returns the banner, falling back to plain letters on
// terminals narrower than 44 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 44 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
