package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/ui/theme"
)

// ContentWidth returns the inner width shared by all cards on a screen.
func ContentWidth(frameWidth int) int {
	// Leave room for the border (2) and padding (4).
	return min(max(frameWidth-6, 20), 76)
}

// Card wraps content in a rounded border at width cw.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Centered places content in the middle of the available area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
