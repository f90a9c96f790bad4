package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/ui/theme"
)

// ProgressBar draws a filled bar for a ratio in [0, 1], optionally with a
// marker at a target such as the pass mark.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int

	marker    float64
	hasMarker bool
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     min(max(percent, 0), 1),
		ShowPercent: showPercent,
		Width:       width,
	}
}

// WithMarker returns a copy of p that draws a tick at ratio at.
func (p ProgressBar) WithMarker(at float64) ProgressBar {
	p.marker = min(max(at, 0), 1)
	p.hasMarker = true
	return p
}

// Ratio returns done/total clamped to [0, 1].
func Ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return min(max(float64(done)/float64(total), 0), 1)
}

func (p ProgressBar) View() string {
	var prefix, suffix string
	if p.Label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(p.Percent*100+0.5)))
	}

	cells := max(p.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	filled := int(float64(cells) * p.Percent)
	tick := -1
	if p.hasMarker {
		tick = min(int(float64(cells)*p.marker), cells-1)
	}

	var bar strings.Builder
	for i := range cells {
		style := theme.ProgressEmpty
		if i < filled {
			style = theme.ProgressFilled
		}
		cell := " "
		if i == tick {
			cell = "│"
		}
		bar.WriteString(style.Render(cell))
	}
	return prefix + bar.String() + suffix
}
