package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

// MultiChoice renders a question's options with a cursor. Once a reveal is
// attached the cursor is frozen and the correct and chosen options are
// highlighted.
type MultiChoice struct {
	Question quiz.Question
	Cursor   int
	reveal   *quiz.Reveal
}

func NewMultiChoice(q quiz.Question) MultiChoice {
	return MultiChoice{Question: q}
}

// WithReveal freezes the component on a recorded answer.
func (m MultiChoice) WithReveal(r quiz.Reveal) MultiChoice {
	m.reveal = &r
	m.Cursor = r.Selected
	return m
}

func (m MultiChoice) Revealed() bool { return m.reveal != nil }

// Update moves the cursor. It returns the chosen option index on Enter or a
// digit key, or -1 when nothing was chosen.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, int) {
	if m.reveal != nil {
		return m, -1
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, -1
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Question.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, m.Cursor
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			i := int(key[0] - '1')
			if m.Question.ValidOption(i) {
				m.Cursor = i
				return m, i
			}
		}
	}
	return m, -1
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}

func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(m.Question.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Question.Options {
		prefix := "  "
		if i == m.Cursor && m.reveal == nil {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, optionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case m.reveal != nil && i == m.reveal.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.reveal != nil && i == m.reveal.Selected:
			style = theme.Incorrect
			line += "  ✗"
		case m.reveal != nil:
			style = theme.Muted
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Width(width).Render(line) + "\n")
	}

	if m.reveal != nil {
		b.WriteString("\n")
		if m.reveal.IsCorrect {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Not quite. The answer is " + optionLabel(m.reveal.CorrectIndex) + "."))
		}
		if m.reveal.Explanation != "" {
			b.WriteString("\n")
			b.WriteString(theme.Body.Width(width).Render(m.reveal.Explanation))
		}
		b.WriteString("\n")
	}
	return b.String()
}
