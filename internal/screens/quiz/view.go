package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/layout"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.Centered(
			lipgloss.NewStyle().Foreground(theme.Error).
				Render(fmt.Sprintf("Error: %s\n\nPress any key to go back.", s.errMsg)),
			width, height)
	}
	if s.confirmQuit {
		return s.renderQuitConfirm(width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(s.renderInfoLine(cw))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", components.Ratio(s.sess.Answered(), s.sess.Total()), false, cw).View())
	b.WriteString("\n\n")
	b.WriteString(s.mc.View(cw))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *QuizScreen) renderInfoLine(cw int) string {
	left := theme.Title.Render(s.title)

	right := fmt.Sprintf("Q %d/%d  answered %d",
		s.sess.CurrentIndex()+1, s.sess.Total(), s.sess.Answered())
	rightStyled := theme.Muted.Render(right)

	if s.exam != nil {
		if _, timed := s.exam.Deadline(); timed {
			secs := int(s.exam.Remaining(s.now()).Seconds())
			style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
			if secs < 60 {
				style = style.Foreground(theme.Error)
			}
			rightStyled += "  " + style.Render("⏱ "+layout.FormatDuration(secs))
		}
	}

	gap := cw - lipgloss.Width(left) - lipgloss.Width(rightStyled)
	if gap < 1 {
		return left + "\n" + rightStyled
	}
	return left + strings.Repeat(" ", gap) + rightStyled
}

func (s *QuizScreen) renderQuitConfirm(width, height int) string {
	question := "Leave this quiz?"
	detail := "Your answers so far will not be saved."
	if s.exam != nil {
		question = "Hand in this exam now?"
		detail = "Unanswered questions will be marked wrong."
	}

	lines := []string{
		theme.Body.Bold(true).Render(question),
		theme.Muted.Render(detail),
		"",
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes"),
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"),
	}
	return components.Centered(strings.Join(lines, "\n"), width, height)
}
