// Package section shows a study page with its inline knowledge checks.
package section

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	quizscreen "github.com/abhisek/studycentre/internal/screens/quiz"
	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/layout"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

type checkRecordedMsg struct {
	Err error
}

// SectionScreen renders reading content, then one inline check at a time,
// then the FAQs.
type SectionScreen struct {
	deps   screen.Deps
	ref    course.SectionRef
	errMsg string

	checks  []*quiz.Check
	current int
	mc      components.MultiChoice

	scroll    int
	recordErr string
}

var _ screen.Screen = (*SectionScreen)(nil)
var _ screen.KeyHintProvider = (*SectionScreen)(nil)

func New(deps screen.Deps, sectionID string) *SectionScreen {
	s := &SectionScreen{deps: deps}

	ref, err := deps.Catalog.Section(sectionID)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.ref = ref

	for _, q := range ref.Section.Checks {
		c, err := quiz.NewCheck(q)
		if err != nil {
			s.errMsg = err.Error()
			return s
		}
		s.checks = append(s.checks, c)
	}
	s.loadCheck()
	return s
}

func (s *SectionScreen) Init() tea.Cmd { return nil }

func (s *SectionScreen) Title() string {
	if s.errMsg != "" {
		return "Section"
	}
	return s.ref.Section.Title
}

func (s *SectionScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "PgUp/PgDn", Description: "Scroll"}}
	if len(s.checks) > 0 {
		if s.mc.Revealed() {
			hints = append(hints, layout.KeyHint{Key: "n/p", Description: "Next/prev check"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "↑↓ Enter", Description: "Answer"})
		}
	}
	if s.ref.Section.HasQuiz() {
		hints = append(hints, layout.KeyHint{Key: "q", Description: "Take quiz"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *SectionScreen) loadCheck() {
	if s.current < 0 || s.current >= len(s.checks) {
		return
	}
	c := s.checks[s.current]
	s.mc = components.NewMultiChoice(c.Question())
	if rev, ok := c.Reveal(); ok {
		s.mc = s.mc.WithReveal(rev)
	}
}

// Correct returns how many checks have been answered correctly and how many
// have been answered at all.
func (s *SectionScreen) Correct() (correct, answered int) {
	for _, c := range s.checks {
		if rev, ok := c.Reveal(); ok {
			answered++
			if rev.IsCorrect {
				correct++
			}
		}
	}
	return correct, answered
}

func (s *SectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkRecordedMsg:
		s.recordErr = ""
		if msg.Err != nil {
			s.recordErr = msg.Err.Error()
		}
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SectionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch msg.String() {
	case "pgdown", "ctrl+d":
		s.scroll += 10
		return s, nil
	case "pgup", "ctrl+u":
		s.scroll = max(s.scroll-10, 0)
		return s, nil
	case "q":
		if s.ref.Section.HasQuiz() {
			next := quizscreen.NewSectionQuiz(s.deps, s.ref.Section.ID)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
		return s, nil
	case "n", "right":
		if s.current < len(s.checks)-1 {
			s.current++
			s.loadCheck()
		}
		return s, nil
	case "p", "left":
		if s.current > 0 {
			s.current--
			s.loadCheck()
		}
		return s, nil
	}

	if len(s.checks) == 0 || s.mc.Revealed() {
		return s, nil
	}

	var chosen int
	s.mc, chosen = s.mc.Update(msg)
	if chosen < 0 {
		return s, nil
	}
	rev, ok := s.checks[s.current].Select(chosen)
	if !ok {
		return s, nil
	}
	s.mc = s.mc.WithReveal(rev)
	return s, s.recordCheck(rev)
}

func (s *SectionScreen) recordCheck(rev quiz.Reveal) tea.Cmd {
	rec := s.deps.Recorder
	if rec == nil {
		return nil
	}
	learner, sectionID, log := s.deps.Learner, s.ref.Section.ID, s.deps.Logger()
	return func() tea.Msg {
		_, err := rec.RecordCheck(context.Background(), learner, sectionID, rev)
		if err != nil {
			log.Warn("check not recorded", zap.String("check", rev.QuestionID), zap.Error(err))
		}
		return checkRecordedMsg{Err: err}
	}
}

func (s *SectionScreen) View(width, height int) string {
	if s.errMsg != "" {
		return components.Centered(
			lipgloss.NewStyle().Foreground(theme.Error).
				Render(fmt.Sprintf("Error: %s\n\nPress any key to go back.", s.errMsg)),
			width, height)
	}

	cw := components.ContentWidth(width)
	content := lipgloss.PlaceHorizontal(width, lipgloss.Center, s.render(cw))

	lines := strings.Split(content, "\n")
	s.scroll = min(s.scroll, max(len(lines)-height, 0))
	end := min(s.scroll+height, len(lines))
	return strings.Join(lines[s.scroll:end], "\n")
}

func (s *SectionScreen) render(cw int) string {
	sec := s.ref.Section
	var b strings.Builder

	b.WriteString(theme.Subtitle.Render(s.ref.CourseTitle + " › " + s.ref.ModuleTitle))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(sec.Title))
	b.WriteString("\n\n")

	if sec.Summary != "" {
		b.WriteString(theme.Hint.Width(cw).Render(sec.Summary) + "\n\n")
	}
	for _, p := range sec.Body {
		b.WriteString(theme.Body.Width(cw).Render(p) + "\n\n")
	}

	if len(s.checks) > 0 {
		correct, answered := s.Correct()
		header := fmt.Sprintf("Knowledge check %d of %d", s.current+1, len(s.checks))
		score := theme.Muted.Render(fmt.Sprintf("%d/%d correct", correct, answered))
		b.WriteString(components.Card(theme.Subtitle.Render(header)+"   "+score+"\n\n"+s.mc.View(cw-6), cw))
		b.WriteString("\n")
		if s.recordErr != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Answer not saved: "+s.recordErr) + "\n")
		}
		b.WriteString("\n")
	}

	if sec.HasQuiz() {
		b.WriteString(theme.Selected.Render(fmt.Sprintf("Section quiz: %d questions. Press q to start.", len(sec.Quiz.Questions))))
		b.WriteString("\n\n")
	}

	if len(sec.FAQs) > 0 {
		b.WriteString(theme.Subtitle.Render("Frequently asked questions") + "\n\n")
		for _, f := range sec.FAQs {
			b.WriteString(theme.Body.Bold(true).Width(cw).Render(f.Question) + "\n")
			b.WriteString(theme.Muted.Width(cw).Render(f.Answer) + "\n\n")
		}
	}
	return b.String()
}
