package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/store"
	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/layout"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

// Data is everything the results screen shows about a finished attempt.
type Data struct {
	Kind          store.AttemptKind
	UnitCode      string
	Title         string
	Score         quiz.Score
	Percentage    int
	Passed        bool
	PassThreshold int
	Expired       bool
	TimeTaken     time.Duration
	ByCategory    []exam.CategoryScore
	ExitSection   string

	Questions []quiz.Question
	Answers   []quiz.Reveal
}

// RecordedMsg reports whether the attempt was saved.
type RecordedMsg struct {
	AttemptID string
	Err       error
}

// SummaryScreen shows the score and a per-question review.
type SummaryScreen struct {
	data     Data
	answers  map[string]quiz.Reveal
	selected int

	recorded  bool
	attemptID string
	recordErr string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(data Data) *SummaryScreen {
	answers := make(map[string]quiz.Reveal, len(data.Answers))
	for _, r := range data.Answers {
		answers[r.QuestionID] = r
	}
	return &SummaryScreen{data: data, answers: answers}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	next := "Done"
	if s.data.ExitSection != "" {
		next = "Continue"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Review"},
		{Key: "Enter", Description: next},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordedMsg:
		s.recorded = true
		s.attemptID = msg.AttemptID
		if msg.Err != nil {
			s.recordErr = msg.Err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.data.Questions)-1 {
				s.selected++
			}
		case "enter":
			if id := s.data.ExitSection; id != "" {
				return s, func() tea.Msg { return screen.OpenSectionMsg{SectionID: id} }
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	d := s.data
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Title.Render(d.Title))
	b.WriteString("\n\n")

	verdict := theme.Incorrect.Render(fmt.Sprintf("Not yet. You need %d%% to pass.", d.PassThreshold))
	if d.Passed {
		verdict = theme.Correct.Render("Passed!")
	}
	b.WriteString(verdict)
	if d.Expired {
		b.WriteString("  " + theme.Muted.Render("(time ran out)"))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("Score %s   %d%%   Time %s",
		d.Score, d.Percentage, layout.FormatDuration(int(d.TimeTaken.Seconds())))))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", d.Score.Accuracy(), true, cw).
		WithMarker(float64(d.PassThreshold) / 100).View())
	b.WriteString("\n")

	if len(d.ByCategory) > 0 {
		b.WriteString("\n" + theme.Subtitle.Render("By category") + "\n")
		for _, c := range d.ByCategory {
			b.WriteString(fmt.Sprintf("  %-28s %s\n", c.Category, c.Score))
		}
	}

	b.WriteString("\n" + theme.Subtitle.Render("Review") + "\n")
	b.WriteString(s.renderReview(cw))

	b.WriteString("\n")
	b.WriteString(s.renderRecordStatus())

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *SummaryScreen) renderReview(cw int) string {
	var b strings.Builder
	for i, q := range s.data.Questions {
		mark := theme.Muted.Render("–")
		rev, answered := s.answers[q.ID]
		if answered {
			if rev.IsCorrect {
				mark = theme.Correct.Render("✓")
			} else {
				mark = theme.Incorrect.Render("✗")
			}
		}
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, mark, style.Render(truncate(q.Prompt, cw-6))))

		if i == s.selected {
			b.WriteString(s.renderDetail(q, rev, answered, cw))
		}
	}
	return b.String()
}

func (s *SummaryScreen) renderDetail(q quiz.Question, rev quiz.Reveal, answered bool, cw int) string {
	var lines []string
	if answered {
		lines = append(lines, "Your answer: "+q.Options[rev.Selected])
	} else {
		lines = append(lines, "Not answered")
	}
	lines = append(lines, "Correct: "+q.Options[q.CorrectIndex])
	if q.Explanation != "" {
		lines = append(lines, q.Explanation)
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		PaddingLeft(4).
		Width(cw).
		Render(strings.Join(lines, "\n")) + "\n"
}

func (s *SummaryScreen) renderRecordStatus() string {
	switch {
	case !s.recorded:
		return ""
	case s.recordErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Result not saved: " + s.recordErr)
	default:
		return theme.Hint.Render("Result saved.")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
