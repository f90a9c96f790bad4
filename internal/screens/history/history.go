package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/progress"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/store"
	"github.com/abhisek/studycentre/internal/ui/layout"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

// pageSize caps how many attempts are loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

type answersLoadedMsg struct {
	AttemptID string
	Answers   []store.AnswerRecord
	Err       error
}

// HistoryScreen lists recorded quiz and exam attempts, newest first.
type HistoryScreen struct {
	recorder *progress.Recorder
	learner  string

	attempts []store.AttemptRecord
	answers  map[string][]store.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(deps screen.Deps) *HistoryScreen {
	return &HistoryScreen{
		recorder: deps.Recorder,
		learner:  deps.Learner,
		answers:  make(map[string][]store.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	rec, learner := s.recorder, s.learner
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		// Inline checks are recorded one row per answer; the list shows
		// quizzes and exams only.
		quizzes, err := rec.History(ctx, learner, store.KindQuiz, pageSize)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		exams, err := rec.History(ctx, learner, store.KindExam, pageSize)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Attempts: mergeNewestFirst(quizzes, exams, pageSize)}
	}
}

// mergeNewestFirst merges two newest-first lists, keeping at most limit.
func mergeNewestFirst(a, b []store.AttemptRecord, limit int) []store.AttemptRecord {
	out := make([]store.AttemptRecord, 0, min(len(a)+len(b), limit))
	for len(out) < limit && (len(a) > 0 || len(b) > 0) {
		switch {
		case len(b) == 0 || (len(a) > 0 && a[0].Sequence > b[0].Sequence):
			out = append(out, a[0])
			a = a[1:]
		default:
			out = append(out, b[0])
			b = b[1:]
		}
	}
	return out
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err == nil {
			s.answers[msg.AttemptID] = msg.Answers
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.attempts) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			if s.expanded[s.selected] {
				return s, s.loadAnswers(s.attempts[s.selected].AttemptID)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadAnswers(attemptID string) tea.Cmd {
	if _, ok := s.answers[attemptID]; ok {
		return nil
	}
	rec := s.recorder
	return func() tea.Msg {
		answers, err := rec.Answers(context.Background(), attemptID)
		return answersLoadedMsg{AttemptID: attemptID, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Finish a quiz to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		status := theme.Incorrect.Render("not passed")
		if a.Passed {
			status = theme.Correct.Render("passed")
		}
		if a.Expired {
			status += theme.Muted.Render(" (timed out)")
		}

		line := fmt.Sprintf("%s%s  %-4s  %-32s  %d/%d  %3d%%  %s  ",
			prefix,
			a.Timestamp.Local().Format("Jan 02 15:04"),
			a.Kind,
			truncate(a.Title, 32),
			a.Score, a.TotalQuestions, a.Percentage,
			layout.FormatDuration(int(a.TimeTaken.Seconds())))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)+status))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(a.AttemptID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(attemptID string, width int) string {
	answers, ok := s.answers[attemptID]
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("    Loading answers...")) + "\n"
	}
	if len(answers) == 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render("    No answers recorded")) + "\n"
	}

	var b strings.Builder
	for _, ans := range answers {
		mark := theme.Incorrect.Render("✗")
		if ans.Correct {
			mark = theme.Correct.Render("✓")
		}
		line := fmt.Sprintf("    %s %-24s %s", mark, truncate(ans.QuestionID, 24), theme.Muted.Render(ans.Category))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
