// Package quiz runs section quizzes and timed mock exams in the terminal.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/progress"
	qz "github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/screens/summary"
	"github.com/abhisek/studycentre/internal/store"
	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/layout"
)

// QuizScreen presents one question at a time and reveals the answer as soon
// as an option is chosen.
type QuizScreen struct {
	deps screen.Deps
	now  func() time.Time

	kind          store.AttemptKind
	unitCode      string
	title         string
	passThreshold int
	exitSection   string

	sess *qz.Session
	exam *exam.Exam // nil for section quizzes

	mc          components.MultiChoice
	confirmQuit bool
	done        bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackInterceptor = (*QuizScreen)(nil)

// NewSectionQuiz starts the end-of-section quiz for sectionID.
func NewSectionQuiz(deps screen.Deps, sectionID string) *QuizScreen {
	s := &QuizScreen{deps: deps, now: deps.Clock(), kind: store.KindQuiz}

	ref, err := deps.Catalog.Section(sectionID)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	if !ref.Section.HasQuiz() {
		s.errMsg = fmt.Sprintf("section %q has no quiz", sectionID)
		return s
	}

	sess, err := qz.NewSession(ref.Section.Quiz.Questions, qz.WithClock(s.now))
	if err != nil {
		s.errMsg = err.Error()
		return s
	}

	s.unitCode = ref.UnitCode()
	s.title = ref.Section.Quiz.Title
	if s.title == "" {
		s.title = ref.Section.Title
	}
	s.passThreshold = progress.DefaultQuizPassThreshold
	if deps.Recorder != nil {
		s.passThreshold = deps.Recorder.QuizPassThreshold()
	}
	s.sess = sess
	s.loadCurrent()
	return s
}

// NewExam draws a fresh paper for the mock exam examID.
func NewExam(deps screen.Deps, examID string, opts ...exam.Option) *QuizScreen {
	s := &QuizScreen{deps: deps, now: deps.Clock(), kind: store.KindExam}

	ex, err := deps.Catalog.Exam(examID)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}

	opts = append([]exam.Option{exam.WithClock(s.now)}, opts...)
	e, err := exam.Start(exam.ConfigFrom(ex), ex.Bank, opts...)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}

	s.unitCode = ex.ID
	s.title = ex.Title
	s.passThreshold = ex.PassThreshold
	s.exitSection = ex.ExitSection
	s.exam = e
	s.sess = e.Session()
	s.loadCurrent()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	if s.exam == nil {
		return nil
	}
	if _, timed := s.exam.Deadline(); timed {
		return tick()
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (s *QuizScreen) Title() string {
	if s.kind == store.KindExam {
		return "Mock Exam"
	}
	return "Quiz"
}

func (s *QuizScreen) InterceptsBack() bool {
	return s.errMsg == "" && !s.done
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmQuit:
		return []layout.KeyHint{{Key: "Y", Description: "Leave"}, {Key: "N", Description: "Keep going"}}
	case s.mc.Revealed():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "←→/Home/End", Description: "Browse"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter/1-9", Description: "Answer"},
		{Key: "←→/Home/End", Description: "Browse"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.exam == nil || s.done {
		return s, nil
	}
	if s.exam.Finished() || s.exam.Expired(s.now()) {
		return s, s.finish()
	}
	return s, tick()
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.done {
		return s, nil
	}

	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			if s.exam != nil {
				// Leaving an exam hands it in; unanswered questions score zero.
				s.exam.Finish(s.now())
				return s, s.finish()
			}
			if s.sess.IsComplete() {
				return s, s.finish()
			}
			s.done = true
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "left", "h":
		if s.sess.Prev() {
			s.loadCurrent()
		}
		return s, nil
	case "right", "l":
		if s.sess.Next() {
			s.loadCurrent()
		}
		return s, nil
	case "home", "g":
		if s.sess.GoTo(0) {
			s.loadCurrent()
		}
		return s, nil
	case "end", "G":
		if s.sess.GoTo(s.sess.Total() - 1) {
			s.loadCurrent()
		}
		return s, nil
	}

	if s.mc.Revealed() {
		if key == "enter" || key == "space" || key == "n" {
			return s, s.advance()
		}
		return s, nil
	}

	var chosen int
	s.mc, chosen = s.mc.Update(msg)
	if chosen < 0 {
		return s, nil
	}
	return s, s.answer(chosen)
}

// answer records the choice for the question under the cursor.
func (s *QuizScreen) answer(option int) tea.Cmd {
	q, ok := s.sess.Current()
	if !ok {
		return nil
	}

	var rev qz.Reveal
	if s.exam != nil {
		var err error
		rev, _, err = s.exam.Answer(q.ID, option, s.now())
		if errors.Is(err, exam.ErrFinished) {
			return s.finish()
		}
	} else {
		rev, _ = s.sess.SelectCurrent(option)
	}
	s.mc = s.mc.WithReveal(rev)
	return nil
}

// advance moves to the next unanswered question, or finishes when none remain.
func (s *QuizScreen) advance() tea.Cmd {
	if s.sess.IsComplete() || (s.exam != nil && s.exam.Finished()) {
		return s.finish()
	}
	s.sess.NextUnanswered()
	s.loadCurrent()
	return nil
}

func (s *QuizScreen) loadCurrent() {
	q, ok := s.sess.Current()
	if !ok {
		return
	}
	s.mc = components.NewMultiChoice(q)
	if rev, ok := s.sess.Reveal(q.ID); ok {
		s.mc = s.mc.WithReveal(rev)
	}
}

// finish swaps in the results screen and records the attempt.
func (s *QuizScreen) finish() tea.Cmd {
	if s.done {
		return nil
	}
	s.done = true

	data := s.summaryData()
	results := summary.New(data)
	return tea.Sequence(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} },
		s.record(),
	)
}

func (s *QuizScreen) summaryData() summary.Data {
	d := summary.Data{
		Kind:          s.kind,
		UnitCode:      s.unitCode,
		Title:         s.title,
		PassThreshold: s.passThreshold,
		ExitSection:   s.exitSection,
		Questions:     s.sess.Questions(),
		Answers:       s.sess.Results(),
	}
	if s.exam != nil {
		res := s.exam.Finish(s.now())
		d.Score = res.Score
		d.Percentage = res.Percentage
		d.Passed = res.Passed
		d.Expired = res.Expired
		d.TimeTaken = res.TimeTaken
		d.ByCategory = res.ByCategory
		return d
	}
	d.Score = s.sess.Tally()
	d.Percentage = d.Score.Percentage()
	d.Passed = d.Score.Passed(s.passThreshold)
	d.TimeTaken = s.sess.Elapsed()
	return d
}

func (s *QuizScreen) record() tea.Cmd {
	rec := s.deps.Recorder
	if rec == nil {
		return nil
	}
	learner, log := s.deps.Learner, s.deps.Logger()
	e, sess, unit, title := s.exam, s.sess, s.unitCode, s.title

	return func() tea.Msg {
		ctx := context.Background()
		var (
			attempt store.AttemptRecord
			err     error
		)
		if e != nil {
			attempt, err = rec.RecordExam(ctx, learner, e)
		} else {
			attempt, err = rec.RecordQuiz(ctx, learner, unit, title, sess)
		}
		if err != nil {
			log.Warn("attempt not recorded", zap.String("unit", unit), zap.Error(err))
			return summary.RecordedMsg{Err: err}
		}
		return summary.RecordedMsg{AttemptID: attempt.AttemptID}
	}
}
