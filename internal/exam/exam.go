// Package exam runs timed mock examinations drawn from a course question bank.
package exam

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/quiz"
)

// ErrFinished is returned when answering an exam that has already ended.
var ErrFinished = errors.New("exam finished")

// Config describes a mock exam paper.
type Config struct {
	ID             string
	Title          string
	TotalQuestions int
	TimeLimit      time.Duration // zero means untimed
	PassThreshold  int           // percentage, 1..100
	Categories     []string
	ExitSection    string
}

// ConfigFrom converts authored exam content to a Config.
func ConfigFrom(e course.Exam) Config {
	return Config{
		ID:             e.ID,
		Title:          e.Title,
		TotalQuestions: e.TotalQuestions,
		TimeLimit:      time.Duration(e.TimeLimitSecs) * time.Second,
		PassThreshold:  e.PassThreshold,
		Categories:     append([]string(nil), e.Categories...),
		ExitSection:    e.ExitSection,
	}
}

// Validate checks the config is usable against a bank of bankSize questions.
func (c Config) Validate(bankSize int) error {
	switch {
	case c.TotalQuestions <= 0:
		return fmt.Errorf("exam %s: total questions must be positive", c.ID)
	case c.TotalQuestions > bankSize:
		return fmt.Errorf("exam %s: wants %d questions, bank has %d", c.ID, c.TotalQuestions, bankSize)
	case c.PassThreshold < 1 || c.PassThreshold > 100:
		return fmt.Errorf("exam %s: pass threshold %d outside [1, 100]", c.ID, c.PassThreshold)
	case c.TimeLimit < 0:
		return fmt.Errorf("exam %s: negative time limit", c.ID)
	}
	return nil
}

// CategoryScore is the score for one question category.
type CategoryScore struct {
	Category string     `json:"category"`
	Score    quiz.Score `json:"score"`
}

// Result summarises a finished exam.
type Result struct {
	Score      quiz.Score      `json:"score"`
	Percentage int             `json:"percentage"`
	Passed     bool            `json:"passed"`
	TimeTaken  time.Duration   `json:"time_taken"`
	Expired    bool            `json:"expired"`
	ByCategory []CategoryScore `json:"by_category"`
}

// Option configures Start.
type Option func(*options)

type options struct {
	rng *rand.Rand
	now func() time.Time
}

// WithRand fixes the random source used to draw the paper.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Exam is one sitting of a mock exam. It wraps a quiz session with a
// deadline. Not safe for concurrent use.
type Exam struct {
	cfg     Config
	session *quiz.Session

	startedAt  time.Time
	finishedAt time.Time
	finished   bool
	expired    bool
}

// Start draws a balanced paper from bank and begins the clock.
func Start(cfg Config, bank []quiz.Question, opts ...Option) (*Exam, error) {
	if err := cfg.Validate(len(bank)); err != nil {
		return nil, err
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	paper := SelectBalanced(bank, cfg.TotalQuestions, cfg.Categories, o.rng)
	sess, err := quiz.NewSession(paper, quiz.WithClock(o.now))
	if err != nil {
		return nil, fmt.Errorf("exam %s: %w", cfg.ID, err)
	}

	return &Exam{
		cfg:       cfg,
		session:   sess,
		startedAt: sess.StartedAt(),
	}, nil
}

// Config returns the exam's configuration.
func (e *Exam) Config() Config { return e.cfg }

// Session exposes the underlying quiz session for navigation and reveals.
func (e *Exam) Session() *quiz.Session { return e.session }

// StartedAt returns when the paper was drawn.
func (e *Exam) StartedAt() time.Time { return e.startedAt }

// Deadline returns when the exam expires. ok is false for untimed exams.
func (e *Exam) Deadline() (time.Time, bool) {
	if e.cfg.TimeLimit <= 0 {
		return time.Time{}, false
	}
	return e.startedAt.Add(e.cfg.TimeLimit), true
}

// Remaining returns the time left at now, never negative. Untimed exams
// always report zero.
func (e *Exam) Remaining(now time.Time) time.Duration {
	deadline, ok := e.Deadline()
	if !ok {
		return 0
	}
	if e.finished {
		now = e.finishedAt
	}
	if left := deadline.Sub(now); left > 0 {
		return left
	}
	return 0
}

// Expired reports whether the time limit has passed at now.
func (e *Exam) Expired(now time.Time) bool {
	if e.finished {
		return e.expired
	}
	deadline, ok := e.Deadline()
	return ok && !now.Before(deadline)
}

// Finished reports whether the exam has ended.
func (e *Exam) Finished() bool { return e.finished }

// Answer records an answer at now. Answers after the deadline are refused
// and end the exam. Answering the last open question also ends it.
func (e *Exam) Answer(questionID string, optionIndex int, now time.Time) (quiz.Reveal, bool, error) {
	if e.finished {
		return quiz.Reveal{}, false, ErrFinished
	}
	if e.Expired(now) {
		e.Finish(now)
		return quiz.Reveal{}, false, ErrFinished
	}
	rev, ok := e.session.SelectAnswer(questionID, optionIndex)
	if e.session.IsComplete() {
		e.Finish(now)
	}
	return rev, ok, nil
}

// Finish ends the exam at now and returns its result. Calling Finish again
// returns the original result.
func (e *Exam) Finish(now time.Time) Result {
	if !e.finished {
		e.expired = e.Expired(now)
		if deadline, ok := e.Deadline(); ok && e.expired {
			now = deadline
		}
		e.finished = true
		e.finishedAt = now
	}
	r, _ := e.Result()
	return r
}

// Result returns the exam result. ok is false until the exam has finished.
// Unanswered questions count as wrong.
func (e *Exam) Result() (Result, bool) {
	if !e.finished {
		return Result{}, false
	}
	score := e.session.Tally()
	return Result{
		Score:      score,
		Percentage: score.Percentage(),
		Passed:     score.Passed(e.cfg.PassThreshold),
		TimeTaken:  e.finishedAt.Sub(e.startedAt),
		Expired:    e.expired,
		ByCategory: e.byCategory(),
	}, true
}

func (e *Exam) byCategory() []CategoryScore {
	scores := make(map[string]*quiz.Score)
	for _, q := range e.session.Questions() {
		s, ok := scores[q.Category]
		if !ok {
			s = &quiz.Score{}
			scores[q.Category] = s
		}
		s.Total++
		if sel, answered := e.session.Answer(q.ID); answered && q.IsCorrect(sel) {
			s.Correct++
		}
	}

	out := make([]CategoryScore, 0, len(scores))
	for _, c := range e.cfg.Categories {
		if s, ok := scores[c]; ok {
			out = append(out, CategoryScore{Category: c, Score: *s})
			delete(scores, c)
		}
	}
	var rest []string
	for c := range scores {
		rest = append(rest, c)
	}
	sort.Strings(rest)
	for _, c := range rest {
		out = append(out, CategoryScore{Category: c, Score: *scores[c]})
	}
	return out
}
