package quiz

import (
	"slices"
	"time"
)

// CompleteFunc is invoked once, when the last unanswered question in a
// session is answered.
type CompleteFunc func(score, total int)

// Option configures a Session.
type Option func(*Session)

// WithOnComplete registers the completion callback.
func WithOnComplete(fn CompleteFunc) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session tracks one learner's pass through a fixed, ordered question set.
// It is created per quiz view and discarded afterwards. A Session is not
// safe for concurrent use.
type Session struct {
	questions []Question
	byID      map[string]int
	current   int

	// answers maps question ID to the selected option index.
	answers map[string]int

	onComplete CompleteFunc
	completed  bool

	now        func() time.Time
	startedAt  time.Time
	finishedAt time.Time
}

// NewSession validates the questions and returns a fresh session with every
// question unanswered and the cursor on the first question.
func NewSession(questions []Question, opts ...Option) (*Session, error) {
	if err := ValidateSet(questions); err != nil {
		return nil, err
	}

	s := &Session{
		questions: cloneQuestions(questions),
		byID:      make(map[string]int, len(questions)),
		answers:   make(map[string]int, len(questions)),
		now:       time.Now,
	}
	for i, q := range s.questions {
		s.byID[q.ID] = i
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s, nil
}

// SelectAnswer records optionIndex for the question and reveals the result.
// The second return value is false when nothing was recorded: the question
// was already answered (its existing Reveal is returned), the ID is unknown,
// or the index is out of range.
func (s *Session) SelectAnswer(questionID string, optionIndex int) (Reveal, bool) {
	i, ok := s.byID[questionID]
	if !ok {
		return Reveal{}, false
	}
	q := s.questions[i]

	if prev, answered := s.answers[questionID]; answered {
		return reveal(q, prev), false
	}
	if !q.ValidOption(optionIndex) {
		return Reveal{}, false
	}

	s.answers[questionID] = optionIndex

	if len(s.answers) == len(s.questions) && !s.completed {
		s.completed = true
		s.finishedAt = s.now()
		if s.onComplete != nil {
			score := s.Tally()
			s.onComplete(score.Correct, score.Total)
		}
	}

	return reveal(q, optionIndex), true
}

// SelectCurrent answers the question under the cursor.
func (s *Session) SelectCurrent(optionIndex int) (Reveal, bool) {
	q, ok := s.Current()
	if !ok {
		return Reveal{}, false
	}
	return s.SelectAnswer(q.ID, optionIndex)
}

// ComputeScore returns the final score once every question is answered.
func (s *Session) ComputeScore() (Score, bool) {
	if !s.IsComplete() {
		return Score{}, false
	}
	return s.Tally(), true
}

// Tally counts correct answers so far against the full question count.
// Unanswered questions count as wrong.
func (s *Session) Tally() Score {
	score := Score{Total: len(s.questions)}
	for _, q := range s.questions {
		if sel, ok := s.answers[q.ID]; ok && q.IsCorrect(sel) {
			score.Correct++
		}
	}
	return score
}

// State returns the question's answer state. Unknown IDs are Unanswered.
func (s *Session) State(questionID string) AnswerState {
	if _, ok := s.answers[questionID]; ok {
		return StateAnswered
	}
	return StateUnanswered
}

// Answer returns the recorded option index for the question.
func (s *Session) Answer(questionID string) (int, bool) {
	sel, ok := s.answers[questionID]
	return sel, ok
}

// IsRevealed reports whether correctness feedback is showing for the question.
// Reveal is immediate, so this matches the Answered state.
func (s *Session) IsRevealed(questionID string) bool {
	return s.State(questionID) == StateAnswered
}

// Reveal returns the feedback for an answered question.
func (s *Session) Reveal(questionID string) (Reveal, bool) {
	sel, ok := s.answers[questionID]
	if !ok {
		return Reveal{}, false
	}
	return reveal(s.questions[s.byID[questionID]], sel), true
}

// Results returns the reveals for all answered questions in question order.
func (s *Session) Results() []Reveal {
	out := make([]Reveal, 0, len(s.answers))
	for _, q := range s.questions {
		if sel, ok := s.answers[q.ID]; ok {
			out = append(out, reveal(q, sel))
		}
	}
	return out
}

// Questions returns a copy of the ordered question set.
func (s *Session) Questions() []Question {
	return cloneQuestions(s.questions)
}

func cloneQuestions(questions []Question) []Question {
	out := slices.Clone(questions)
	for i := range out {
		out[i].Options = slices.Clone(out[i].Options)
	}
	return out
}

// Question looks up a question by ID.
func (s *Session) Question(questionID string) (Question, bool) {
	i, ok := s.byID[questionID]
	if !ok {
		return Question{}, false
	}
	return s.questions[i], true
}

// Answered returns how many questions have been answered.
func (s *Session) Answered() int { return len(s.answers) }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.questions) }

// IsComplete reports whether every question has been answered.
func (s *Session) IsComplete() bool { return len(s.answers) == len(s.questions) }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed returns the time from start to completion, or to now while the
// session is still open.
func (s *Session) Elapsed() time.Duration {
	if s.completed {
		return s.finishedAt.Sub(s.startedAt)
	}
	return s.now().Sub(s.startedAt)
}

// Current returns the question under the cursor.
func (s *Session) Current() (Question, bool) {
	if s.current < 0 || s.current >= len(s.questions) {
		return Question{}, false
	}
	return s.questions[s.current], true
}

// CurrentIndex returns the zero-based cursor position.
func (s *Session) CurrentIndex() int { return s.current }

// Next moves the cursor forward. Returns false at the last question.
func (s *Session) Next() bool {
	if s.current >= len(s.questions)-1 {
		return false
	}
	s.current++
	return true
}

// Prev moves the cursor back. Returns false at the first question.
func (s *Session) Prev() bool {
	if s.current <= 0 {
		return false
	}
	s.current--
	return true
}

// GoTo moves the cursor to index i.
func (s *Session) GoTo(i int) bool {
	if i < 0 || i >= len(s.questions) {
		return false
	}
	s.current = i
	return true
}

// NextUnanswered moves the cursor to the first unanswered question after the
// current one, wrapping around. Returns false when all are answered.
func (s *Session) NextUnanswered() bool {
	n := len(s.questions)
	for step := 1; step <= n; step++ {
		i := (s.current + step) % n
		if _, ok := s.answers[s.questions[i].ID]; !ok {
			s.current = i
			return true
		}
	}
	return false
}
