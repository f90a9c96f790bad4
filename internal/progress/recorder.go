// Package progress turns finished quizzes, exams and inline checks into
// stored attempts, and reads them back as per-unit statistics.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/store"
)

// DefaultQuizPassThreshold is the percentage an end-of-section quiz needs
// to count as passed.
const DefaultQuizPassThreshold = 80

var (
	// ErrIncomplete is returned when recording a quiz with unanswered questions.
	ErrIncomplete = errors.New("quiz not complete")

	// ErrNotFinished is returned when recording an exam that is still running.
	ErrNotFinished = errors.New("exam not finished")
)

// Recorder writes scored attempts through an AttemptRepo.
type Recorder struct {
	repo              store.AttemptRepo
	log               *zap.Logger
	quizPassThreshold int
	now               func() time.Time
	newID             func() string
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithQuizPassThreshold sets the pass mark for section quizzes.
func WithQuizPassThreshold(pct int) Option {
	return func(r *Recorder) { r.quizPassThreshold = pct }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDFunc overrides attempt ID generation.
func WithIDFunc(fn func() string) Option {
	return func(r *Recorder) { r.newID = fn }
}

// NewRecorder creates a Recorder. A nil logger disables logging.
func NewRecorder(repo store.AttemptRepo, log *zap.Logger, opts ...Option) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Recorder{
		repo:              repo,
		log:               log,
		quizPassThreshold: DefaultQuizPassThreshold,
		now:               time.Now,
		newID:             func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// QuizPassThreshold returns the configured section quiz pass mark.
func (r *Recorder) QuizPassThreshold() int { return r.quizPassThreshold }

// RecordQuiz stores a completed section quiz under unitCode.
func (r *Recorder) RecordQuiz(ctx context.Context, learner, unitCode, title string, sess *quiz.Session) (store.AttemptRecord, error) {
	score, ok := sess.ComputeScore()
	if !ok {
		return store.AttemptRecord{}, fmt.Errorf("record quiz %s: %w", unitCode, ErrIncomplete)
	}

	rec := store.AttemptRecord{
		AttemptID:      r.newID(),
		Timestamp:      r.now(),
		Learner:        learner,
		UnitCode:       unitCode,
		Kind:           store.KindQuiz,
		Title:          title,
		Score:          score.Correct,
		TotalQuestions: score.Total,
		Percentage:     score.Percentage(),
		Passed:         score.Passed(r.quizPassThreshold),
		TimeTaken:      sess.Elapsed(),
	}
	err := r.save(ctx, &rec, answerRows(sess))
	return rec, err
}

// RecordExam stores a finished mock exam. Unanswered questions are not
// written as answer rows but still count against the score.
func (r *Recorder) RecordExam(ctx context.Context, learner string, e *exam.Exam) (store.AttemptRecord, error) {
	cfg := e.Config()
	res, ok := e.Result()
	if !ok {
		return store.AttemptRecord{}, fmt.Errorf("record exam %s: %w", cfg.ID, ErrNotFinished)
	}

	rec := store.AttemptRecord{
		AttemptID:      r.newID(),
		Timestamp:      r.now(),
		Learner:        learner,
		UnitCode:       cfg.ID,
		Kind:           store.KindExam,
		Title:          cfg.Title,
		Score:          res.Score.Correct,
		TotalQuestions: res.Score.Total,
		Percentage:     res.Percentage,
		Passed:         res.Passed,
		Expired:        res.Expired,
		TimeTaken:      res.TimeTaken,
	}
	err := r.save(ctx, &rec, answerRows(e.Session()))
	return rec, err
}

// RecordCheck stores a single inline check answer. The check's question ID
// is the unit code and the section ID is kept as the title.
func (r *Recorder) RecordCheck(ctx context.Context, learner, sectionID string, rev quiz.Reveal) (store.AttemptRecord, error) {
	score := quiz.Score{Total: 1}
	if rev.IsCorrect {
		score.Correct = 1
	}

	rec := store.AttemptRecord{
		AttemptID:      r.newID(),
		Timestamp:      r.now(),
		Learner:        learner,
		UnitCode:       rev.QuestionID,
		Kind:           store.KindCheck,
		Title:          sectionID,
		Score:          score.Correct,
		TotalQuestions: score.Total,
		Percentage:     score.Percentage(),
		Passed:         rev.IsCorrect,
	}
	answers := []store.AnswerRecord{{
		QuestionID:   rev.QuestionID,
		Selected:     rev.Selected,
		CorrectIndex: rev.CorrectIndex,
		Correct:      rev.IsCorrect,
	}}
	err := r.save(ctx, &rec, answers)
	return rec, err
}

func (r *Recorder) save(ctx context.Context, rec *store.AttemptRecord, answers []store.AnswerRecord) error {
	if err := r.repo.RecordAttempt(ctx, rec, answers); err != nil {
		r.log.Error("record attempt failed",
			zap.String("attempt_id", rec.AttemptID),
			zap.String("learner", rec.Learner),
			zap.String("unit", rec.UnitCode),
			zap.String("kind", string(rec.Kind)),
			zap.Error(err),
		)
		return fmt.Errorf("record attempt: %w", err)
	}
	r.log.Info("attempt recorded",
		zap.String("attempt_id", rec.AttemptID),
		zap.String("learner", rec.Learner),
		zap.String("unit", rec.UnitCode),
		zap.String("kind", string(rec.Kind)),
		zap.Int("score", rec.Score),
		zap.Int("total", rec.TotalQuestions),
		zap.Bool("passed", rec.Passed),
	)
	return nil
}

func answerRows(sess *quiz.Session) []store.AnswerRecord {
	results := sess.Results()
	rows := make([]store.AnswerRecord, 0, len(results))
	for _, rev := range results {
		q, _ := sess.Question(rev.QuestionID)
		rows = append(rows, store.AnswerRecord{
			QuestionID:   rev.QuestionID,
			Category:     q.Category,
			Selected:     rev.Selected,
			CorrectIndex: rev.CorrectIndex,
			Correct:      rev.IsCorrect,
		})
	}
	return rows
}
