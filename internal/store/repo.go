package store

import (
	"context"
	"time"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mock/attempt_repo.go -package=mock_store . AttemptRepo

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit    int         // max results (0 = unlimited)
	After    int64       // sequence > After
	Before   int64       // sequence < Before
	From     time.Time   // timestamp >= From
	To       time.Time   // timestamp <= To
	Learner  string      // exact match when non-empty
	UnitCode string      // exact match when non-empty
	Kind     AttemptKind // exact match when non-empty
}

// AttemptKind distinguishes the three ways a learner can be scored.
type AttemptKind string

const (
	KindQuiz  AttemptKind = "quiz"
	KindExam  AttemptKind = "exam"
	KindCheck AttemptKind = "check"
)

// AttemptRecord is one completed quiz, exam or inline check.
type AttemptRecord struct {
	ID             int
	Sequence       int64
	Timestamp      time.Time
	AttemptID      string
	Learner        string
	UnitCode       string
	Kind           AttemptKind
	Title          string
	Score          int
	TotalQuestions int
	Percentage     int
	Passed         bool
	Expired        bool
	TimeTaken      time.Duration
}

// AnswerRecord is a single answered question within an attempt.
type AnswerRecord struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	AttemptID    string
	QuestionID   string
	Category     string
	Selected     int
	CorrectIndex int
	Correct      bool
}

// UnitStats aggregates a learner's attempts at one unit.
type UnitStats struct {
	UnitCode       string
	Attempts       int
	BestPercentage int
	LastPercentage int
	Passed         bool // any attempt passed
	LastAttempt    time.Time
}

// AttemptRepo persists scored attempts and their answers.
type AttemptRepo interface {
	// AppendAttempt stores an attempt. Sequence, Timestamp (when zero) and
	// ID are filled in on success.
	AppendAttempt(ctx context.Context, rec *AttemptRecord) error

	// AppendAnswer stores one answer row.
	AppendAnswer(ctx context.Context, rec *AnswerRecord) error

	// RecordAttempt stores an attempt and its answers in one transaction.
	RecordAttempt(ctx context.Context, rec *AttemptRecord, answers []AnswerRecord) error

	// QueryAttempts returns attempts in sequence order.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// AnswersForAttempt returns the answers of one attempt in sequence order.
	AnswersForAttempt(ctx context.Context, attemptID string) ([]AnswerRecord, error)

	// UnitStats aggregates attempts per unit for learner. An empty unitCode
	// returns every unit, ordered by unit code.
	UnitStats(ctx context.Context, learner, unitCode string) ([]UnitStats, error)

	// Reset deletes a learner's attempts and answers, or everything when
	// learner is empty. Returns the number of attempts removed.
	Reset(ctx context.Context, learner string) (int, error)
}
