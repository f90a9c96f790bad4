package quiz

import (
	"errors"
	"fmt"
)

// Difficulty grades a question in a mock-exam bank.
type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// MinOptions is the smallest option list a question may carry.
const MinOptions = 2

var (
	// ErrNoQuestions is returned when a session is built from an empty set.
	ErrNoQuestions = errors.New("quiz has no questions")

	// ErrDuplicateID is returned when two questions in a set share an ID.
	ErrDuplicateID = errors.New("duplicate question ID")
)

// Question is a single multiple-choice item. It is authored statically and
// never mutated after loading.
type Question struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`

	// Optional bank metadata, used when drawing mock-exam papers.
	Section    string     `json:"section,omitempty"`
	Topic      string     `json:"topic,omitempty"`
	Category   string     `json:"category,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// InvalidQuestionError reports a question that breaks a structural rule.
type InvalidQuestionError struct {
	QuestionID string
	Reason     string
}

func (e *InvalidQuestionError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("invalid question: %s", e.Reason)
	}
	return fmt.Sprintf("invalid question %q: %s", e.QuestionID, e.Reason)
}

// Validate checks the question's structural invariants.
func (q Question) Validate() error {
	switch {
	case q.ID == "":
		return &InvalidQuestionError{Reason: "empty ID"}
	case q.Prompt == "":
		return &InvalidQuestionError{QuestionID: q.ID, Reason: "empty prompt"}
	case len(q.Options) < MinOptions:
		return &InvalidQuestionError{
			QuestionID: q.ID,
			Reason:     fmt.Sprintf("needs at least %d options, has %d", MinOptions, len(q.Options)),
		}
	case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
		return &InvalidQuestionError{
			QuestionID: q.ID,
			Reason:     fmt.Sprintf("correct index %d outside [0, %d]", q.CorrectIndex, len(q.Options)-1),
		}
	}
	return nil
}

// ValidOption reports whether i indexes one of the question's options.
func (q Question) ValidOption(i int) bool {
	return i >= 0 && i < len(q.Options)
}

// IsCorrect reports whether option i is the correct answer.
func (q Question) IsCorrect(i int) bool {
	return i == q.CorrectIndex
}

// ValidateSet validates every question and rejects empty sets and duplicate IDs.
func ValidateSet(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	seen := make(map[string]bool, len(questions))
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return err
		}
		if seen[q.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}
