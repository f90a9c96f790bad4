package quiz

// AnswerState is the per-question state of a quiz or inline check.
// The only transition is Unanswered -> Answered, and it is irreversible.
type AnswerState int

const (
	StateUnanswered AnswerState = iota // Initial: no option chosen yet
	StateAnswered                      // Terminal: option recorded and revealed
)

func (s AnswerState) String() string {
	switch s {
	case StateAnswered:
		return "answered"
	default:
		return "unanswered"
	}
}

// Reveal is the correctness feedback shown as soon as an option is chosen.
type Reveal struct {
	QuestionID   string `json:"question_id"`
	Selected     int    `json:"selected"`
	CorrectIndex int    `json:"correct_index"`
	IsCorrect    bool   `json:"is_correct"`
	Explanation  string `json:"explanation"`
}

func reveal(q Question, selected int) Reveal {
	return Reveal{
		QuestionID:   q.ID,
		Selected:     selected,
		CorrectIndex: q.CorrectIndex,
		IsCorrect:    q.IsCorrect(selected),
		Explanation:  q.Explanation,
	}
}
