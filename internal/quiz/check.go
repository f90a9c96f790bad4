package quiz

// Check is a single embedded knowledge check. It follows the same
// Unanswered -> Answered machine as a Session question, with no reset.
type Check struct {
	question Question
	state    AnswerState
	selected int
}

// NewCheck validates the question and returns an unanswered check.
func NewCheck(q Question) (*Check, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &Check{question: q, selected: -1}, nil
}

// Select records optionIndex and reveals the result. Once answered, further
// calls return the original Reveal and false.
func (c *Check) Select(optionIndex int) (Reveal, bool) {
	if c.state == StateAnswered {
		return reveal(c.question, c.selected), false
	}
	if !c.question.ValidOption(optionIndex) {
		return Reveal{}, false
	}
	c.state = StateAnswered
	c.selected = optionIndex
	return reveal(c.question, optionIndex), true
}

// State returns the check's answer state.
func (c *Check) State() AnswerState { return c.state }

// Selected returns the chosen option once answered.
func (c *Check) Selected() (int, bool) {
	if c.state != StateAnswered {
		return -1, false
	}
	return c.selected, true
}

// Reveal returns the feedback once answered.
func (c *Check) Reveal() (Reveal, bool) {
	if c.state != StateAnswered {
		return Reveal{}, false
	}
	return reveal(c.question, c.selected), true
}

// Question returns the underlying question.
func (c *Check) Question() Question { return c.question }
