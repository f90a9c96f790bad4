package quiz

import (
	"errors"
	"testing"
	"time"
)

func testQuestions(correct ...int) []Question {
	ids := []string{"q1", "q2", "q3", "q4", "q5", "q6"}
	qs := make([]Question, len(correct))
	for i, c := range correct {
		qs[i] = Question{
			ID:           ids[i],
			Prompt:       "Which option is right?",
			Options:      []string{"A", "B", "C", "D"},
			CorrectIndex: c,
			Explanation:  "Because.",
		}
	}
	return qs
}

func mustSession(t *testing.T, qs []Question, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(qs, opts...)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSession_Empty(t *testing.T) {
	_, err := NewSession(nil)
	if !errors.Is(err, ErrNoQuestions) {
		t.Errorf("err = %v, want ErrNoQuestions", err)
	}
}

func TestNewSession_DuplicateID(t *testing.T) {
	qs := testQuestions(0, 1)
	qs[1].ID = qs[0].ID
	_, err := NewSession(qs)
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
}

func TestNewSession_InvalidQuestion(t *testing.T) {
	qs := testQuestions(0, 4)
	_, err := NewSession(qs)
	var invalid *InvalidQuestionError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want *InvalidQuestionError", err)
	}
	if invalid.QuestionID != "q2" {
		t.Errorf("QuestionID = %q, want %q", invalid.QuestionID, "q2")
	}
}

func TestNewSession_CopiesQuestions(t *testing.T) {
	qs := testQuestions(0, 1)
	s := mustSession(t, qs)
	qs[0].Prompt = "mutated"
	qs[0].Options[0] = "mutated"

	q, _ := s.Question("q1")
	if q.Prompt == "mutated" {
		t.Error("session should not share the caller's slice")
	}
	if q.Options[0] == "mutated" {
		t.Error("session should not share the caller's options")
	}

	got := s.Questions()
	got[1].Options[0] = "changed"
	if q, _ := s.Question("q2"); q.Options[0] == "changed" {
		t.Error("Questions should return options the caller can modify")
	}
}

func TestSelectAnswer_RecordsOnce(t *testing.T) {
	s := mustSession(t, testQuestions(1, 0, 2))

	if got := s.State("q1"); got != StateUnanswered {
		t.Fatalf("initial State = %v, want unanswered", got)
	}

	r, ok := s.SelectAnswer("q1", 3)
	if !ok {
		t.Fatal("first selection should be recorded")
	}
	if r.Selected != 3 || r.IsCorrect || r.CorrectIndex != 1 {
		t.Errorf("Reveal = %+v, want selected 3, incorrect, correct index 1", r)
	}
	if r.Explanation != "Because." {
		t.Errorf("Explanation = %q", r.Explanation)
	}
	if got := s.State("q1"); got != StateAnswered {
		t.Errorf("State = %v, want answered", got)
	}

	r, ok = s.SelectAnswer("q1", 1)
	if ok {
		t.Error("second selection should be a no-op")
	}
	if r.Selected != 3 {
		t.Errorf("Reveal.Selected after no-op = %d, want 3", r.Selected)
	}
	if sel, _ := s.Answer("q1"); sel != 3 {
		t.Errorf("Answer = %d, want 3 (unchanged)", sel)
	}
}

func TestSelectAnswer_IgnoresBadInput(t *testing.T) {
	s := mustSession(t, testQuestions(1, 0))

	if _, ok := s.SelectAnswer("missing", 0); ok {
		t.Error("unknown ID should not be recorded")
	}
	if _, ok := s.SelectAnswer("q1", 4); ok {
		t.Error("out of range index should not be recorded")
	}
	if _, ok := s.SelectAnswer("q1", -1); ok {
		t.Error("negative index should not be recorded")
	}
	if s.Answered() != 0 {
		t.Errorf("Answered = %d, want 0", s.Answered())
	}
	if s.IsRevealed("q1") {
		t.Error("q1 should not be revealed")
	}
}

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name    string
		correct []int
		answers []int
		want    Score
	}{
		{"all correct", []int{1, 0, 2}, []int{1, 0, 2}, Score{3, 3}},
		{"none correct", []int{1, 0, 2}, []int{0, 1, 0}, Score{0, 3}},
		{"mixed", []int{1, 0, 2}, []int{1, 1, 2}, Score{2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSession(t, testQuestions(tt.correct...))
			for i, q := range s.Questions() {
				if _, ok := s.ComputeScore(); ok {
					t.Fatal("score should not be available before all answers")
				}
				s.SelectAnswer(q.ID, tt.answers[i])
			}
			got, ok := s.ComputeScore()
			if !ok {
				t.Fatal("score should be available once complete")
			}
			if got != tt.want {
				t.Errorf("ComputeScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOnComplete_CalledOnce(t *testing.T) {
	var calls, gotScore, gotTotal int
	s := mustSession(t, testQuestions(1, 0, 2), WithOnComplete(func(score, total int) {
		calls++
		gotScore, gotTotal = score, total
	}))

	s.SelectAnswer("q1", 1)
	s.SelectAnswer("q2", 1)
	if calls != 0 {
		t.Fatalf("onComplete called early (%d)", calls)
	}
	s.SelectAnswer("q3", 2)
	s.SelectAnswer("q3", 0)

	if calls != 1 {
		t.Errorf("onComplete calls = %d, want 1", calls)
	}
	if gotScore != 2 || gotTotal != 3 {
		t.Errorf("onComplete(%d, %d), want (2, 3)", gotScore, gotTotal)
	}
}

func TestTally_CountsUnansweredAsWrong(t *testing.T) {
	s := mustSession(t, testQuestions(1, 0, 2, 3))
	s.SelectAnswer("q1", 1)
	s.SelectAnswer("q2", 2)

	if got := s.Tally(); got != (Score{Correct: 1, Total: 4}) {
		t.Errorf("Tally = %v, want 1/4", got)
	}
}

func TestNavigation(t *testing.T) {
	s := mustSession(t, testQuestions(0, 1, 2))

	if s.Prev() {
		t.Error("Prev at start should fail")
	}
	if !s.Next() || !s.Next() {
		t.Fatal("Next should advance twice")
	}
	if s.Next() {
		t.Error("Next at end should fail")
	}
	if q, _ := s.Current(); q.ID != "q3" {
		t.Errorf("Current = %q, want q3", q.ID)
	}
	if s.GoTo(3) {
		t.Error("GoTo out of range should fail")
	}

	s.SelectAnswer("q1", 0)
	s.SelectAnswer("q3", 0)
	if !s.NextUnanswered() {
		t.Fatal("NextUnanswered should find q2")
	}
	if s.CurrentIndex() != 1 {
		t.Errorf("CurrentIndex = %d, want 1", s.CurrentIndex())
	}

	if _, ok := s.SelectCurrent(1); !ok {
		t.Fatal("SelectCurrent should record q2")
	}
	if s.NextUnanswered() {
		t.Error("NextUnanswered should fail when complete")
	}
}

func TestResults_InQuestionOrder(t *testing.T) {
	s := mustSession(t, testQuestions(0, 1, 2))
	s.SelectAnswer("q3", 2)
	s.SelectAnswer("q1", 1)

	results := s.Results()
	if len(results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(results))
	}
	if results[0].QuestionID != "q1" || results[1].QuestionID != "q3" {
		t.Errorf("Results order = [%s %s], want [q1 q3]", results[0].QuestionID, results[1].QuestionID)
	}
	if results[0].IsCorrect || !results[1].IsCorrect {
		t.Errorf("Results correctness = [%v %v], want [false true]", results[0].IsCorrect, results[1].IsCorrect)
	}
}

func TestElapsed_StopsAtCompletion(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	s := mustSession(t, testQuestions(0), WithClock(func() time.Time { return now }))

	now = start.Add(90 * time.Second)
	if got := s.Elapsed(); got != 90*time.Second {
		t.Errorf("Elapsed while open = %v, want 90s", got)
	}

	s.SelectAnswer("q1", 0)
	now = start.Add(10 * time.Minute)
	if got := s.Elapsed(); got != 90*time.Second {
		t.Errorf("Elapsed after completion = %v, want 90s", got)
	}
}
