package quiz

import "testing"

func TestScore_Percentage(t *testing.T) {
	tests := []struct {
		score Score
		want  int
	}{
		{Score{0, 0}, 0},
		{Score{0, 8}, 0},
		{Score{2, 3}, 67},
		{Score{1, 8}, 13},
		{Score{16, 20}, 80},
		{Score{20, 20}, 100},
	}
	for _, tt := range tests {
		if got := tt.score.Percentage(); got != tt.want {
			t.Errorf("%v.Percentage() = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestScore_Accuracy(t *testing.T) {
	if got := (Score{0, 0}).Accuracy(); got != 0 {
		t.Errorf("empty Accuracy() = %v, want 0", got)
	}
	if got := (Score{3, 4}).Accuracy(); got != 0.75 {
		t.Errorf("3/4 Accuracy() = %v, want 0.75", got)
	}
}

func TestScore_Passed(t *testing.T) {
	if !(Score{16, 20}).Passed(80) {
		t.Error("16/20 should pass at 80%")
	}
	if (Score{15, 20}).Passed(80) {
		t.Error("15/20 should fail at 80%")
	}
}

func TestQuestion_Validate(t *testing.T) {
	base := Question{ID: "x", Prompt: "p", Options: []string{"a", "b"}, CorrectIndex: 0}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"empty id", func(q *Question) { q.ID = "" }, true},
		{"empty prompt", func(q *Question) { q.Prompt = "" }, true},
		{"one option", func(q *Question) { q.Options = []string{"a"} }, true},
		{"negative index", func(q *Question) { q.CorrectIndex = -1 }, true},
		{"index past end", func(q *Question) { q.CorrectIndex = 2 }, true},
		{"last index", func(q *Question) { q.CorrectIndex = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := base
			q.Options = append([]string(nil), base.Options...)
			tt.mutate(&q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
