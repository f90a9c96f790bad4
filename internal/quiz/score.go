package quiz

import "fmt"

// Score is a (correct, total) pair.
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// Percentage returns the score as a whole percentage, rounded half up.
// An empty score is 0%.
func (s Score) Percentage() int {
	if s.Total <= 0 {
		return 0
	}
	return (s.Correct*200 + s.Total) / (s.Total * 2)
}

// Accuracy returns Correct / Total in [0, 1].
func (s Score) Accuracy() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// Passed reports whether the percentage meets the threshold.
func (s Score) Passed(threshold int) bool {
	return s.Percentage() >= threshold
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Total)
}
