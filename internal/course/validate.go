package course

import (
	"fmt"
	"strings"

	"github.com/abhisek/studycentre/internal/quiz"
)

// validateCourses performs all structural checks on the given course set.
// Returns a combined error describing all problems found, or nil if valid.
func validateCourses(courses []Course) error {
	var errs []string

	courseIDs := make(map[string]bool, len(courses))
	sectionIDs := make(map[string]string)
	checkIDs := make(map[string]string)
	examIDs := make(map[string]string)

	for _, co := range courses {
		if co.ID == "" {
			errs = append(errs, "course with empty ID")
		}
		if courseIDs[co.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course ID: %q", co.ID))
		}
		courseIDs[co.ID] = true

		for _, m := range co.Modules {
			if len(m.Sections) == 0 {
				errs = append(errs, fmt.Sprintf("module %q in course %q has no sections", m.ID, co.ID))
			}
			for _, s := range m.Sections {
				if other, dup := sectionIDs[s.ID]; dup {
					errs = append(errs, fmt.Sprintf("duplicate section ID %q (courses %q and %q)", s.ID, other, co.ID))
				}
				sectionIDs[s.ID] = co.ID

				for _, q := range s.Checks {
					if other, dup := checkIDs[q.ID]; dup {
						errs = append(errs, fmt.Sprintf("duplicate check ID %q (sections %q and %q)", q.ID, other, s.ID))
					}
					checkIDs[q.ID] = s.ID
					errs = appendQuestionErr(errs, "section "+s.ID+" check", q)
				}

				if s.Quiz != nil {
					errs = append(errs, questionSetErrs("section "+s.ID+" quiz", s.Quiz.Questions)...)
				}
			}
		}

		for _, e := range co.Exams {
			if other, dup := examIDs[e.ID]; dup {
				errs = append(errs, fmt.Sprintf("duplicate exam ID %q (courses %q and %q)", e.ID, other, co.ID))
			}
			examIDs[e.ID] = co.ID
			errs = append(errs, examErrs(e)...)
		}
	}

	// Exit sections may point into any course, so check them last.
	for _, co := range courses {
		for _, e := range co.Exams {
			if e.ExitSection != "" {
				if _, ok := sectionIDs[e.ExitSection]; !ok {
					errs = append(errs, fmt.Sprintf("exam %q exit section %q does not exist", e.ID, e.ExitSection))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("course catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func appendQuestionErr(errs []string, where string, q quiz.Question) []string {
	if err := q.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("%s: %v", where, err))
	}
	return errs
}

func questionSetErrs(where string, qs []quiz.Question) []string {
	var errs []string
	if len(qs) == 0 {
		return append(errs, where+": no questions")
	}
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			errs = append(errs, fmt.Sprintf("%s: duplicate question ID %q", where, q.ID))
		}
		seen[q.ID] = true
		errs = appendQuestionErr(errs, where, q)
	}
	return errs
}

func examErrs(e Exam) []string {
	prefix := "exam " + e.ID
	errs := questionSetErrs(prefix+" bank", e.Bank)

	if e.TotalQuestions <= 0 {
		errs = append(errs, fmt.Sprintf("%s: totalQuestions must be > 0, got %d", prefix, e.TotalQuestions))
	}
	if e.TotalQuestions > len(e.Bank) {
		errs = append(errs, fmt.Sprintf("%s: totalQuestions %d exceeds bank size %d", prefix, e.TotalQuestions, len(e.Bank)))
	}
	if e.PassThreshold < 1 || e.PassThreshold > 100 {
		errs = append(errs, fmt.Sprintf("%s: passThreshold must be in [1, 100], got %d", prefix, e.PassThreshold))
	}
	if e.TimeLimitSecs < 0 {
		errs = append(errs, fmt.Sprintf("%s: timeLimitSecs must be >= 0, got %d", prefix, e.TimeLimitSecs))
	}

	if len(e.Categories) == 0 {
		return errs
	}

	declared := make(map[string]int, len(e.Categories))
	for _, c := range e.Categories {
		declared[c] = 0
	}
	for _, q := range e.Bank {
		if _, ok := declared[q.Category]; !ok {
			errs = append(errs, fmt.Sprintf("%s: question %q has undeclared category %q", prefix, q.ID, q.Category))
			continue
		}
		declared[q.Category]++
	}
	for _, c := range e.Categories {
		if declared[c] == 0 {
			errs = append(errs, fmt.Sprintf("%s: category %q has no questions", prefix, c))
		}
	}
	return errs
}
