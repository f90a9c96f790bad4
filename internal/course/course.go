package course

import (
	"errors"

	"github.com/abhisek/studycentre/internal/quiz"
)

// ErrNotFound is returned by catalog lookups for unknown IDs.
var ErrNotFound = errors.New("not found")

// Course is one authored course document.
type Course struct {
	SchemaVersion string   `json:"schemaVersion"`
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Modules       []Module `json:"modules,omitempty"`
	Exams         []Exam   `json:"exams,omitempty"`
}

// Module groups sections in reading order.
type Module struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Section is a single study page: reading content, inline knowledge checks
// and an optional end-of-section quiz.
type Section struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Summary string          `json:"summary,omitempty"`
	Body    []string        `json:"body,omitempty"`
	Checks  []quiz.Question `json:"checks,omitempty"`
	Quiz    *Quiz           `json:"quiz,omitempty"`
	FAQs    []FAQ           `json:"faqs,omitempty"`
}

// HasQuiz reports whether the section ends with a quiz.
func (s Section) HasQuiz() bool {
	return s.Quiz != nil && len(s.Quiz.Questions) > 0
}

// Quiz is an end-of-section assessment.
type Quiz struct {
	Title     string          `json:"title,omitempty"`
	Questions []quiz.Question `json:"questions"`
}

// FAQ is a question/answer pair shown at the end of a section.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Exam is a mock examination drawn from a categorised question bank.
type Exam struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	TotalQuestions int             `json:"totalQuestions"`
	TimeLimitSecs  int             `json:"timeLimitSecs,omitempty"`
	PassThreshold  int             `json:"passThreshold"`
	Categories     []string        `json:"categories,omitempty"`
	ExitSection    string          `json:"exitSection,omitempty"`
	Bank           []quiz.Question `json:"bank"`
}

// SectionRef locates a section within its course and module.
type SectionRef struct {
	CourseID    string
	CourseTitle string
	ModuleID    string
	ModuleTitle string
	Section     Section
}

// UnitCode returns the identifier attempts are recorded under.
func (r SectionRef) UnitCode() string {
	return r.Section.ID
}

// CheckRef locates an inline check within its section.
type CheckRef struct {
	SectionID string
	Question  quiz.Question
}
