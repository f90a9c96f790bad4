package api

import (
	"time"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/exam"
	"github.com/abhisek/studycentre/internal/quiz"
	"github.com/abhisek/studycentre/internal/store"
)

// AnswerRequest is the body of POST /sessions/:id/answers.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Option     *int   `json:"option" binding:"required,min=0"`
}

// CheckAnswerRequest is the body of POST /checks/:id/answers.
type CheckAnswerRequest struct {
	Option *int `json:"option" binding:"required,min=0"`
}

// publicQuestion hides the correct answer until the learner has chosen.
type publicQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Category string   `json:"category,omitempty"`
}

func toPublic(qs []quiz.Question) []publicQuestion {
	out := make([]publicQuestion, len(qs))
	for i, q := range qs {
		out[i] = publicQuestion{ID: q.ID, Question: q.Prompt, Options: q.Options, Category: q.Category}
	}
	return out
}

type sectionSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Checks  int    `json:"checks"`
	HasQuiz bool   `json:"has_quiz"`
}

type moduleSummary struct {
	ID       string           `json:"id"`
	Title    string           `json:"title"`
	Sections []sectionSummary `json:"sections"`
}

type examSummary struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"total_questions"`
	TimeLimitSecs  int    `json:"time_limit_secs"`
	PassThreshold  int    `json:"pass_threshold"`
}

type courseSummary struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Modules     []moduleSummary `json:"modules"`
	Exams       []examSummary   `json:"exams"`
}

func summarizeCourse(co course.Course) courseSummary {
	cs := courseSummary{
		ID:          co.ID,
		Title:       co.Title,
		Description: co.Description,
		Modules:     []moduleSummary{},
		Exams:       []examSummary{},
	}
	for _, m := range co.Modules {
		ms := moduleSummary{ID: m.ID, Title: m.Title}
		for _, s := range m.Sections {
			ms.Sections = append(ms.Sections, sectionSummary{
				ID: s.ID, Title: s.Title, Summary: s.Summary, Checks: len(s.Checks), HasQuiz: s.HasQuiz(),
			})
		}
		cs.Modules = append(cs.Modules, ms)
	}
	for _, e := range co.Exams {
		cs.Exams = append(cs.Exams, summarizeExam(e))
	}
	return cs
}

func summarizeExam(e course.Exam) examSummary {
	return examSummary{
		ID:             e.ID,
		Title:          e.Title,
		TotalQuestions: e.TotalQuestions,
		TimeLimitSecs:  e.TimeLimitSecs,
		PassThreshold:  e.PassThreshold,
	}
}

type quizSummary struct {
	Title     string `json:"title"`
	Questions int    `json:"questions"`
}

type sectionDetail struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	CourseID    string           `json:"course_id"`
	ModuleID    string           `json:"module_id"`
	ModuleTitle string           `json:"module_title"`
	Summary     string           `json:"summary,omitempty"`
	Body        []string         `json:"body"`
	Checks      []publicQuestion `json:"checks"`
	Quiz        *quizSummary     `json:"quiz,omitempty"`
	FAQs        []course.FAQ     `json:"faqs"`
}

func detailSection(ref course.SectionRef) sectionDetail {
	s := ref.Section
	d := sectionDetail{
		ID:          s.ID,
		Title:       s.Title,
		CourseID:    ref.CourseID,
		ModuleID:    ref.ModuleID,
		ModuleTitle: ref.ModuleTitle,
		Summary:     s.Summary,
		Body:        s.Body,
		Checks:      toPublic(s.Checks),
		FAQs:        s.FAQs,
	}
	if s.HasQuiz() {
		d.Quiz = &quizSummary{Title: s.Quiz.Title, Questions: len(s.Quiz.Questions)}
	}
	return d
}

type sessionView struct {
	ID            string           `json:"id"`
	Kind          string           `json:"kind"`
	UnitCode      string           `json:"unit_code"`
	Title         string           `json:"title"`
	Questions     []publicQuestion `json:"questions"`
	Answers       []quiz.Reveal    `json:"answers"`
	Answered      int              `json:"answered"`
	Total         int              `json:"total"`
	Complete      bool             `json:"complete"`
	Score         *quiz.Score      `json:"score,omitempty"`
	Percentage    *int             `json:"percentage,omitempty"`
	RemainingSecs *int             `json:"remaining_secs,omitempty"`
	Result        *exam.Result     `json:"result,omitempty"`
	AttemptID     string           `json:"attempt_id,omitempty"`
}

// view renders s. Callers hold s.mu.
func (s *liveSession) view(now time.Time) sessionView {
	qs := s.questions()
	v := sessionView{
		ID:        s.ID,
		Kind:      string(s.Kind),
		UnitCode:  s.UnitCode,
		Title:     s.Title,
		Questions: toPublic(qs.Questions()),
		Answers:   qs.Results(),
		Answered:  qs.Answered(),
		Total:     qs.Total(),
		AttemptID: s.attemptID,
	}

	if s.exam != nil {
		if _, timed := s.exam.Deadline(); timed {
			secs := int(s.exam.Remaining(now).Seconds())
			v.RemainingSecs = &secs
		}
		if res, ok := s.exam.Result(); ok {
			v.Complete = true
			v.Result = &res
			v.Score = &res.Score
			v.Percentage = &res.Percentage
		}
		return v
	}

	if score, ok := qs.ComputeScore(); ok {
		pct := score.Percentage()
		v.Complete = true
		v.Score = &score
		v.Percentage = &pct
	}
	return v
}

type answerResponse struct {
	Reveal   quiz.Reveal `json:"reveal"`
	Accepted bool        `json:"accepted"`
	Session  sessionView `json:"session"`
}

type checkResponse struct {
	Reveal    quiz.Reveal `json:"reveal"`
	SectionID string      `json:"section_id"`
	Recorded  bool        `json:"recorded"`
}

type attemptView struct {
	AttemptID      string    `json:"attempt_id"`
	UnitCode       string    `json:"unit_code"`
	Kind           string    `json:"kind"`
	Title          string    `json:"title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Percentage     int       `json:"percentage"`
	Passed         bool      `json:"passed"`
	Expired        bool      `json:"expired"`
	TimeTakenSecs  int       `json:"time_taken_secs"`
	Timestamp      time.Time `json:"timestamp"`
}

func toAttemptView(a store.AttemptRecord) attemptView {
	return attemptView{
		AttemptID:      a.AttemptID,
		UnitCode:       a.UnitCode,
		Kind:           string(a.Kind),
		Title:          a.Title,
		Score:          a.Score,
		TotalQuestions: a.TotalQuestions,
		Percentage:     a.Percentage,
		Passed:         a.Passed,
		Expired:        a.Expired,
		TimeTakenSecs:  int(a.TimeTaken.Seconds()),
		Timestamp:      a.Timestamp,
	}
}

type unitStatsView struct {
	UnitCode       string    `json:"unit_code"`
	Attempts       int       `json:"attempts"`
	BestPercentage int       `json:"best_percentage"`
	LastPercentage int       `json:"last_percentage"`
	Passed         bool      `json:"passed"`
	LastAttempt    time.Time `json:"last_attempt"`
}
