// Package courses lists courses, their outlines and the mock exams.
package courses

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/course"
	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	quizscreen "github.com/abhisek/studycentre/internal/screens/quiz"
	"github.com/abhisek/studycentre/internal/screens/section"
	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
	}
}

// CoursesScreen lists every course in the catalog.
type CoursesScreen struct {
	courses []course.Course
	menu    components.Menu
}

var _ screen.Screen = (*CoursesScreen)(nil)

func New(deps screen.Deps) *CoursesScreen {
	list := deps.Catalog.Courses()
	items := make([]components.MenuItem, 0, len(list))
	for _, co := range list {
		items = append(items, components.MenuItem{
			Label:  co.Title,
			Detail: fmt.Sprintf("%d sections", countSections(co)),
			Action: push(func() screen.Screen { return NewOutline(deps, co) }),
		})
	}
	return &CoursesScreen{courses: list, menu: components.NewMenu(items)}
}

func countSections(co course.Course) int {
	n := 0
	for _, m := range co.Modules {
		n += len(m.Sections)
	}
	return n
}

func (s *CoursesScreen) Init() tea.Cmd { return nil }

func (s *CoursesScreen) Title() string { return "Courses" }

func (s *CoursesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CoursesScreen) View(width, height int) string {
	if len(s.courses) == 0 {
		return components.Centered(theme.Hint.Render("No courses installed."), width, height)
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.menu.View())

	if sel := s.menu.Selected; sel >= 0 && sel < len(s.courses) && s.courses[sel].Description != "" {
		b.WriteString("\n")
		b.WriteString(components.Card(theme.Body.Render(s.courses[sel].Description), components.ContentWidth(width)))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

// OutlineScreen shows one course: module headings, sections and exams.
type OutlineScreen struct {
	course course.Course
	menu   components.Menu
}

var _ screen.Screen = (*OutlineScreen)(nil)

func NewOutline(deps screen.Deps, co course.Course) *OutlineScreen {
	var items []components.MenuItem
	for _, m := range co.Modules {
		items = append(items, components.MenuItem{Label: strings.ToUpper(m.Title), Disabled: true})
		for _, sec := range m.Sections {
			detail := fmt.Sprintf("%d checks", len(sec.Checks))
			if sec.HasQuiz() {
				detail += ", quiz"
			}
			id := sec.ID
			items = append(items, components.MenuItem{
				Label:  "  " + sec.Title,
				Detail: detail,
				Action: push(func() screen.Screen { return section.New(deps, id) }),
			})
		}
	}
	if len(co.Exams) > 0 {
		items = append(items, components.MenuItem{Label: "MOCK EXAMS", Disabled: true})
		for _, e := range co.Exams {
			items = append(items, examItem(deps, e))
		}
	}
	return &OutlineScreen{course: co, menu: components.NewMenu(items)}
}

func examItem(deps screen.Deps, e course.Exam) components.MenuItem {
	detail := fmt.Sprintf("%d questions, pass %d%%", e.TotalQuestions, e.PassThreshold)
	if e.TimeLimitSecs > 0 {
		detail += fmt.Sprintf(", %d min", e.TimeLimitSecs/60)
	}
	id := e.ID
	return components.MenuItem{
		Label:  "  " + e.Title,
		Detail: detail,
		Action: push(func() screen.Screen { return quizscreen.NewExam(deps, id) }),
	}
}

func (s *OutlineScreen) Init() tea.Cmd { return nil }

func (s *OutlineScreen) Title() string { return s.course.Title }

func (s *OutlineScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *OutlineScreen) View(width, height int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+s.menu.ViewHeight(height-2))
}

// ExamsScreen lists every mock exam across courses.
type ExamsScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*ExamsScreen)(nil)

func NewExams(deps screen.Deps) *ExamsScreen {
	var items []components.MenuItem
	for _, e := range deps.Catalog.Exams() {
		items = append(items, examItem(deps, e))
	}
	return &ExamsScreen{menu: components.NewMenu(items)}
}

func (s *ExamsScreen) Init() tea.Cmd { return nil }

func (s *ExamsScreen) Title() string { return "Mock Exams" }

func (s *ExamsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ExamsScreen) View(width, height int) string {
	if len(s.menu.Items) == 0 {
		return components.Centered(theme.Hint.Render("No mock exams available."), width, height)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, "\n"+s.menu.View())
}
