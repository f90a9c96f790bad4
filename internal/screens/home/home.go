package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/screens/courses"
	"github.com/abhisek/studycentre/internal/screens/history"
	"github.com/abhisek/studycentre/internal/store"
	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

type statsLoadedMsg struct {
	Stats []store.UnitStats
	Err   error
}

// HomeScreen is the root menu.
type HomeScreen struct {
	deps     screen.Deps
	menu     components.Menu
	stats    []store.UnitStats
	loaded   bool
	statsErr string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

func New(deps screen.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		{Label: "Courses", Detail: fmt.Sprintf("%d available", len(deps.Catalog.Courses())),
			Action: push(func() screen.Screen { return courses.New(deps) })},
		{Label: "Mock exams", Detail: fmt.Sprintf("%d available", len(deps.Catalog.Exams())),
			Action: push(func() screen.Screen { return courses.NewExams(deps) }),
			Disabled: len(deps.Catalog.Exams()) == 0},
		{Label: "History", Action: push(func() screen.Screen { return history.New(deps) }),
			Disabled: deps.Recorder == nil},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	rec, learner := h.deps.Recorder, h.deps.Learner
	if rec == nil {
		return nil
	}
	return func() tea.Msg {
		stats, err := rec.Stats(context.Background(), learner)
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.loaded = true
		if msg.Err != nil {
			h.statsErr = msg.Err.Error()
			return h, nil
		}
		h.statsErr = ""
		h.stats = msg.Stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Render(greeting(h.deps.Learner)),
		components.Card(h.renderStats(), cw),
		h.menu.View(),
	}
	return components.Centered(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func greeting(learner string) string {
	if learner == "" {
		return "Welcome"
	}
	return "Welcome back, " + learner
}

func (h *HomeScreen) renderStats() string {
	switch {
	case h.deps.Recorder == nil:
		return theme.Hint.Render("Progress is not being saved.")
	case h.statsErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render("Could not load progress: " + h.statsErr)
	case !h.loaded:
		return theme.Hint.Render("Loading progress...")
	case len(h.stats) == 0:
		return theme.Hint.Render("No quizzes taken yet. Pick a course to begin.")
	}

	passed := 0
	for _, s := range h.stats {
		if s.Passed {
			passed++
		}
	}
	line := fmt.Sprintf("%s   %s",
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("%d attempted", len(h.stats))),
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
			Render(fmt.Sprintf("%d passed", passed)),
	)

	last := h.stats[0]
	for _, s := range h.stats[1:] {
		if s.LastAttempt.After(last.LastAttempt) {
			last = s
		}
	}
	return line + "\n" + theme.Muted.Render(fmt.Sprintf("Last: %s at %d%%", last.UnitCode, last.LastPercentage))
}
