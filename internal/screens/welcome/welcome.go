package welcome

import (
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/ui/components"
	"github.com/abhisek/studycentre/internal/ui/layout"
	"github.com/abhisek/studycentre/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bannerAt     = 300 * time.Millisecond
	promptAt     = 800 * time.Millisecond

	// MaxNameLen matches the learner limit enforced by config.
	MaxNameLen = 64
)

type tickMsg time.Time

// LearnerChosenMsg announces the learner name entered on the welcome screen.
type LearnerChosenMsg struct {
	Name string
}

// WelcomeScreen shows the banner and asks who is studying.
type WelcomeScreen struct {
	homeFactory  func(learner string) screen.Screen
	input        components.TextInput
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory(name).
func New(homeFactory func(learner string) screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		input:       components.NewTextInput("Your name", MaxNameLen),
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start studying"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), w.input.Init())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		w.elapsed += tickInterval
		if w.elapsed >= promptAt {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		if w.elapsed < promptAt {
			// Any key skips the intro.
			w.elapsed = promptAt
			return w, nil
		}
		if msg.String() == "enter" {
			return w, w.submit()
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) submit() tea.Cmd {
	if w.transitioned {
		return nil
	}
	name := w.input.Value()
	switch {
	case name == "":
		w.input.SetError("Please enter your name.")
		return nil
	case utf8.RuneCountInString(name) > MaxNameLen:
		w.input.SetError("That name is too long.")
		return nil
	}

	w.transitioned = true
	home := w.homeFactory(name)
	return tea.Batch(
		func() tea.Msg { return LearnerChosenMsg{Name: name} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} },
	)
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	if w.elapsed >= bannerAt {
		sections = append(sections, RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Health and safety awareness, one section at a time."))
	}

	if w.elapsed >= promptAt {
		sections = append(sections, "", theme.Subtitle.Render("Who is studying today?"), "")
		sections = append(sections, w.input.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
