package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studycentre/internal/router"
	"github.com/abhisek/studycentre/internal/screen"
	"github.com/abhisek/studycentre/internal/screens/home"
	"github.com/abhisek/studycentre/internal/screens/section"
	"github.com/abhisek/studycentre/internal/screens/welcome"
	"github.com/abhisek/studycentre/internal/ui/layout"
)

// Options holds the dependencies passed to the TUI.
type Options struct {
	screen.Deps

	// Start, when set, is pushed above the home screen on launch.
	Start func(screen.Deps) screen.Screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	deps    screen.Deps
	start   screen.Screen
	learner string
	width   int
	height  int
}

// newAppModel starts on the welcome screen when no learner is known yet.
func newAppModel(opts Options) AppModel {
	m := AppModel{deps: opts.Deps, learner: opts.Learner}
	if opts.Learner == "" {
		m.router = router.New(welcome.New(func(name string) screen.Screen {
			return home.New(opts.WithLearner(name))
		}))
		return m
	}
	m.router = router.New(home.New(opts.Deps))
	if opts.Start != nil {
		m.start = opts.Start(opts.Deps)
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	cmd := m.router.Active().Init()
	if m.start == nil {
		return cmd
	}
	start := m.start
	return tea.Batch(cmd, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case welcome.LearnerChosenMsg:
		m.learner = msg.Name
		m.deps = m.deps.WithLearner(msg.Name)
		return m, nil

	case screen.OpenSectionMsg:
		return m, m.router.Replace(section.New(m.deps, msg.SectionID))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.learner, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) keyHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
