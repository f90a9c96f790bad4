package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studycentre/internal/ui/layout"
)

// Screen is one page of the study centre TUI.
type Screen interface {
	// Init returns the command to run when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that override the footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackInterceptor is implemented by screens that handle Esc themselves,
// for example to confirm abandoning a quiz.
type BackInterceptor interface {
	InterceptsBack() bool
}

// Resumer is implemented by screens that refresh when they become active
// again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// OpenSectionMsg asks the app to show a section in place of the active screen.
type OpenSectionMsg struct {
	SectionID string
}
