package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BusyReporter is implemented by screens that can be waiting on a
// dispatched action. Global navigation keys are ignored while busy.
type BusyReporter interface {
	Busy() bool
}

// ActionMsg asks the router to dispatch an action to the session controller.
type ActionMsg struct {
	Action session.Action
}

// ResultMsg carries the outcome of a dispatched action back to the screen
// that asked for it. Err is nil when the action applied.
type ResultMsg struct {
	Action session.Action
	Err    error
}

// StateMsg delivers a fresh session snapshot to a screen that stays active
// after an action (for example a language toggle).
type StateMsg struct {
	State session.State
}

// Dispatch returns a command that emits an ActionMsg for a.
func Dispatch(a session.Action) tea.Cmd {
	return func() tea.Msg {
		return ActionMsg{Action: a}
	}
}
