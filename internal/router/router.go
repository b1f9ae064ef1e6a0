package router

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
)

// Controller is the part of the session controller the router drives.
type Controller interface {
	Dispatch(ctx context.Context, a session.Action) error
	Snapshot() session.State
}

// Builder returns the screen for a session state.
type Builder func(st session.State) screen.Screen

// Router keeps exactly one active screen in step with the controller's
// current session screen. Screens never switch themselves; they emit
// screen.ActionMsg and the router rebuilds when the state moves.
type Router struct {
	ctl    Controller
	build  Builder
	active screen.Screen
	shown  session.Screen
}

// New creates a router showing the screen for the controller's current state.
func New(ctl Controller, build Builder) *Router {
	st := ctl.Snapshot()
	return &Router{
		ctl:    ctl,
		build:  build,
		active: build(st),
		shown:  st.Screen,
	}
}

// Init runs the active screen's Init.
func (r *Router) Init() tea.Cmd {
	if r.active == nil {
		return nil
	}
	return r.active.Init()
}

// replace installs s as the active screen and calls its Init.
func (r *Router) replace(s screen.Screen) tea.Cmd {
	r.active = s
	return s.Init()
}

// Active returns the active screen.
func (r *Router) Active() screen.Screen {
	return r.active
}

// Shown returns the session screen the active screen was built for.
func (r *Router) Shown() session.Screen {
	return r.shown
}

// Update handles dispatch round-trips and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case screen.ActionMsg:
		return r.dispatch(msg.Action)

	case screen.ResultMsg:
		if msg.Err != nil {
			return r.forward(msg)
		}
		st := r.ctl.Snapshot()
		if st.Screen != r.shown {
			r.shown = st.Screen
			return r.replace(r.build(st))
		}
		return r.forward(screen.StateMsg{State: st})
	}

	return r.forward(msg)
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}

func (r *Router) dispatch(a session.Action) tea.Cmd {
	ctl := r.ctl
	return func() tea.Msg {
		err := ctl.Dispatch(context.Background(), a)
		return screen.ResultMsg{Action: a, Err: err}
	}
}

func (r *Router) forward(msg tea.Msg) tea.Cmd {
	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}
