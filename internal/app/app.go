package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/router"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/screens/feedback"
	"github.com/abhisek/parley/internal/screens/landing"
	"github.com/abhisek/parley/internal/screens/practice"
	"github.com/abhisek/parley/internal/screens/progress"
	"github.com/abhisek/parley/internal/screens/scenarios"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Controller *session.Controller
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctl    *session.Controller
	router *router.Router
	now    func() time.Time
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		ctl:    opts.Controller,
		router: router.New(opts.Controller, Builder(opts.Controller.Catalog())),
		now:    time.Now,
	}
}

// Builder returns the screen factory for a catalog. Every session screen
// has exactly one view.
func Builder(cat *catalog.Catalog) router.Builder {
	return func(st session.State) screen.Screen {
		switch st.Screen {
		case session.ScreenScenarios:
			return scenarios.New(st, cat)
		case session.ScreenPractice:
			return practice.New(st, cat)
		case session.ScreenFeedback:
			return feedback.New(st, cat)
		case session.ScreenProgress:
			return progress.New(st)
		default:
			return landing.New(st)
		}
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if a := globalAction(key); a != nil {
			if m.busy() {
				return m, nil
			}
			return m, screen.Dispatch(a)
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// globalAction maps the function keys available on every screen.
func globalAction(key string) session.Action {
	switch key {
	case "f1":
		return session.Navigate{Target: session.ScreenLanding}
	case "f2":
		return session.Navigate{Target: session.ScreenScenarios}
	case "f3":
		return session.Navigate{Target: session.ScreenProgress}
	case "f4":
		return session.ToggleLanguage{}
	}
	return nil
}

func (m AppModel) busy() bool {
	if b, ok := m.router.Active().(screen.BusyReporter); ok {
		return b.Busy()
	}
	return false
}

func (m AppModel) status() string {
	st := m.ctl.Snapshot()
	lang := st.Language
	return fmt.Sprintf("%s %d   Ø %s   %s",
		i18n.T(lang, "scenarios.sessionsToday")+":",
		session.SessionsToday(st.Progress, m.now()),
		session.FormatAverage(session.AverageScore(st.Progress)),
		i18n.LanguageName(lang))
}

func (m AppModel) hints() []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	lang := m.ctl.Snapshot().Language
	return append(hints,
		layout.KeyHint{Key: "F1", Description: i18n.T(lang, "nav.home")},
		layout.KeyHint{Key: "F3", Description: i18n.T(lang, "nav.progress")},
		layout.KeyHint{Key: "F4", Description: i18n.T(lang, "nav.language")},
		layout.KeyHint{Key: "Ctrl+C", Description: i18n.T(lang, "nav.quit")},
	)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.frame())
	v.AltScreen = true
	return v
}

// frame renders header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)
	footer := layout.RenderFooter(m.hints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the terminal UI and blocks until the learner quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("app: controller is required")
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}
	return nil
}
