package scenarios

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/layout"
	"github.com/abhisek/parley/internal/ui/theme"
)

// ScenariosScreen lists the catalog and a short recent-progress panel.
type ScenariosScreen struct {
	cat     *catalog.Catalog
	state   session.State
	menu    components.Menu
	now     func() time.Time
	pending bool
}

var _ screen.Screen = (*ScenariosScreen)(nil)

// New creates the scenario picker.
func New(st session.State, cat *catalog.Catalog) *ScenariosScreen {
	s := &ScenariosScreen{cat: cat, now: time.Now}
	s.apply(st)
	return s
}

func (s *ScenariosScreen) apply(st session.State) {
	selected := s.menu.Selected
	s.state = st
	secondary := st.Language == i18n.Secondary

	all := s.cat.All()
	items := make([]components.MenuItem, 0, len(all))
	for _, sc := range all {
		id := sc.ID
		label := sc.DisplayTitle(secondary)
		if sc.Icon != "" {
			label = sc.Icon + "  " + label
		}
		items = append(items, components.MenuItem{
			Label:  label,
			Detail: fmt.Sprintf("%s · %s", sc.DisplayDifficulty(secondary), sc.Formality),
			Action: func() tea.Cmd {
				s.pending = true
				return screen.Dispatch(session.Choose{ScenarioID: id})
			},
		})
	}
	s.menu = components.NewMenu(items)
	if selected < len(items) {
		s.menu.Selected = selected
	}
}

func (s *ScenariosScreen) Init() tea.Cmd { return nil }

func (s *ScenariosScreen) Title() string {
	return i18n.T(s.state.Language, "nav.scenarios")
}

// Busy reports whether a Choose is in flight.
func (s *ScenariosScreen) Busy() bool { return s.pending }

func (s *ScenariosScreen) KeyHints() []layout.KeyHint {
	lang := s.state.Language
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.Title()},
		{Key: "Enter", Description: i18n.T(lang, "landing.cta")},
		{Key: "p", Description: i18n.T(lang, "scenarios.progress")},
		{Key: "Esc", Description: i18n.T(lang, "scenarios.back")},
	}
}

func (s *ScenariosScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		s.apply(msg.State)
		return s, nil
	case screen.ResultMsg:
		s.pending = false
		return s, nil
	case tea.KeyPressMsg:
		if s.pending {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			s.pending = true
			return s, screen.Dispatch(session.Navigate{Target: session.ScreenLanding})
		case "p":
			s.pending = true
			return s, screen.Dispatch(session.Navigate{Target: session.ScreenProgress})
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ScenariosScreen) View(width, height int) string {
	lang := s.state.Language

	var b strings.Builder
	b.WriteString(theme.Title.Render(i18n.T(lang, "scenarios.title")))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(i18n.T(lang, "scenarios.subtitle")))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	if panel := s.recentPanel(); panel != "" && !layout.IsCompactHeight(height) {
		b.WriteString("\n")
		b.WriteString(panel)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(b.String()))
}

func (s *ScenariosScreen) recentPanel() string {
	log := s.state.Progress
	if len(log) == 0 {
		return ""
	}
	lang := s.state.Language

	var b strings.Builder
	b.WriteString(theme.Heading.Render(i18n.T(lang, "scenarios.recent")))
	b.WriteString("\n")
	for _, e := range session.NewestFirst(session.Recent(log, session.RecentLimit)) {
		score := theme.ScoreColor(session.ScoreBand(e.Score)).Render(session.FormatScore(e.Score))
		fmt.Fprintf(&b, "  %s  %s  %s\n", theme.Hint.Render(e.Timestamp), e.Scenario, score)
	}
	fmt.Fprintf(&b, "\n  %s: %d   Ø %s\n",
		i18n.T(lang, "scenarios.sessionsToday"),
		session.SessionsToday(log, s.now()),
		session.FormatAverage(session.AverageScore(log)))
	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}
