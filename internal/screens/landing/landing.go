// Package landing is the intro screen: what the app is and a single
// call to action.
package landing

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/layout"
	"github.com/abhisek/parley/internal/ui/theme"
)

var featureIcons = [3]string{"💼", "⌨", "✓"}

// LandingScreen shows the banner, three feature cards and the start button.
type LandingScreen struct {
	lang    i18n.Language
	cta     components.Button
	pending bool
}

var _ screen.Screen = (*LandingScreen)(nil)

// New creates the landing screen for st.
func New(st session.State) *LandingScreen {
	l := &LandingScreen{}
	l.apply(st)
	return l
}

func (l *LandingScreen) apply(st session.State) {
	l.lang = st.Language
	l.cta = components.NewButton(i18n.T(l.lang, "landing.cta"), true, l.start)
}

func (l *LandingScreen) start() tea.Cmd {
	l.pending = true
	return screen.Dispatch(session.Start{})
}

func (l *LandingScreen) Init() tea.Cmd { return nil }

func (l *LandingScreen) Title() string {
	return i18n.T(l.lang, "landing.subtitle")
}

// Busy reports whether Start is in flight.
func (l *LandingScreen) Busy() bool { return l.pending }

func (l *LandingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: i18n.T(l.lang, "landing.cta")},
	}
}

func (l *LandingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		l.apply(msg.State)
		return l, nil
	case screen.ResultMsg:
		l.pending = false
		return l, nil
	case tea.KeyPressMsg:
		if l.pending {
			return l, nil
		}
		var cmd tea.Cmd
		l.cta, cmd = l.cta.Update(msg)
		return l, cmd
	}
	return l, nil
}

func (l *LandingScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width), "")
	sections = append(sections, theme.Title.Render(i18n.T(l.lang, "landing.title")))
	sections = append(sections, theme.Subtitle.Render(i18n.T(l.lang, "landing.subtitle")), "")

	descWidth := min(width-8, 70)
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(descWidth).
		Align(lipgloss.Center).
		Render(i18n.T(l.lang, "landing.description")), "")

	if !layout.IsCompactHeight(height) {
		sections = append(sections, l.features(width), "")
	}

	sections = append(sections, l.cta.View(), "")
	sections = append(sections, theme.Hint.Render(i18n.T(l.lang, "landing.footer")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (l *LandingScreen) features(width int) string {
	cardWidth := (width - 12) / 3
	if cardWidth > 30 {
		cardWidth = 30
	}
	cards := make([]string, 0, len(featureIcons))
	for i, icon := range featureIcons {
		n := string(rune('1' + i))
		body := icon + " " + theme.Heading.Render(i18n.T(l.lang, "landing.feature"+n+".title")) +
			"\n" + theme.Hint.Render(i18n.T(l.lang, "landing.feature"+n+".desc"))
		cards = append(cards, theme.Card.Width(cardWidth).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}
