package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/ui/layout"
	"github.com/abhisek/parley/internal/ui/theme"
)

// ProgressScreen summarises the progress log: totals, average and the
// attempt history newest first.
type ProgressScreen struct {
	state   session.State
	offset  int
	pending bool
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates the progress screen for st.
func New(st session.State) *ProgressScreen {
	return &ProgressScreen{state: st}
}

func (p *ProgressScreen) Init() tea.Cmd { return nil }

func (p *ProgressScreen) Title() string {
	return i18n.T(p.state.Language, "progress.title")
}

// Busy reports whether Back is in flight.
func (p *ProgressScreen) Busy() bool { return p.pending }

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: i18n.T(p.state.Language, "progress.history")},
		{Key: "Esc", Description: i18n.T(p.state.Language, "progress.back")},
	}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		p.state = msg.State
	case screen.ResultMsg:
		p.pending = false
	case tea.KeyPressMsg:
		if p.pending {
			return p, nil
		}
		switch msg.String() {
		case "esc", "enter":
			p.pending = true
			return p, screen.Dispatch(session.Back{})
		case "down", "j":
			if p.offset < len(p.state.Progress)-1 {
				p.offset++
			}
		case "up", "k":
			if p.offset > 0 {
				p.offset--
			}
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	lang := p.state.Language
	log := p.state.Progress

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Title()))
	b.WriteString("\n\n")

	stats := []string{
		p.stat(i18n.T(lang, "progress.attempts"), fmt.Sprintf("%d", len(log))),
		p.stat(i18n.T(lang, "progress.completed"), fmt.Sprintf("%d", session.DistinctScenarios(log))),
		p.stat(i18n.T(lang, "progress.average"), session.FormatAverage(session.AverageScore(log))),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, stats...))
	b.WriteString("\n\n")

	b.WriteString(theme.Heading.Render(i18n.T(lang, "progress.history")))
	b.WriteString("\n")

	if len(log) == 0 {
		b.WriteString(theme.Hint.Render(i18n.T(lang, "progress.noHistory")))
		return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(b.String())
	}

	// Rows left for history after title, stats cards and heading.
	rows := height - 12
	if rows < 3 {
		rows = 3
	}
	entries := session.NewestFirst(log)
	end := min(p.offset+rows, len(entries))
	for _, e := range entries[p.offset:end] {
		score := theme.ScoreColor(session.ScoreBand(e.Score)).Render(fmt.Sprintf("%6s", session.FormatScore(e.Score)))
		fmt.Fprintf(&b, "  %s  %s  %s\n", theme.Hint.Render(e.Timestamp), score, e.Scenario)
		if e.Response != "" {
			b.WriteString(theme.Hint.Render("      „" + truncate(e.Response, width-16) + "“"))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(b.String())
}

func (p *ProgressScreen) stat(label, value string) string {
	return theme.Card.Width(24).Render(theme.Selected.Render(value) + "\n" + theme.Hint.Render(label))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
