// Package feedback renders the tutor's assessment of the last answer.
package feedback

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/catalog"
	fb "github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/layout"
	"github.com/abhisek/parley/internal/ui/theme"
)

const maxScore = 5

// FeedbackScreen shows score, transcript, strengths, one improvement and a
// suggested answer, followed by the next-step menu.
type FeedbackScreen struct {
	state    session.State
	scenario catalog.Scenario
	record   fb.Record
	menu     components.Menu
	pending  bool
}

var _ screen.Screen = (*FeedbackScreen)(nil)

// New creates the feedback screen for st.
func New(st session.State, cat *catalog.Catalog) *FeedbackScreen {
	f := &FeedbackScreen{}
	if sc, err := cat.Get(st.ScenarioID); err == nil {
		f.scenario = sc
	}
	f.apply(st)
	return f
}

func (f *FeedbackScreen) apply(st session.State) {
	f.state = st
	if st.Feedback != nil {
		f.record = st.Feedback.Clone()
	}
	selected := f.menu.Selected
	f.menu = components.NewMenu(f.items())
	if selected < len(f.menu.Items) {
		f.menu.Selected = selected
	}
}

// hasNext reports whether the scenario has a prompt after the current one.
func (f *FeedbackScreen) hasNext() bool {
	return f.state.TurnIndex < f.scenario.LastTurn()
}

func (f *FeedbackScreen) items() []components.MenuItem {
	lang := f.state.Language
	next := components.MenuItem{
		Label:  i18n.T(lang, "feedback.nextScenario"),
		Action: f.send(session.NewScenario{}),
	}
	if f.hasNext() {
		next = components.MenuItem{
			Label:  i18n.T(lang, "feedback.continue"),
			Action: f.send(session.Continue{}),
		}
	}
	return []components.MenuItem{
		next,
		{Label: i18n.T(lang, "feedback.tryAgain"), Action: f.send(session.Retry{})},
		{Label: i18n.T(lang, "feedback.viewProgress"), Action: f.send(session.ViewProgress{})},
	}
}

func (f *FeedbackScreen) send(a session.Action) func() tea.Cmd {
	return func() tea.Cmd {
		f.pending = true
		return screen.Dispatch(a)
	}
}

func (f *FeedbackScreen) Init() tea.Cmd { return nil }

func (f *FeedbackScreen) Title() string {
	return i18n.T(f.state.Language, "feedback.title")
}

// Busy reports whether a follow-up action is in flight.
func (f *FeedbackScreen) Busy() bool { return f.pending }

func (f *FeedbackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Menu"},
		{Key: "Enter", Description: "OK"},
	}
}

func (f *FeedbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		f.apply(msg.State)
		return f, nil
	case screen.ResultMsg:
		f.pending = false
		return f, nil
	case tea.KeyPressMsg:
		if f.pending {
			return f, nil
		}
		var cmd tea.Cmd
		f.menu, cmd = f.menu.Update(msg)
		return f, cmd
	}
	return f, nil
}

func (f *FeedbackScreen) View(width, height int) string {
	lang := f.state.Language
	rec := f.record
	textWidth := min(width-10, 90)

	var b strings.Builder

	band := session.ScoreBand(rec.RelevanceScore)
	bar := components.NewScoreBar(i18n.T(lang, "feedback.score"), rec.RelevanceScore, maxScore, min(width-10, 50))
	bar.Style = theme.ScoreFill(band)
	b.WriteString(bar.View())
	b.WriteString("  ")
	b.WriteString(theme.ScoreColor(band).Render(i18n.T(lang, session.ScoreLabelKey(rec.RelevanceScore))))
	b.WriteString("\n\n")

	section := func(key, body string) {
		b.WriteString(theme.Heading.Render(i18n.T(lang, key)))
		b.WriteString("\n")
		b.WriteString(layout.Wrap(body, textWidth))
		b.WriteString("\n\n")
	}

	section("feedback.yourResponse", "„"+rec.Transcript+"“")

	b.WriteString(theme.Heading.Render(i18n.T(lang, "feedback.whatWorked")))
	b.WriteString("\n")
	for _, w := range rec.WhatWorked {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  ✓ "))
		b.WriteString(w)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section("feedback.improvement", rec.Improvement)
	section("feedback.suggested", theme.Selected.Render("„"+rec.SuggestedResponse+"“"))
	if !layout.IsCompactHeight(height) {
		section("feedback.explanation", theme.Hint.Render(rec.ScoreExplanation))
	}

	b.WriteString(f.menu.View())
	if f.scenario.ID != "" {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s %d/%d",
			i18n.T(lang, "practice.prompt"), f.state.TurnIndex+1, len(f.scenario.Prompts))))
	}

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Height(height).Render(b.String())
}
