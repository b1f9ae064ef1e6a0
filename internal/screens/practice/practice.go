// Package practice is the answer screen: one prompt of the selected
// scenario and a free-text response box.
package practice

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
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

// PracticeScreen shows the current prompt and collects the answer.
type PracticeScreen struct {
	state    session.State
	scenario catalog.Scenario
	input    components.TextInput
	spin     spinner.Model
	busy     bool
	notice   string
}

var _ screen.Screen = (*PracticeScreen)(nil)

// New creates the practice screen for the state's current scenario and turn.
func New(st session.State, cat *catalog.Catalog) *PracticeScreen {
	p := &PracticeScreen{
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	p.apply(st, cat)
	p.input = components.NewTextInput(i18n.T(st.Language, "voice.placeholder"), 0)
	return p
}

func (p *PracticeScreen) apply(st session.State, cat *catalog.Catalog) {
	p.state = st
	if cat != nil {
		if sc, err := cat.Get(st.ScenarioID); err == nil {
			p.scenario = sc
		}
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	return p.input.Init()
}

func (p *PracticeScreen) Title() string {
	return p.scenario.DisplayTitle(p.secondary())
}

// Busy reports whether a submission is waiting on feedback.
func (p *PracticeScreen) Busy() bool { return p.busy }

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	lang := p.state.Language
	return []layout.KeyHint{
		{Key: "Enter", Description: i18n.T(lang, "practice.submit")},
		{Key: "Esc", Description: i18n.T(lang, "practice.backToScenarios")},
	}
}

func (p *PracticeScreen) secondary() bool {
	return p.state.Language == i18n.Secondary
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		p.apply(msg.State, nil)
		p.input.Model.Placeholder = i18n.T(p.state.Language, "voice.placeholder")
		return p, nil

	case screen.ResultMsg:
		p.busy = false
		if errors.Is(msg.Err, session.ErrPrecondition) {
			p.notice = i18n.T(p.state.Language, "practice.empty")
		} else if msg.Err != nil {
			p.notice = msg.Err.Error()
		}
		return p, nil

	case spinner.TickMsg:
		if !p.busy {
			return p, nil
		}
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd

	case tea.KeyPressMsg:
		if p.busy {
			return p, nil
		}
		switch msg.String() {
		case "enter":
			return p, p.submit()
		case "esc":
			p.busy = true
			return p, screen.Dispatch(session.Back{})
		}
		p.notice = ""
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *PracticeScreen) submit() tea.Cmd {
	if p.input.Blank() {
		p.notice = i18n.T(p.state.Language, "practice.empty")
		return nil
	}
	p.busy = true
	p.notice = ""
	return tea.Batch(
		screen.Dispatch(session.Submit{Text: p.input.Value()}),
		p.spin.Tick,
	)
}

func (p *PracticeScreen) View(width, height int) string {
	lang := p.state.Language
	sc := p.scenario
	secondary := p.secondary()

	var b strings.Builder

	b.WriteString(theme.Heading.Render(i18n.T(lang, "practice.situation")))
	b.WriteString(" ")
	b.WriteString(theme.Body.Render(sc.DisplayContext(secondary)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s: %s   %s: %s",
		i18n.T(lang, "scenarios.level"), sc.DisplayDifficulty(secondary),
		i18n.T(lang, "scenarios.formality"), sc.Formality)))
	b.WriteString("\n\n")

	if turn := p.state.TurnIndex; turn >= 0 && turn < len(sc.Prompts) {
		pr := sc.Prompts[turn]
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s %d/%d", i18n.T(lang, "practice.prompt"), turn+1, len(sc.Prompts))))
		b.WriteString("\n")

		card := theme.Selected.Render("„" + pr.Text + "“")
		if secondary && pr.Translation != "" {
			card += "\n" + theme.Hint.Render(pr.Translation)
		}
		b.WriteString(theme.Card.Width(min(width-8, 76)).Render(card))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Heading.Render(i18n.T(lang, "practice.yourResponse")))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	switch {
	case p.busy:
		b.WriteString(p.spin.View() + " " + theme.Hint.Render(i18n.T(lang, "practice.busy")))
	case p.notice != "":
		b.WriteString(theme.ErrorText.Render(p.notice))
	}

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Height(height).Render(b.String())
}
