package server

import (
	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/session"
)

type scenarioView struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Context    string           `json:"context"`
	Difficulty string           `json:"difficulty"`
	Formality  string           `json:"formality"`
	Icon       string           `json:"icon,omitempty"`
	Prompts    []catalog.Prompt `json:"prompts,omitempty"`
}

func newScenarioView(sc catalog.Scenario, lang i18n.Language, withPrompts bool) scenarioView {
	secondary := lang == i18n.Secondary
	v := scenarioView{
		ID:         sc.ID,
		Title:      sc.DisplayTitle(secondary),
		Context:    sc.DisplayContext(secondary),
		Difficulty: sc.DisplayDifficulty(secondary),
		Formality:  sc.Formality,
		Icon:       sc.Icon,
	}
	if withPrompts {
		v.Prompts = sc.Prompts
	}
	return v
}

type promptView struct {
	Index       int    `json:"index"`
	Total       int    `json:"total"`
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
}

type feedbackView struct {
	feedback.Record
	Label string `json:"label"`
}

// stateView is the JSON rendering of a session snapshot.
type stateView struct {
	ID       string                  `json:"id,omitempty"`
	Screen   string                  `json:"screen"`
	Language i18n.Language           `json:"language"`
	Scenario *scenarioView           `json:"scenario,omitempty"`
	Turn     int                     `json:"turn"`
	Prompt   *promptView             `json:"prompt,omitempty"`
	History  []session.Turn          `json:"history"`
	Feedback *feedbackView           `json:"feedback,omitempty"`
	Progress []session.ProgressEntry `json:"progress"`
	Average  float64                 `json:"average"`
}

func newStateView(id string, st session.State, cat *catalog.Catalog) stateView {
	v := stateView{
		ID:       id,
		Screen:   st.Screen.String(),
		Language: st.Language,
		Turn:     st.TurnIndex,
		History:  st.History,
		Progress: st.Progress,
		Average:  session.AverageScore(st.Progress),
	}
	if v.History == nil {
		v.History = []session.Turn{}
	}
	if v.Progress == nil {
		v.Progress = []session.ProgressEntry{}
	}

	if st.ScenarioID != "" {
		if sc, err := cat.Get(st.ScenarioID); err == nil {
			scv := newScenarioView(sc, st.Language, false)
			v.Scenario = &scv
			if st.TurnIndex >= 0 && st.TurnIndex < len(sc.Prompts) {
				p := sc.Prompts[st.TurnIndex]
				v.Prompt = &promptView{
					Index:       st.TurnIndex + 1,
					Total:       len(sc.Prompts),
					Text:        p.Text,
					Translation: p.Translation,
				}
			}
		}
	}

	if st.Feedback != nil {
		v.Feedback = &feedbackView{
			Record: st.Feedback.Clone(),
			Label:  i18n.T(st.Language, session.ScoreLabelKey(st.Feedback.RelevanceScore)),
		}
	}
	return v
}
