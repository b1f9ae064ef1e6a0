package session

import (
	"fmt"
	"strings"

	"github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
)

// Screen names the screen a learner is on.
type Screen int

const (
	ScreenLanding Screen = iota
	ScreenScenarios
	ScreenPractice
	ScreenFeedback
	ScreenProgress
)

func (s Screen) String() string {
	switch s {
	case ScreenLanding:
		return "landing"
	case ScreenScenarios:
		return "scenarios"
	case ScreenPractice:
		return "practice"
	case ScreenFeedback:
		return "feedback"
	case ScreenProgress:
		return "progress"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

// ParseScreen maps a screen name back to a Screen. "home" is accepted as
// an alias for landing.
func ParseScreen(name string) (Screen, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "landing", "home":
		return ScreenLanding, nil
	case "scenarios":
		return ScreenScenarios, nil
	case "practice":
		return ScreenPractice, nil
	case "feedback":
		return ScreenFeedback, nil
	case "progress":
		return ScreenProgress, nil
	default:
		return 0, fmt.Errorf("unknown screen %q", name)
	}
}

// Turn is one submitted answer within the current scenario.
type Turn = feedback.Turn

// ProgressEntry is one line of the learner's practice log.
type ProgressEntry struct {
	Scenario   string  `json:"scenario"`
	ScenarioID string  `json:"scenario_id"`
	Score      float64 `json:"score"`
	Timestamp  string  `json:"timestamp"`
	Response   string  `json:"response"`
}

// State is everything one learner's session knows. It is owned by a
// Controller and only changed through Dispatch.
type State struct {
	// Screen is the screen currently shown.
	Screen Screen

	// ScenarioID is the selected scenario, empty when none is selected.
	ScenarioID string

	// TurnIndex indexes the scenario's prompts. It is valid whenever Screen
	// is ScreenPractice or ScreenFeedback.
	TurnIndex int

	// History holds every submission since the scenario was entered,
	// retries included.
	History []Turn

	// Feedback is the most recent assessment, nil before the first submit.
	Feedback *feedback.Record

	// Progress is the append-only practice log for the session lifetime.
	Progress []ProgressEntry

	// Language is the display language. It never affects the core flow.
	Language i18n.Language
}

// NewState returns the initial state: landing screen, primary language.
func NewState() State {
	return State{Screen: ScreenLanding, Language: i18n.Primary}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.History = append([]Turn(nil), s.History...)
	out.Progress = append([]ProgressEntry(nil), s.Progress...)
	if s.Feedback != nil {
		fb := s.Feedback.Clone()
		out.Feedback = &fb
	}
	return out
}
