package session

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition is returned when an action is valid on the current
	// screen but its guard does not hold (empty answer, no next prompt).
	ErrPrecondition = errors.New("precondition failed")

	// ErrInvalidAction is returned for an action the current screen does
	// not offer.
	ErrInvalidAction = errors.New("action not available on this screen")

	// ErrUnknownAction is returned by ParseAction for an unrecognised name.
	ErrUnknownAction = errors.New("unknown action")
)

// Action is a learner intent handled by Controller.Dispatch. The set is
// closed; only the types in this file implement it.
type Action interface {
	Name() string
	isAction()
}

type (
	// Start leaves the landing screen.
	Start struct{}

	// Choose selects a scenario and begins at its first prompt.
	Choose struct{ ScenarioID string }

	// Submit answers the current prompt.
	Submit struct{ Text string }

	// Back returns from practice or progress to the scenario list.
	Back struct{}

	// Retry re-asks the same prompt.
	Retry struct{}

	// Continue moves to the next prompt of the scenario.
	Continue struct{}

	// NewScenario leaves a finished scenario.
	NewScenario struct{}

	// ViewProgress opens the progress screen from feedback.
	ViewProgress struct{}

	// Navigate jumps to landing, scenarios or progress from anywhere.
	Navigate struct{ Target Screen }

	// ToggleLanguage flips the display language.
	ToggleLanguage struct{}
)

func (Start) Name() string          { return "start" }
func (Choose) Name() string         { return "choose" }
func (Submit) Name() string         { return "submit" }
func (Back) Name() string           { return "back" }
func (Retry) Name() string          { return "retry" }
func (Continue) Name() string       { return "continue" }
func (NewScenario) Name() string    { return "new_scenario" }
func (ViewProgress) Name() string   { return "view_progress" }
func (Navigate) Name() string       { return "navigate" }
func (ToggleLanguage) Name() string { return "toggle_language" }

func (Start) isAction()          {}
func (Choose) isAction()         {}
func (Submit) isAction()         {}
func (Back) isAction()           {}
func (Retry) isAction()          {}
func (Continue) isAction()       {}
func (NewScenario) isAction()    {}
func (ViewProgress) isAction()   {}
func (Navigate) isAction()       {}
func (ToggleLanguage) isAction() {}

// ParseAction builds an Action from its wire name and arguments. Only the
// arguments the action uses are read.
func ParseAction(name, scenarioID, text, target string) (Action, error) {
	switch name {
	case "start":
		return Start{}, nil
	case "choose":
		return Choose{ScenarioID: scenarioID}, nil
	case "submit":
		return Submit{Text: text}, nil
	case "back":
		return Back{}, nil
	case "retry":
		return Retry{}, nil
	case "continue":
		return Continue{}, nil
	case "new_scenario":
		return NewScenario{}, nil
	case "view_progress":
		return ViewProgress{}, nil
	case "navigate":
		screen, err := ParseScreen(target)
		if err != nil {
			return nil, fmt.Errorf("%w: navigate: %v", ErrUnknownAction, err)
		}
		return Navigate{Target: screen}, nil
	case "toggle_language":
		return ToggleLanguage{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}
