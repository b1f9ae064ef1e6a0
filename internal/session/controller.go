package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/logger"
)

// Clock supplies the wall-clock time used for progress timestamps.
type Clock func() time.Time

// Option configures a Controller.
type Option func(*Controller)

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(ctl *Controller) { ctl.now = c }
}

// WithLanguage sets the initial display language.
func WithLanguage(lang i18n.Language) Option {
	return func(ctl *Controller) { ctl.state.Language = lang }
}

// WithLogger attaches a logger for transition diagnostics.
func WithLogger(l *logger.LogMiddleware) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.log = l
		}
	}
}

// Controller owns one learner's State and applies actions to it. All
// methods are safe for concurrent use. Dispatch calls are serialized, so a
// second submit waits for the first feedback request to finish, but
// Snapshot never waits on a feedback request.
type Controller struct {
	dispatchMu sync.Mutex // serializes Dispatch

	mu       sync.Mutex // guards state
	state    State
	catalog  *catalog.Catalog
	feedback feedback.Requester
	now      Clock
	log      *logger.LogMiddleware
}

// NewController returns a controller on the landing screen.
func NewController(cat *catalog.Catalog, fb feedback.Requester, opts ...Option) *Controller {
	c := &Controller{
		state:    NewState(),
		catalog:  cat,
		feedback: fb,
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Catalog returns the scenario catalog the controller draws from.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// AverageScore is the mean score over the session's progress log.
func (c *Controller) AverageScore() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return AverageScore(c.state.Progress)
}

// Dispatch applies a to the state. On error the state is unchanged. The
// errors are ErrInvalidAction, ErrPrecondition and, for an unknown
// scenario id, catalog.ErrNotFound, each wrapped with detail.
//
// The action is applied to a copy of the state, which replaces the
// current state only on success. A submit calls the feedback service
// without holding the state lock; Snapshot keeps returning the
// pre-submit state until the reply is in. Cancelling ctx does not abort
// that call.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	c.dispatchMu.Lock()
	defer c.dispatchMu.Unlock()

	st := c.Snapshot()
	from := st.Screen
	err := c.apply(ctx, &st, a)
	if err != nil {
		c.log.Logger(ctx).Debug("action rejected",
			zap.String("action", a.Name()),
			zap.Stringer("screen", from),
			zap.Error(err))
		return err
	}
	c.log.Logger(ctx).Debug("action applied",
		zap.String("action", a.Name()),
		zap.Stringer("from", from),
		zap.Stringer("to", st.Screen))

	c.mu.Lock()
	c.state = st
	c.mu.Unlock()
	return nil
}

func (c *Controller) apply(ctx context.Context, st *State, a Action) error {
	// Global actions, available on every screen.
	switch a := a.(type) {
	case ToggleLanguage:
		st.Language = i18n.Toggle(st.Language)
		return nil
	case Navigate:
		return navigate(st, a.Target)
	}

	switch st.Screen {
	case ScreenLanding:
		if _, ok := a.(Start); ok {
			st.Screen = ScreenScenarios
			return nil
		}
	case ScreenScenarios:
		if a, ok := a.(Choose); ok {
			return c.choose(st, a.ScenarioID)
		}
	case ScreenPractice:
		switch a := a.(type) {
		case Submit:
			return c.submit(ctx, st, a.Text)
		case Back:
			st.Screen = ScreenScenarios
			return nil
		}
	case ScreenFeedback:
		switch a.(type) {
		case Retry:
			st.Screen = ScreenPractice
			return nil
		case Continue:
			return c.advance(st)
		case NewScenario:
			return c.finishScenario(st)
		case ViewProgress:
			st.Screen = ScreenProgress
			return nil
		}
	case ScreenProgress:
		if _, ok := a.(Back); ok {
			st.Screen = ScreenScenarios
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown screen %s", ErrInvalidAction, st.Screen)
	}
	return fmt.Errorf("%w: %s on %s", ErrInvalidAction, a.Name(), st.Screen)
}

func navigate(st *State, target Screen) error {
	switch target {
	case ScreenLanding, ScreenScenarios, ScreenProgress:
		st.Screen = target
		return nil
	default:
		return fmt.Errorf("%w: cannot navigate to %s", ErrPrecondition, target)
	}
}

func (c *Controller) choose(st *State, id string) error {
	if _, err := c.catalog.Get(id); err != nil {
		return err
	}
	st.ScenarioID = id
	st.TurnIndex = 0
	st.History = nil
	st.Feedback = nil
	st.Screen = ScreenPractice
	return nil
}

func (c *Controller) submit(ctx context.Context, st *State, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty response", ErrPrecondition)
	}
	sc, err := c.current(st)
	if err != nil {
		return err
	}

	prompt := sc.Prompts[st.TurnIndex].Text
	history := append([]Turn(nil), st.History...)

	rec := c.feedback.Request(context.WithoutCancel(ctx), sc, prompt, text, history)

	st.Feedback = &rec
	st.History = append(st.History, Turn{Prompt: prompt, Response: text})
	st.Progress = AppendProgress(st.Progress, ProgressEntry{
		Scenario:   sc.Title,
		ScenarioID: sc.ID,
		Score:      rec.RelevanceScore,
		Timestamp:  c.now().Format(TimestampLayout),
		Response:   text,
	})
	st.Screen = ScreenFeedback
	return nil
}

func (c *Controller) advance(st *State) error {
	sc, err := c.current(st)
	if err != nil {
		return err
	}
	if st.TurnIndex >= sc.LastTurn() {
		return fmt.Errorf("%w: no prompt after %d", ErrPrecondition, st.TurnIndex)
	}
	st.TurnIndex++
	st.Screen = ScreenPractice
	return nil
}

func (c *Controller) finishScenario(st *State) error {
	sc, err := c.current(st)
	if err != nil {
		return err
	}
	if st.TurnIndex != sc.LastTurn() {
		return fmt.Errorf("%w: scenario has prompts left", ErrPrecondition)
	}
	st.ScenarioID = ""
	st.Screen = ScreenScenarios
	return nil
}

// current returns the selected scenario with TurnIndex checked against it.
func (c *Controller) current(st *State) (catalog.Scenario, error) {
	if st.ScenarioID == "" {
		return catalog.Scenario{}, fmt.Errorf("%w: no scenario selected", ErrPrecondition)
	}
	sc, err := c.catalog.Get(st.ScenarioID)
	if err != nil {
		return catalog.Scenario{}, err
	}
	if st.TurnIndex < 0 || st.TurnIndex > sc.LastTurn() {
		return catalog.Scenario{}, fmt.Errorf("%w: turn %d out of range", ErrPrecondition, st.TurnIndex)
	}
	return sc, nil
}
