package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/catalog"
	fb "github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
)

type fixedFeedback struct{ score float64 }

func (f fixedFeedback) Request(_ context.Context, _ catalog.Scenario, _, response string, _ []fb.Turn) fb.Record {
	r := fb.Fallback(response)
	r.RelevanceScore = f.score
	return r
}

func newTestModel(t *testing.T) AppModel {
	t.Helper()
	ctl := session.NewController(catalog.Default(), fixedFeedback{score: 4},
		session.WithClock(func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local) }))
	m := newAppModel(Options{Controller: ctl})
	m.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local) }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	return next.(AppModel)
}

// drive feeds msg to the model and keeps running produced commands until
// none are left, skipping ticks and batches that only animate.
func drive(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 20 {
			t.Fatal("message loop did not settle")
		}
		next, cmd := m.Update(queue[0])
		m = next.(AppModel)
		queue = queue[1:]
		queue = append(queue, run(cmd)...)
	}
	return m
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	case screen.ActionMsg, screen.ResultMsg:
		return []tea.Msg{msg}
	}
	return nil
}

func typeText(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
		m = next.(AppModel)
	}
	return m
}

func TestFullPracticeLoop(t *testing.T) {
	m := newTestModel(t)
	enter := tea.KeyPressMsg{Code: tea.KeyEnter}

	m = drive(t, m, enter)
	if got := m.ctl.Snapshot().Screen; got != session.ScreenScenarios {
		t.Fatalf("after start screen = %v", got)
	}

	m = drive(t, m, enter)
	st := m.ctl.Snapshot()
	if st.Screen != session.ScreenPractice || st.ScenarioID != "small_talk" {
		t.Fatalf("after choose state = %v/%q", st.Screen, st.ScenarioID)
	}

	m = typeText(t, m, "Gut, danke")
	m = drive(t, m, enter)
	st = m.ctl.Snapshot()
	if st.Screen != session.ScreenFeedback {
		t.Fatalf("after submit screen = %v", st.Screen)
	}
	if len(st.Progress) != 1 || st.Progress[0].Response != "Gut, danke" {
		t.Fatalf("progress = %+v", st.Progress)
	}

	out := m.frame()
	if !strings.Contains(out, "4/5") {
		t.Errorf("feedback view missing score:\n%s", out)
	}
	if !strings.Contains(out, "Ø 4.0/5") {
		t.Errorf("header missing average:\n%s", out)
	}
}

func TestGlobalKeys(t *testing.T) {
	m := newTestModel(t)

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyF3})
	if got := m.ctl.Snapshot().Screen; got != session.ScreenProgress {
		t.Fatalf("F3 screen = %v", got)
	}

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyF4})
	if got := m.ctl.Snapshot().Language; got != i18n.EN {
		t.Fatalf("F4 language = %v", got)
	}
	if !strings.Contains(m.frame(), i18n.T(i18n.EN, "progress.title")) {
		t.Error("progress screen not relabelled after toggle")
	}

	m = drive(t, m, tea.KeyPressMsg{Code: tea.KeyF1})
	if got := m.ctl.Snapshot().Screen; got != session.ScreenLanding {
		t.Fatalf("F1 screen = %v", got)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg, got %T", cmd())
	}
}

func TestView_TooSmall(t *testing.T) {
	m := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(next.(AppModel).frame(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestBuilder_CoversEveryScreen(t *testing.T) {
	build := Builder(catalog.Default())
	for _, s := range []session.Screen{
		session.ScreenLanding, session.ScreenScenarios, session.ScreenPractice,
		session.ScreenFeedback, session.ScreenProgress,
	} {
		st := session.NewState()
		st.Screen = s
		st.ScenarioID = "small_talk"
		rec := fb.Fallback("x")
		st.Feedback = &rec
		if build(st) == nil {
			t.Errorf("no screen for %v", s)
		}
	}
}

// gatedFeedback holds each request until release is closed.
type gatedFeedback struct {
	started chan struct{}
	release chan struct{}
}

func (g gatedFeedback) Request(_ context.Context, _ catalog.Scenario, _, response string, _ []fb.Turn) fb.Record {
	g.started <- struct{}{}
	<-g.release
	return fb.Fallback(response)
}

func TestView_RendersWhileFeedbackPending(t *testing.T) {
	gate := gatedFeedback{started: make(chan struct{}, 1), release: make(chan struct{})}
	ctl := session.NewController(catalog.Default(), gate)
	m := newAppModel(Options{Controller: ctl})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	m = next.(AppModel)

	enter := tea.KeyPressMsg{Code: tea.KeyEnter}
	m = drive(t, m, enter)
	m = drive(t, m, enter)
	m = typeText(t, m, "Gut, danke")

	// Enter emits the submit action; the router turns it into the
	// dispatch command, which blocks on the gated request.
	next, cmd := m.Update(enter)
	m = next.(AppModel)
	var dispatch tea.Cmd
	for _, msg := range run(cmd) {
		if _, ok := msg.(screen.ActionMsg); ok {
			next, dispatch = m.Update(msg)
			m = next.(AppModel)
		}
	}
	if dispatch == nil {
		t.Fatal("submit produced no dispatch command")
	}
	result := make(chan tea.Msg, 1)
	go func() { result <- dispatch() }()
	<-gate.started

	frame := make(chan string, 1)
	go func() { frame <- m.frame() }()
	select {
	case out := <-frame:
		if !strings.Contains(out, i18n.T(i18n.DE, "practice.busy")) {
			t.Errorf("busy indicator missing while feedback pending:\n%s", out)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("view blocked while a feedback request was in flight")
	}

	// Global keys stay inert while the screen is busy.
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyF1}); cmd != nil {
		t.Error("F1 dispatched during a pending submit")
	}

	close(gate.release)
	m = drive(t, m, <-result)
	if got := m.ctl.Snapshot().Screen; got != session.ScreenFeedback {
		t.Fatalf("after release screen = %v", got)
	}
}
