package progress

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
)

func progressState(entries ...session.ProgressEntry) session.State {
	st := session.NewState()
	st.Screen = session.ScreenProgress
	st.Progress = entries
	return st
}

func TestView_Empty(t *testing.T) {
	p := New(progressState())
	out := p.View(120, 40)
	if !strings.Contains(out, i18n.T(i18n.DE, "progress.noHistory")) {
		t.Errorf("empty message missing:\n%s", out)
	}
	if !strings.Contains(out, "0.0/5") {
		t.Errorf("empty average should render 0.0/5:\n%s", out)
	}
}

func TestView_StatsAndOrder(t *testing.T) {
	p := New(progressState(
		session.ProgressEntry{Scenario: "Erster", ScenarioID: "a", Score: 5, Timestamp: "2026-03-14 09:00"},
		session.ProgressEntry{Scenario: "Zweiter", ScenarioID: "b", Score: 3, Timestamp: "2026-03-14 09:05"},
		session.ProgressEntry{Scenario: "Dritter", ScenarioID: "a", Score: 4, Timestamp: "2026-03-14 09:10"},
	))
	out := p.View(120, 40)

	if !strings.Contains(out, "4.0/5") {
		t.Errorf("average 4.0/5 missing:\n%s", out)
	}
	newest := strings.Index(out, "Dritter")
	oldest := strings.Index(out, "Erster")
	if newest < 0 || oldest < 0 || newest > oldest {
		t.Errorf("history should be newest first:\n%s", out)
	}
}

func TestEscGoesBack(t *testing.T) {
	p := New(progressState())
	_, cmd := p.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(screen.ActionMsg)
	if !ok {
		t.Fatalf("expected ActionMsg, got %T", cmd())
	}
	if _, ok := msg.Action.(session.Back); !ok {
		t.Fatalf("expected Back, got %T", msg.Action)
	}
	if !p.Busy() {
		t.Error("screen should be busy until the result arrives")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("kurz", 10); got != "kurz" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("Grüß Gott zusammen", 6); got != "Grüß …" {
		t.Errorf("truncate long = %q", got)
	}
}
