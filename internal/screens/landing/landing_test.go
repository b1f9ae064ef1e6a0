package landing

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
)

func TestEnterDispatchesStart(t *testing.T) {
	l := New(session.NewState())

	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(screen.ActionMsg)
	if !ok {
		t.Fatalf("expected ActionMsg, got %T", cmd())
	}
	if _, ok := msg.Action.(session.Start); !ok {
		t.Fatalf("expected Start, got %T", msg.Action)
	}
	if !l.Busy() {
		t.Error("screen should be busy until the result arrives")
	}

	_, cmd = l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("second enter while busy should be ignored")
	}

	l.Update(screen.ResultMsg{Action: session.Start{}})
	if l.Busy() {
		t.Error("result should clear busy")
	}
}

func TestViewFollowsLanguage(t *testing.T) {
	l := New(session.NewState())
	if out := l.View(120, 40); !strings.Contains(out, i18n.T(i18n.DE, "landing.cta")) {
		t.Errorf("German call to action missing:\n%s", out)
	}

	st := session.NewState()
	st.Language = i18n.EN
	l.Update(screen.StateMsg{State: st})
	if out := l.View(120, 40); !strings.Contains(out, i18n.T(i18n.EN, "landing.cta")) {
		t.Errorf("English call to action missing after toggle:\n%s", out)
	}
}

func TestBanner_CompactWhenNarrow(t *testing.T) {
	if out := RenderBanner(40); !strings.Contains(out, bannerCompact) {
		t.Errorf("expected compact banner, got:\n%s", out)
	}
}
