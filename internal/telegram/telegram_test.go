package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/feedback"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/session"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("no message sent")
	}
	return f.sent[len(f.sent)-1]
}

type fixedFeedback struct{}

func (fixedFeedback) Request(_ context.Context, _ catalog.Scenario, _, response string, _ []feedback.Turn) feedback.Record {
	r := feedback.Fallback(response)
	r.RelevanceScore = 5
	return r
}

const chatID = 4242

func newTestBot() (*Telegram, *fakeBot, *session.Registry) {
	cat := catalog.Default()
	reg := session.NewRegistry(func(opts ...session.Option) *session.Controller {
		return session.NewController(cat, fixedFeedback{}, opts...)
	})
	bot := &fakeBot{}
	return newTelegram(bot, TelegramConnectProps{Catalog: cat, Sessions: reg}), bot, reg
}

func textMessage(text string) *tgbotapi.Message {
	m := &tgbotapi.Message{
		From: &tgbotapi.User{ID: 1, LanguageCode: "de"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	if strings.HasPrefix(text, "/") {
		m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return m
}

func callback(data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: 1, LanguageCode: "de"},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
}

func hasButton(m tgbotapi.MessageConfig, data string) bool {
	markup, ok := m.ReplyMarkup.(*tgbotapi.InlineKeyboardMarkup)
	if !ok {
		return false
	}
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil && *b.CallbackData == data {
				return true
			}
		}
	}
	return false
}

func TestChatFlow(t *testing.T) {
	tg, bot, reg := newTestBot()
	ctx := context.Background()

	tg.handleMessage(ctx, textMessage("/start"))
	if !hasButton(bot.last(t), cbStart) {
		t.Fatal("landing reply should offer start")
	}

	tg.handleCallbackQuery(ctx, callback(cbStart))
	if !hasButton(bot.last(t), "choose:small_talk") {
		t.Fatal("scenario list should offer small_talk")
	}

	tg.handleCallbackQuery(ctx, callback("choose:small_talk"))
	if !strings.Contains(bot.last(t).Text, "Wie war dein Wochenende?") {
		t.Fatalf("practice reply missing prompt:\n%s", bot.last(t).Text)
	}

	tg.handleMessage(ctx, textMessage("Sehr schön, danke!"))
	reply := bot.last(t)
	if !strings.Contains(reply.Text, "5/5") {
		t.Fatalf("feedback reply missing score:\n%s", reply.Text)
	}
	if !hasButton(reply, cbContinue) {
		t.Error("first of two prompts should offer continue")
	}

	ctl, ok := reg.Get("4242")
	if !ok {
		t.Fatal("chat session not registered")
	}
	if got := len(ctl.Snapshot().Progress); got != 1 {
		t.Fatalf("progress entries = %d, want 1", got)
	}
}

func TestText_OutsidePracticeRepliesWithState(t *testing.T) {
	tg, bot, reg := newTestBot()
	tg.handleMessage(context.Background(), textMessage("hallo"))

	if !hasButton(bot.last(t), cbStart) {
		t.Fatal("expected the landing screen again")
	}
	ctl, _ := reg.Get("4242")
	if len(ctl.Snapshot().Progress) != 0 {
		t.Fatal("text outside practice must not be submitted")
	}
}

func TestLanguageFromUser(t *testing.T) {
	tg, _, reg := newTestBot()
	msg := textMessage("/start")
	msg.From.LanguageCode = "en"
	tg.handleMessage(context.Background(), msg)

	ctl, _ := reg.Get("4242")
	if got := ctl.Snapshot().Language; got != i18n.EN {
		t.Fatalf("language = %v, want en", got)
	}
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data    string
		want    session.Action
		wantErr bool
	}{
		{data: "start", want: session.Start{}},
		{data: "choose:intro", want: session.Choose{ScenarioID: "intro"}},
		{data: "navigate:progress", want: session.Navigate{Target: session.ScreenProgress}},
		{data: "toggle_language", want: session.ToggleLanguage{}},
		{data: "retry", want: session.Retry{}},
		{data: "navigate:nowhere", wantErr: true},
		{data: "dance", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseCallback(tt.data)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseCallback(%q) expected error", tt.data)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseCallback(%q) error: %v", tt.data, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseCallback(%q) = %#v, want %#v", tt.data, got, tt.want)
		}
	}
}

func TestCommandAction(t *testing.T) {
	if a, ok := commandAction("progress"); !ok || a != (session.Navigate{Target: session.ScreenProgress}) {
		t.Errorf("progress command = %#v, %v", a, ok)
	}
	if _, ok := commandAction("unknown"); ok {
		t.Error("unknown command should not map")
	}
}

func TestRender_ProgressEmpty(t *testing.T) {
	st := session.NewState()
	st.Screen = session.ScreenProgress
	text, markup := render(st, catalog.Default())
	if !strings.Contains(text, i18n.T(i18n.DE, "progress.noHistory")) {
		t.Errorf("missing empty message:\n%s", text)
	}
	if len(markup.InlineKeyboard) != 2 {
		t.Errorf("expected back and language rows, got %d", len(markup.InlineKeyboard))
	}
}
