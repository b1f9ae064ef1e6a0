// Package telegram runs practice sessions inside Telegram chats: one
// session per chat, navigation through inline keyboards, answers as plain
// text messages.
package telegram

import (
	"context"
	"errors"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/logger"
	"github.com/abhisek/parley/internal/session"
)

// ErrMissingToken is returned by Connect without a bot token.
var ErrMissingToken = errors.New("telegram: bot token not set (PARLEY_TELEGRAM_TOKEN)")

const defaultMaxInflight = 8

// Sender is the slice of the Bot API the bot uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type TelegramConnectProps struct {
	Logger      *logger.LogMiddleware
	Token       string
	Debug       bool
	Catalog     *catalog.Catalog
	Sessions    *session.Registry
	MaxInflight int

	// SessionTTL drops chats idle for longer than this; zero keeps them.
	SessionTTL time.Duration
}

type Telegram struct {
	logger   *logger.LogMiddleware
	bot      Sender
	updates  func(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	catalog  *catalog.Catalog
	sessions *session.Registry
	inflight *semaphore.Weighted
	ttl      time.Duration
}

// Connect authenticates against the Bot API.
func Connect(ctx context.Context, args TelegramConnectProps) (*Telegram, error) {
	tracer := otel.Tracer("telegram/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	if args.Token == "" {
		return nil, ErrMissingToken
	}

	bot, err := tgbotapi.NewBotAPI(args.Token)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	bot.Debug = args.Debug

	span.SetAttributes(
		attribute.String("bot.username", bot.Self.UserName),
		attribute.Bool("bot.debug", args.Debug),
	)

	t := newTelegram(bot, args)
	t.updates = bot.GetUpdatesChan
	t.logger.Logger(ctx).Info("Telegram bot connected successfully",
		zap.String("username", bot.Self.UserName),
		zap.Bool("debug", args.Debug),
	)
	return t, nil
}

func newTelegram(bot Sender, args TelegramConnectProps) *Telegram {
	log := args.Logger
	if log == nil {
		log = logger.Nop()
	}
	n := args.MaxInflight
	if n <= 0 {
		n = defaultMaxInflight
	}
	return &Telegram{
		logger:   log,
		bot:      bot,
		catalog:  args.Catalog,
		sessions: args.Sessions,
		inflight: semaphore.NewWeighted(int64(n)),
		ttl:      args.SessionTTL,
	}
}

// Listen long-polls for updates until ctx is cancelled. Each update is
// handled on its own goroutine; one chat's submits are serialized by its
// controller.
func (t *Telegram) Listen(ctx context.Context) {
	tracer := otel.Tracer("telegram/Listen")
	ctx, span := tracer.Start(ctx, "Listen")
	defer span.End()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.updates(u)

	expireCtx, stopExpire := context.WithCancel(ctx)
	defer stopExpire()
	go t.sessions.Expire(expireCtx, t.ttl, t.logger)

	t.logger.Logger(ctx).Info("Starting Telegram bot message listener")

	for {
		select {
		case <-ctx.Done():
			t.logger.Logger(ctx).Info("Shutting down Telegram bot listener")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go t.handleUpdate(ctx, update)
		}
	}
}

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	tracer := otel.Tracer("telegram/handleUpdate")
	ctx, span := tracer.Start(ctx, "handleUpdate")
	defer span.End()

	switch {
	case update.Message != nil:
		t.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		t.handleCallbackQuery(ctx, update.CallbackQuery)
	}
}

func (t *Telegram) controller(chatID int64, from *tgbotapi.User) *session.Controller {
	lang := i18n.Primary
	if from != nil {
		lang = i18n.Match(from.LanguageCode)
	}
	return t.sessions.GetOrCreate(strconv.FormatInt(chatID, 10), session.WithLanguage(lang))
}

func (t *Telegram) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	tracer := otel.Tracer("telegram/handleMessage")
	ctx, span := tracer.Start(ctx, "handleMessage")
	defer span.End()

	if message.From == nil || message.Chat == nil || message.Text == "" {
		return
	}

	chatID := message.Chat.ID
	span.SetAttributes(
		attribute.Int64("user.id", message.From.ID),
		attribute.Int64("chat.id", chatID),
		attribute.Bool("message.command", message.IsCommand()),
	)

	ctl := t.controller(chatID, message.From)

	var action session.Action
	if message.IsCommand() {
		a, ok := commandAction(message.Command())
		if !ok {
			t.reply(ctx, chatID, ctl.Snapshot())
			return
		}
		action = a
	} else {
		if ctl.Snapshot().Screen != session.ScreenPractice {
			t.reply(ctx, chatID, ctl.Snapshot())
			return
		}
		action = session.Submit{Text: message.Text}
	}

	t.dispatch(ctx, chatID, ctl, action)
}

func (t *Telegram) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	tracer := otel.Tracer("telegram/handleCallbackQuery")
	ctx, span := tracer.Start(ctx, "handleCallbackQuery")
	defer span.End()

	if query.From == nil || query.Message == nil || query.Message.Chat == nil {
		return
	}

	span.SetAttributes(
		attribute.Int64("user.id", query.From.ID),
		attribute.String("callback.data", query.Data),
	)

	if _, err := t.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		t.logger.Logger(ctx).Warn("Failed to acknowledge callback", zap.Error(err))
	}

	chatID := query.Message.Chat.ID
	ctl := t.controller(chatID, query.From)

	action, err := parseCallback(query.Data)
	if err != nil {
		t.logger.Logger(ctx).Warn("Ignoring callback", zap.String("data", query.Data), zap.Error(err))
		return
	}
	t.dispatch(ctx, chatID, ctl, action)
}

// dispatch applies an action and replies with the resulting screen. Rejected
// actions still get a reply so the chat shows the current state.
func (t *Telegram) dispatch(ctx context.Context, chatID int64, ctl *session.Controller, action session.Action) {
	_, isSubmit := action.(session.Submit)
	if isSubmit {
		if err := t.inflight.Acquire(ctx, 1); err != nil {
			return
		}
		defer t.inflight.Release(1)

		typing := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
		if _, err := t.bot.Request(typing); err != nil {
			t.logger.Logger(ctx).Debug("Failed to send typing action", zap.Error(err))
		}
	}

	if err := ctl.Dispatch(ctx, action); err != nil {
		t.logger.Logger(ctx).Info("Action rejected",
			zap.Int64("chat_id", chatID),
			zap.String("action", action.Name()),
			zap.Error(err))
		if isSubmit && errors.Is(err, session.ErrPrecondition) {
			lang := ctl.Snapshot().Language
			t.send(ctx, tgbotapi.NewMessage(chatID, i18n.T(lang, "practice.empty")))
			return
		}
	}
	t.reply(ctx, chatID, ctl.Snapshot())
}

func (t *Telegram) reply(ctx context.Context, chatID int64, st session.State) {
	text, markup := render(st, t.catalog)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	t.send(ctx, msg)
}

func (t *Telegram) send(ctx context.Context, c tgbotapi.Chattable) {
	if _, err := t.bot.Send(c); err != nil {
		t.logger.Logger(ctx).Error("Failed to send response", zap.Error(err))
	}
}
