package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/i18n"
	"github.com/abhisek/parley/internal/session"
)

// Callback payloads. Arguments follow a colon, e.g. "choose:small_talk".
const (
	cbStart        = "start"
	cbChoose       = "choose"
	cbBack         = "back"
	cbRetry        = "retry"
	cbContinue     = "continue"
	cbNewScenario  = "new_scenario"
	cbViewProgress = "view_progress"
	cbNavigate     = "navigate"
	cbLanguage     = "toggle_language"
)

// parseCallback turns inline-button data into an action.
func parseCallback(data string) (session.Action, error) {
	name, arg, _ := strings.Cut(data, ":")
	switch name {
	case cbChoose:
		return session.ParseAction(name, arg, "", "")
	case cbNavigate:
		return session.ParseAction(name, "", "", arg)
	default:
		return session.ParseAction(name, "", "", "")
	}
}

// commandAction maps slash commands onto actions.
func commandAction(cmd string) (session.Action, bool) {
	switch cmd {
	case "start", "home":
		return session.Navigate{Target: session.ScreenLanding}, true
	case "scenarios":
		return session.Navigate{Target: session.ScreenScenarios}, true
	case "progress":
		return session.Navigate{Target: session.ScreenProgress}, true
	case "lang", "language":
		return session.ToggleLanguage{}, true
	}
	return nil, false
}

// render builds the chat message for a state: text plus inline keyboard.
func render(st session.State, cat *catalog.Catalog) (string, *tgbotapi.InlineKeyboardMarkup) {
	lang := st.Language
	secondary := lang == i18n.Secondary
	t := func(key string) string { return i18n.T(lang, key) }

	var b strings.Builder
	var rows [][]tgbotapi.InlineKeyboardButton

	langRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🌐 "+t("nav.language"), cbLanguage),
	)

	switch st.Screen {
	case session.ScreenLanding:
		fmt.Fprintf(&b, "%s\n%s\n\n%s", t("landing.title"), t("landing.subtitle"), t("landing.description"))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t("landing.cta"), cbStart),
		))

	case session.ScreenScenarios:
		fmt.Fprintf(&b, "%s\n%s", t("scenarios.title"), t("scenarios.subtitle"))
		for _, sc := range cat.All() {
			label := strings.TrimSpace(sc.Icon + " " + sc.DisplayTitle(secondary))
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(label, cbChoose+":"+sc.ID),
			))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t("nav.progress"), cbNavigate+":progress"),
		))

	case session.ScreenPractice:
		sc, err := cat.Get(st.ScenarioID)
		if err != nil || st.TurnIndex < 0 || st.TurnIndex >= len(sc.Prompts) {
			b.WriteString(t("scenarios.title"))
			break
		}
		p := sc.Prompts[st.TurnIndex]
		fmt.Fprintf(&b, "%s %s\n%s\n\n", sc.Icon, sc.DisplayTitle(secondary), sc.DisplayContext(secondary))
		fmt.Fprintf(&b, "%s %d/%d: „%s“", t("practice.prompt"), st.TurnIndex+1, len(sc.Prompts), p.Text)
		if secondary && p.Translation != "" {
			fmt.Fprintf(&b, "\n(%s)", p.Translation)
		}
		fmt.Fprintf(&b, "\n\n%s", t("voice.placeholder"))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t("practice.backToScenarios"), cbBack),
		))

	case session.ScreenFeedback:
		writeFeedback(&b, st, t)
		next := tgbotapi.NewInlineKeyboardButtonData(t("feedback.nextScenario"), cbNewScenario)
		if sc, err := cat.Get(st.ScenarioID); err == nil && st.TurnIndex < sc.LastTurn() {
			next = tgbotapi.NewInlineKeyboardButtonData(t("feedback.continue"), cbContinue)
		}
		rows = append(rows,
			tgbotapi.NewInlineKeyboardRow(next),
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(t("feedback.tryAgain"), cbRetry),
				tgbotapi.NewInlineKeyboardButtonData(t("feedback.viewProgress"), cbViewProgress),
			),
		)

	case session.ScreenProgress:
		writeProgress(&b, st, t)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(t("progress.back"), cbBack),
		))
	}

	rows = append(rows, langRow)
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return b.String(), &markup
}

func writeFeedback(b *strings.Builder, st session.State, t func(string) string) {
	if st.Feedback == nil {
		return
	}
	rec := st.Feedback
	fmt.Fprintf(b, "%s: %s %s\n\n", t("feedback.score"), session.FormatScore(rec.RelevanceScore), t(session.ScoreLabelKey(rec.RelevanceScore)))
	fmt.Fprintf(b, "%s: „%s“\n\n", t("feedback.yourResponse"), rec.Transcript)
	fmt.Fprintf(b, "%s:\n", t("feedback.whatWorked"))
	for _, w := range rec.WhatWorked {
		fmt.Fprintf(b, "✓ %s\n", w)
	}
	fmt.Fprintf(b, "\n%s: %s\n\n", t("feedback.improvement"), rec.Improvement)
	fmt.Fprintf(b, "%s: „%s“\n\n", t("feedback.suggested"), rec.SuggestedResponse)
	fmt.Fprintf(b, "%s: %s", t("feedback.explanation"), rec.ScoreExplanation)
}

func writeProgress(b *strings.Builder, st session.State, t func(string) string) {
	log := st.Progress
	fmt.Fprintf(b, "%s\n\n", t("progress.title"))
	fmt.Fprintf(b, "%s: %d\n", t("progress.attempts"), len(log))
	fmt.Fprintf(b, "%s: %d\n", t("progress.completed"), session.DistinctScenarios(log))
	fmt.Fprintf(b, "%s: %s\n\n", t("progress.average"), session.FormatAverage(session.AverageScore(log)))
	if len(log) == 0 {
		b.WriteString(t("progress.noHistory"))
		return
	}
	fmt.Fprintf(b, "%s:\n", t("progress.history"))
	for _, e := range session.NewestFirst(session.Recent(log, 10)) {
		fmt.Fprintf(b, "%s  %s  %s\n", e.Timestamp, session.FormatScore(e.Score), e.Scenario)
	}
}
