// Package i18n holds the UI strings for both display languages. Lookups
// take the language explicitly; each session owns its own choice.
package i18n

import (
	"golang.org/x/text/language"
)

// Language represents a UI language.
type Language string

const (
	DE Language = "de"
	EN Language = "en"
)

// Primary is the practice language. Secondary carries translations.
const (
	Primary   = DE
	Secondary = EN
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// Landing
		"landing.title":          "Deutsch Üben",
		"landing.subtitle":       "Workplace Conversation Practice",
		"landing.description":    "Perfect for professionals who can read German but need confidence speaking in workplace situations. Practice real scenarios, get instant feedback.",
		"landing.cta":            "Start Practice",
		"landing.feature1.title": "Real Scenarios",
		"landing.feature1.desc":  "Practice conversations you'll actually have at work",
		"landing.feature2.title": "Typed Practice",
		"landing.feature2.desc":  "Write your responses as you would say them",
		"landing.feature3.title": "Instant Feedback",
		"landing.feature3.desc":  "Get scores and suggestions to improve",
		"landing.footer":         "Built for workplace communication confidence",

		// Scenario selection
		"scenarios.title":         "Choose a Scenario",
		"scenarios.subtitle":      "Select a workplace situation to practice",
		"scenarios.back":          "Back",
		"scenarios.progress":      "Progress",
		"scenarios.recent":        "Your Progress",
		"scenarios.sessionsToday": "Sessions today",
		"scenarios.level":         "Level",
		"scenarios.formality":     "Formality",

		// Practice
		"practice.back":            "Back",
		"practice.backToScenarios": "Back to Scenarios",
		"practice.situation":       "Situation:",
		"practice.prompt":          "Prompt",
		"practice.yourResponse":    "Your Response",
		"practice.submit":          "Submit Response",
		"practice.busy":            "Getting feedback...",
		"practice.empty":           "Please type a response first.",

		// Feedback
		"feedback.title":        "Your Feedback",
		"feedback.yourResponse": "Your Response",
		"feedback.score":        "Score",
		"feedback.whatWorked":   "What worked well",
		"feedback.improvement":  "Area to improve",
		"feedback.suggested":    "Suggested response",
		"feedback.explanation":  "Why this score",
		"feedback.tryAgain":     "Try Again",
		"feedback.continue":     "Next Prompt",
		"feedback.nextScenario": "Next Scenario",
		"feedback.viewProgress": "View Progress",

		// Progress
		"progress.title":     "Your Progress",
		"progress.completed": "Scenarios Completed",
		"progress.average":   "Average Score",
		"progress.attempts":  "Total Attempts",
		"progress.history":   "Practice History",
		"progress.noHistory": "No practice history yet. Start practicing to see your progress!",
		"progress.back":      "Back",

		// Input
		"voice.placeholder": "Type your response in German...",

		// Badges
		"badge.beginner":     "Beginner",
		"badge.intermediate": "Intermediate",

		// Score labels
		"score.excellent":        "Excellent!",
		"score.veryGood":         "Very good!",
		"score.good":             "Good!",
		"score.okay":             "Okay",
		"score.needsImprovement": "Needs Improvement",

		// Navigation
		"nav.home":      "Home",
		"nav.scenarios": "Scenarios",
		"nav.progress":  "Progress",
		"nav.language":  "Deutsch",
		"nav.quit":      "Quit",
	},
	DE: {
		// Landing
		"landing.title":          "Deutsch Üben",
		"landing.subtitle":       "Gesprächspraxis am Arbeitsplatz",
		"landing.description":    "Perfekt für Berufstätige, die Deutsch lesen können, aber mehr Selbstvertrauen beim Sprechen brauchen. Üben Sie echte Szenarien, erhalten Sie sofortiges Feedback.",
		"landing.cta":            "Übung starten",
		"landing.feature1.title": "Echte Szenarien",
		"landing.feature1.desc":  "Üben Sie Gespräche, die Sie bei der Arbeit führen werden",
		"landing.feature2.title": "Schriftliche Übung",
		"landing.feature2.desc":  "Schreiben Sie Ihre Antworten so, wie Sie sie sagen würden",
		"landing.feature3.title": "Sofortiges Feedback",
		"landing.feature3.desc":  "Erhalten Sie Punkte und Verbesserungsvorschläge",
		"landing.footer":         "Für mehr Selbstvertrauen in der Kommunikation am Arbeitsplatz",

		// Scenario selection
		"scenarios.title":         "Wählen Sie ein Szenario",
		"scenarios.subtitle":      "Wählen Sie eine Arbeitssituation zum Üben",
		"scenarios.back":          "Zurück",
		"scenarios.progress":      "Fortschritt",
		"scenarios.recent":        "Ihr Fortschritt",
		"scenarios.sessionsToday": "Übungen heute",
		"scenarios.level":         "Niveau",
		"scenarios.formality":     "Anrede",

		// Practice
		"practice.back":            "Zurück",
		"practice.backToScenarios": "Zurück zu Szenarien",
		"practice.situation":       "Situation:",
		"practice.prompt":          "Frage",
		"practice.yourResponse":    "Ihre Antwort",
		"practice.submit":          "Antwort senden",
		"practice.busy":            "Feedback wird erstellt...",
		"practice.empty":           "Bitte geben Sie zuerst eine Antwort ein.",

		// Feedback
		"feedback.title":        "Ihr Feedback",
		"feedback.yourResponse": "Ihre Antwort",
		"feedback.score":        "Punktzahl",
		"feedback.whatWorked":   "Was gut funktioniert hat",
		"feedback.improvement":  "Verbesserungsbereich",
		"feedback.suggested":    "Vorgeschlagene Antwort",
		"feedback.explanation":  "Begründung",
		"feedback.tryAgain":     "Nochmal versuchen",
		"feedback.continue":     "Nächste Frage",
		"feedback.nextScenario": "Nächstes Szenario",
		"feedback.viewProgress": "Fortschritt ansehen",

		// Progress
		"progress.title":     "Ihr Fortschritt",
		"progress.completed": "Abgeschlossene Szenarien",
		"progress.average":   "Durchschnittliche Punktzahl",
		"progress.attempts":  "Gesamtversuche",
		"progress.history":   "Übungshistorie",
		"progress.noHistory": "Noch keine Übungshistorie. Beginnen Sie zu üben, um Ihren Fortschritt zu sehen!",
		"progress.back":      "Zurück",

		// Input
		"voice.placeholder": "Tippen Sie Ihre Antwort auf Deutsch...",

		// Badges
		"badge.beginner":     "Anfänger",
		"badge.intermediate": "Fortgeschritten",

		// Score labels
		"score.excellent":        "Ausgezeichnet!",
		"score.veryGood":         "Sehr gut!",
		"score.good":             "Gut!",
		"score.okay":             "Okay",
		"score.needsImprovement": "Verbesserungsbedürftig",

		// Navigation
		"nav.home":      "Start",
		"nav.scenarios": "Szenarien",
		"nav.progress":  "Fortschritt",
		"nav.language":  "English",
		"nav.quit":      "Beenden",
	},
}

// T returns the translation of key in lang. A key missing in lang falls
// back to the primary language, then to the key itself.
func T(lang Language, key string) string {
	if s, ok := translations[lang][key]; ok {
		return s
	}
	if s, ok := translations[Primary][key]; ok {
		return s
	}
	return key
}

// Toggle flips between the primary and secondary language.
func Toggle(lang Language) Language {
	if lang == Secondary {
		return Primary
	}
	return Secondary
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{DE, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case DE:
		return "Deutsch"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}

var matcher = language.NewMatcher([]language.Tag{language.German, language.English})

// Match picks the supported language closest to a list of preferences in
// Accept-Language syntax ("en-US,en;q=0.9,de;q=0.8") or a single tag.
// Unparseable or empty input yields Primary.
func Match(pref string) Language {
	if pref == "" {
		return Primary
	}
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return Primary
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Primary
	}
	return AvailableLanguages()[idx]
}

// Parse accepts "de" or "en" (case-sensitive) and reports whether it was
// recognised.
func Parse(s string) (Language, bool) {
	switch Language(s) {
	case DE, EN:
		return Language(s), true
	}
	return Primary, false
}
