package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT(t *testing.T) {
	assert.Equal(t, "Übung starten", T(DE, "landing.cta"))
	assert.Equal(t, "Start Practice", T(EN, "landing.cta"))
	assert.Equal(t, "Nochmal versuchen", T(DE, "feedback.tryAgain"))
	assert.Equal(t, "Sehr gut!", T(DE, "score.veryGood"))
}

func TestT_Fallbacks(t *testing.T) {
	assert.Equal(t, "no.such.key", T(EN, "no.such.key"))
	assert.Equal(t, "Übung starten", T(Language("fr"), "landing.cta"), "unknown language falls back to primary")
}

func TestTablesHaveSameKeys(t *testing.T) {
	for key := range translations[DE] {
		_, ok := translations[EN][key]
		assert.True(t, ok, "EN missing %q", key)
	}
	for key := range translations[EN] {
		_, ok := translations[DE][key]
		assert.True(t, ok, "DE missing %q", key)
	}
}

func TestToggle(t *testing.T) {
	assert.Equal(t, EN, Toggle(DE))
	assert.Equal(t, DE, Toggle(EN))
	assert.Equal(t, DE, Toggle(Toggle(DE)))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"", DE},
		{"de", DE},
		{"de-AT", DE},
		{"en", EN},
		{"en-US,en;q=0.9,de;q=0.8", EN},
		{"fr-FR,de;q=0.5", DE},
		{"fr", DE},
		{"%%%", DE},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.in), "Match(%q)", tt.in)
	}
}

func TestParse(t *testing.T) {
	lang, ok := Parse("en")
	require.True(t, ok)
	assert.Equal(t, EN, lang)

	lang, ok = Parse("english")
	assert.False(t, ok)
	assert.Equal(t, Primary, lang)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "Deutsch", LanguageName(DE))
	assert.Equal(t, "English", LanguageName(EN))
	assert.Equal(t, "xx", LanguageName("xx"))
}
