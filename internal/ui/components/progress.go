package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

// ScoreBar draws a score out of a maximum as a horizontal bar.
type ScoreBar struct {
	Label string
	Score float64
	Max   float64
	Style lipgloss.Style
	Width int
}

// NewScoreBar creates a bar for score out of max.
func NewScoreBar(label string, score, max float64, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Score: score,
		Max:   max,
		Style: theme.ProgressFilled,
		Width: width,
	}
}

// Fraction returns score/max clamped to [0,1]. Only the bar is clamped,
// the printed value is the raw score.
func (p ScoreBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	f := p.Score / p.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// View renders the bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	value := fmt.Sprintf("  %g/%g", p.Score, p.Max)

	barWidth := p.Width - lipgloss.Width(result) - len(value)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += p.Style.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += theme.Hint.Render(value)

	return result
}
