package catalog

// Prompt is one line the learner has to answer. Text is always German;
// Translation is the optional English rendering shown in secondary mode.
type Prompt struct {
	Text        string `json:"text"`
	Translation string `json:"translation,omitempty"`
}

// Scenario is an immutable practice context. Prompt order is turn order.
type Scenario struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	TitleSecondary      string   `json:"title_secondary,omitempty"`
	Context             string   `json:"context"`
	ContextSecondary    string   `json:"context_secondary,omitempty"`
	Difficulty          string   `json:"difficulty"`
	DifficultySecondary string   `json:"difficulty_secondary,omitempty"`
	Formality           string   `json:"formality"`
	Icon                string   `json:"icon,omitempty"`
	Prompts             []Prompt `json:"prompts"`
}

// LastTurn returns the index of the final prompt.
func (s Scenario) LastTurn() int {
	return len(s.Prompts) - 1
}

// Localized picks the secondary variant when secondary is set and the
// variant is non-empty.
func Localized(primary, secondaryText string, secondary bool) string {
	if secondary && secondaryText != "" {
		return secondaryText
	}
	return primary
}

// DisplayTitle returns the title for the given language mode.
func (s Scenario) DisplayTitle(secondary bool) string {
	return Localized(s.Title, s.TitleSecondary, secondary)
}

// DisplayContext returns the situation text for the given language mode.
func (s Scenario) DisplayContext(secondary bool) string {
	return Localized(s.Context, s.ContextSecondary, secondary)
}

// DisplayDifficulty returns the difficulty badge for the given language mode.
func (s Scenario) DisplayDifficulty(secondary bool) string {
	return Localized(s.Difficulty, s.DifficultySecondary, secondary)
}
