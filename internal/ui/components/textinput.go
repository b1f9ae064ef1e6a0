package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// DefaultCharLimit caps a typed answer.
const DefaultCharLimit = 500

// TextInput wraps bubbles/textinput for free-form answers.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	if charLimit <= 0 {
		charLimit = DefaultCharLimit
	}
	ti.CharLimit = charLimit
	ti.Focus()

	return TextInput{Model: ti}
}

// Init returns the focus command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the underlying input.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the raw input.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Blank reports whether the input holds only whitespace.
func (t TextInput) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}
