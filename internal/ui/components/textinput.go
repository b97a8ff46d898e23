package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for free-form answers. A transcript
// that came from speech-to-text can be pasted straight in.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input. A non-positive limit means no
// character limit.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "> "
	ti.Focus()

	ti.CharLimit = 0
	if limit > 0 {
		ti.CharLimit = limit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return lipgloss.NewStyle().Foreground(theme.Text).Render(t.Model.View())
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.Reset()
}
