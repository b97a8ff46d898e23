// Package screen defines what the interview client's router stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenius/internal/ui/layout"
)

// Screen is one page of the client. The router owns the chrome, so View
// draws only the body area it is given.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string
	// Title is shown centred in the header bar.
	Title() string
}

// KeyHintProvider replaces the footer's default hints while the screen is
// on top.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer releases a screen's background work (speech, pending requests)
// when the router drops it.
type Closer interface {
	Close()
}
