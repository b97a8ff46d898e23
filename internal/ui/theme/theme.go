// Package theme holds the interview client's palette and shared styles.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary   = lipgloss.Color("#8B5CF6")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F97316")
	Error     = lipgloss.Color("#F43F5E")

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")

	BgDark = lipgloss.Color("#0F172A")
	BgCard = lipgloss.Color("#1E293B")
	Border = lipgloss.Color("#334155")

	// Highlight marks the selected menu button.
	Highlight = lipgloss.Color("#FACC15")
	// Badge colors track labels.
	Badge = lipgloss.Color("#22D3EE")
)

var (
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)

	// Section titles a card.
	Section = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	ProgressFilled = lipgloss.NewStyle().Background(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)
