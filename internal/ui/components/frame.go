package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/ui/theme"
)

// Widths of stacked cards.
const (
	maxContentWidth = 72
	minContentWidth = 20
)

// ContentWidth returns the width shared by every card on a screen of the
// given width, so stacked cards line up.
func ContentWidth(screenWidth int) int {
	return min(max(screenWidth-6, minContentWidth), maxContentWidth)
}

// Frame centers content inside a double border filling width by height.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width-2).
		Height(height-2).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// Card boxes content under an optional title, such as "Question 2" or
// "Feedback".
func Card(title, content string, width int) string {
	if title != "" {
		content = theme.Section.Render(title) + "\n\n" + content
	}
	return cardStyle.Width(width - 2).Render(content)
}

// Button renders a fixed-width menu button. The selected button is
// highlighted and marked with an arrow.
func Button(label string, selected bool, width int) string {
	st := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !selected {
		return st.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return st.Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		BorderForeground(theme.Highlight).
		Render("▸ " + label)
}
