package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/ui/theme"
)

// ProgressBar shows the position within a sequence, e.g. "Question 2 of 4".
type ProgressBar struct {
	Label   string
	Current int // 1-based
	Total   int
	Width   int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Current: current,
		Total:   total,
		Width:   width,
	}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 || p.Current <= 0 {
		return 0
	}
	if p.Current >= p.Total {
		return 1
	}
	return float64(p.Current) / float64(p.Total)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(p.Label) + "  "
	}

	counter := fmt.Sprintf("  %d/%d", p.Current, p.Total)
	barWidth := p.Width - lipgloss.Width(result) - len(counter)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	empty := barWidth - filled

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	result += theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)

	return result
}
