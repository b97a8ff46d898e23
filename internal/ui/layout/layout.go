// Package layout draws the chrome around the active screen: a header bar
// naming the product, the screen and the backend, and a footer of key
// hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/ui/theme"
)

// Smallest terminal the client draws in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// BarsHeight is the rows taken by the header and footer together.
const BarsHeight = 6

const (
	compactWidth  = 100
	compactHeight = 30
)

// Size is a terminal size in cells.
type Size struct {
	Width  int
	Height int
}

// Fits reports whether s is at least MinWidth by MinHeight.
func (s Size) Fits() bool {
	return s.Width >= MinWidth && s.Height >= MinHeight
}

// Compact reports whether s leaves no room for decoration such as the
// banner.
func (s Size) Compact() bool {
	return s.Width < compactWidth || s.Height < compactHeight
}

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Chrome is what gets drawn around a screen.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// Render draws c around the output of body, which receives the space
// left between the bars. A terminal that does not fit gets a resize
// notice instead.
func (c Chrome) Render(size Size, body func(width, height int) string) string {
	if !size.Fits() {
		return resizeNotice(size)
	}

	header := c.header(size.Width)
	footer := c.footer(size.Width)
	h := max(0, size.Height-lipgloss.Height(header)-lipgloss.Height(footer))

	content := lipgloss.NewStyle().
		Width(size.Width).
		Height(h).
		MaxHeight(h).
		Render(body(size.Width, h))

	return header + "\n" + content + "\n" + footer
}

func (c Chrome) header(width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  CodeGenius")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	status := lipgloss.NewStyle().Foreground(theme.TextDim).Render(c.Status)

	// The title sits in the middle of the bar, inside border and padding.
	inner := max(0, width-4)
	bw, tw, sw := lipgloss.Width(brand), lipgloss.Width(title), lipgloss.Width(status)
	before := max(1, (inner-tw)/2-bw)
	after := max(1, inner-bw-before-tw-sw)

	line := brand + strings.Repeat(" ", before) + title + strings.Repeat(" ", after) + status
	return barStyle.Width(width).Render(line)
}

func (c Chrome) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range c.Hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return barStyle.Width(width).Render(b.String())
}

func resizeNotice(size Size) string {
	return lipgloss.NewStyle().
		Width(size.Width).
		Height(size.Height).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf(
			"The interview needs a bigger window.\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, size.Width, size.Height,
		))
}
