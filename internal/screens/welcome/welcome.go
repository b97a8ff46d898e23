// Package welcome is the splash shown when the interview client starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/router"
	"github.com/abhisek/codegenius/internal/screen"
	"github.com/abhisek/codegenius/internal/ui/components"
	"github.com/abhisek/codegenius/internal/ui/theme"
)

const (
	frameEvery = 100 * time.Millisecond
	wavesAt    = 500 * time.Millisecond
	bannerAt   = 1500 * time.Millisecond
	// The clock stops here; the splash then waits for a key.
	splashLen = 3 * time.Second
)

const micArt = `   ╭─────╮
   │ ▐█▌ │
   │ ▐█▌ │
   │ ▐█▌ │
   ╰──┬──╯
    ──┴──`

var waves = []string{")", "))", ")))"}

type tickMsg time.Time

// WelcomeScreen draws a microphone, then sound waves, then the banner, and
// swaps itself for the track menu on the first key press.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frames  int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen next builds.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

// Title is empty so the header stays quiet during the splash.
func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd {
	return nextFrame()
}

func nextFrame() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed = min(w.elapsed+frameEvery, splashLen)
		w.frames++
		return w, nextFrame()

	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	next := w.next()
	return func() tea.Msg { return router.Swap{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	mic := lipgloss.NewStyle().Foreground(theme.Primary).Render(micArt)
	if w.elapsed >= wavesAt {
		mic = withWave(mic, waves[w.frames%len(waves)])
	}

	parts := []string{mic}
	if w.elapsed >= bannerAt {
		parts = append(parts,
			"",
			components.Banner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Practice interviews out loud."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}

// withWave draws wave beside the microphone head.
func withWave(mic, wave string) string {
	lines := strings.Split(mic, "\n")
	if len(lines) > 2 {
		lines[2] += "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render(wave)
	}
	return strings.Join(lines, "\n")
}
