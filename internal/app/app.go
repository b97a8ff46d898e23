package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	tea "charm.land/bubbletea/v2"

	iv "github.com/abhisek/codegenius/internal/interview"
	"github.com/abhisek/codegenius/internal/router"
	"github.com/abhisek/codegenius/internal/screen"
	"github.com/abhisek/codegenius/internal/screens/about"
	interviewscreen "github.com/abhisek/codegenius/internal/screens/interview"
	"github.com/abhisek/codegenius/internal/screens/tracks"
	"github.com/abhisek/codegenius/internal/screens/welcome"
	"github.com/abhisek/codegenius/internal/speech"
	"github.com/abhisek/codegenius/internal/ui/layout"
)

// Options wires the interview client to its backends.
type Options struct {
	Questions    interviewscreen.QuestionSource
	Feedback     interviewscreen.FeedbackSource
	Speaker      speech.Speaker
	APIBase      string
	FetchTimeout time.Duration
	Logger       *slog.Logger
	SkipSplash   bool
}

// AppModel is the root Bubble Tea model. It owns the screen stack and
// draws the chrome around the top screen.
type AppModel struct {
	router *router.Router
	status string
	size   layout.Size
}

// newAppModel creates a new AppModel starting at the splash screen, or
// directly at the track menu when SkipSplash is set.
func newAppModel(opts Options) AppModel {
	start := func(t iv.Track) screen.Screen {
		return interviewscreen.New(t, interviewscreen.Deps{
			Questions:    opts.Questions,
			Feedback:     opts.Feedback,
			Speaker:      opts.Speaker,
			APIBase:      opts.APIBase,
			FetchTimeout: opts.FetchTimeout,
			Logger:       opts.Logger,
		})
	}
	menu := func() screen.Screen {
		return tracks.New(start, func() screen.Screen { return about.New() })
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = menu()
	} else {
		initial = welcome.New(menu)
	}

	return AppModel{
		router: router.New(initial),
		status: backendStatus(opts.APIBase),
	}
}

// backendStatus renders the API base as "api host:port" for the header.
func backendStatus(apiBase string) string {
	if apiBase == "" {
		return ""
	}
	if u, err := url.Parse(apiBase); err == nil && u.Host != "" {
		return "api " + u.Host + "  "
	}
	return "api " + apiBase + "  "
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Top().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = layout.Size{Width: msg.Width, Height: msg.Height}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Esc on the root screen does nothing.
			if m.router.Depth() == 1 {
				return m, nil
			}
			return m, func() tea.Msg { return router.Back{} }
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.size.Width == 0 || m.size.Height == 0 {
		return v
	}

	top := m.router.Top()
	chrome := layout.Chrome{Status: m.status, Hints: m.footerHints(top)}
	if top != nil {
		chrome.Title = top.Title()
	}
	v.SetContent(chrome.Render(m.size, m.router.View))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run shows the interview client until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(opts)
	defer m.router.Close()

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("interview client: %w", err)
	}
	return nil
}
