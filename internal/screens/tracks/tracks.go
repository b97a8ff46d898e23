package tracks

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	iv "github.com/abhisek/codegenius/internal/interview"
	"github.com/abhisek/codegenius/internal/router"
	"github.com/abhisek/codegenius/internal/screen"
	"github.com/abhisek/codegenius/internal/ui/components"
	"github.com/abhisek/codegenius/internal/ui/layout"
	"github.com/abhisek/codegenius/internal/ui/theme"
)

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// InterviewFactory builds the interview screen for a track.
type InterviewFactory func(track iv.Track) screen.Screen

// TracksScreen is the main menu: one entry per interview track plus
// About and Exit.
type TracksScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*TracksScreen)(nil)
var _ screen.KeyHintProvider = (*TracksScreen)(nil)

// New creates a TracksScreen. about may be nil to hide the About entry.
func New(start InterviewFactory, about func() screen.Screen) *TracksScreen {
	var items []components.MenuItem
	for _, t := range iv.Tracks() {
		items = append(items, components.MenuItem{
			Label: t.Title,
			Hint:  t.Description,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.Open{Screen: start(t)}
				}
			},
		})
	}
	if about != nil {
		items = append(items, components.MenuItem{
			Label: "About",
			Hint:  "What CodeGenius does and how feedback works.",
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.Open{Screen: about()}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Exit",
		Hint:   "Leave CodeGenius.",
		Action: func() tea.Cmd { return tea.Quit },
	})

	return &TracksScreen{menu: components.NewMenu(items)}
}

func (s *TracksScreen) Init() tea.Cmd {
	return nil
}

func (s *TracksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TracksScreen) Title() string {
	return "Choose a Track"
}

func (s *TracksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "1-6", Description: "Quick pick"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TracksScreen) View(width, height int) string {
	compact := layout.Size{Width: width, Height: height + layout.BarsHeight}.Compact()

	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	sections = append(sections, center.Render(components.Banner(cw)))
	sections = append(sections, center.Render(theme.Subtitle.Render("Pick a track and answer out loud.")))

	if compact {
		sections = append(sections, center.Render(s.menu.View()))
	} else {
		sections = append(sections, center.Render(s.renderButtons()))
	}

	if item, ok := s.menu.Current(); ok && item.Hint != "" {
		hint := lipgloss.NewStyle().Foreground(theme.Badge).Render(item.Hint)
		sections = append(sections, components.Card("", hint, cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (s *TracksScreen) renderButtons() string {
	buttons := make([]string, 0, len(s.menu.Items))
	for i, item := range s.menu.Items {
		buttons = append(buttons, components.Button(item.Label, i == s.menu.Selected, buttonWidth))
	}
	return strings.Join(buttons, "\n")
}
