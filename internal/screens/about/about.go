package about

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/screen"
	"github.com/abhisek/codegenius/internal/ui/components"
	"github.com/abhisek/codegenius/internal/ui/theme"
)

type feature struct {
	name string
	desc string
}

var features = []feature{
	{"Spoken answers", "Answer out loud; paste or type the transcript and submit it for grading."},
	{"Concise feedback", "At most 150 words, with 0-10 ratings for expertise and communication."},
	{"Focused tracks", "MERN, Node.js, C++ and Data Structures, with built-in questions when the backend is down."},
	{"Read aloud", "Feedback can be spoken back through a local text-to-speech engine."},
}

// AboutScreen describes the application.
type AboutScreen struct{}

var _ screen.Screen = (*AboutScreen)(nil)

// New creates a new AboutScreen.
func New() *AboutScreen {
	return &AboutScreen{}
}

func (a *AboutScreen) Init() tea.Cmd {
	return nil
}

func (a *AboutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return a, nil
}

func (a *AboutScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	intro := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(cw - 4).
		Render("CodeGenius runs mock technical interviews. Pick a track, answer each question, " +
			"and get short, actionable feedback on what you said and how you said it.")

	var b strings.Builder
	for _, f := range features {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Badge).Bold(true).Render(f.name))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 4).Render(f.desc))
		b.WriteString("\n\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("About CodeGenius"),
		"",
		components.Card("", intro, cw),
		"",
		components.Card("Features", strings.TrimRight(b.String(), "\n"), cw),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (a *AboutScreen) Title() string {
	return "About"
}
