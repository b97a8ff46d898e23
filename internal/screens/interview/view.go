package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	iv "github.com/abhisek/codegenius/internal/interview"
	"github.com/abhisek/codegenius/internal/ui/components"
	"github.com/abhisek/codegenius/internal/ui/theme"
)

const noAnswerText = "No answer recorded"

func (s *InterviewScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	textWidth := cw - 6

	var sections []string
	sections = append(sections, s.renderProgress(cw))

	if s.loadErr != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Error).
			Width(cw).
			Render("⚠ "+s.loadErr))
	}

	sections = append(sections, s.renderQuestion(cw, textWidth))

	if s.showFeedback {
		sections = append(sections, s.renderFeedback(cw, textWidth))
	} else {
		sections = append(sections, components.Card("Your Answer", s.input.View(), cw))
	}

	if s.status != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Width(cw).
			Render(s.status))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+content)
}

func (s *InterviewScreen) renderProgress(cw int) string {
	if s.loading {
		return lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Fetching %s questions...", s.track.Title))
	}
	n := s.stepper.Len()
	if n == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("No questions")
	}
	label := fmt.Sprintf("Question %d", s.stepper.Index()+1)
	return components.NewProgressBar(label, s.stepper.Index()+1, n, cw).View()
}

func (s *InterviewScreen) renderQuestion(cw, textWidth int) string {
	text := iv.LoadingText
	if _, ok := s.stepper.Current(); ok {
		text = fmt.Sprintf("%d. %s", s.stepper.Index()+1, s.stepper.CurrentText())
	}
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(textWidth).
		Render(text)
	return components.Card(fmt.Sprintf("Question %d", s.stepper.Index()+1), body, cw)
}

func (s *InterviewScreen) renderFeedback(cw, textWidth int) string {
	answer := s.stepper.Transcript()
	if strings.TrimSpace(answer) == "" {
		answer = noAnswerText
	}
	answerCard := components.Card("Your Answer", lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(textWidth).
		Render(answer), cw)

	var body string
	if s.submitting {
		body = lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("Evaluating your answer...")
	} else {
		body = lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(textWidth).
			Render(s.stepper.Feedback())
	}

	return answerCard + "\n" + components.Card("Feedback", body, cw)
}
