package feedback

import (
	"fmt"
	"strings"
)

// UnknownQuestion stands in when the caller does not name the question.
const UnknownQuestion = "(unknown question)"

const feedbackSystemPrompt = `You are an interviewer bot for full stack web developer candidates. Evaluate answers factually and briefly.`

func buildFeedbackUserMessage(question, answer string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Candidate's Answer: %s\n", answer)

	b.WriteString(`
Instructions:
Evaluate the candidate's answer concisely. The whole response must not exceed 150 words.
1. Summary: 2-3 sentences.
2. Subject Matter Expertise: score 0-10.
3. Communication Skills: score 0-10.
4. Key Improvement Tip: one short actionable suggestion.
Do not restate the question. Do not mention that you are an AI.`)

	return b.String()
}

type feedbackOutput struct {
	Summary       string `json:"summary"`
	Expertise     int    `json:"expertise"`
	Communication int    `json:"communication"`
	Tip           string `json:"tip"`
}

func (o feedbackOutput) render() string {
	text := fmt.Sprintf("%s\nSubject Matter Expertise: %d/10\nCommunication Skills: %d/10\nKey Improvement Tip: %s",
		strings.TrimSpace(o.Summary),
		clampScore(o.Expertise),
		clampScore(o.Communication),
		strings.TrimSpace(o.Tip),
	)
	return TruncateWords(text, MaxWords)
}

func clampScore(n int) int {
	return min(10, max(0, n))
}
