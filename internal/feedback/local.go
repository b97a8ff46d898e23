package feedback

import (
	"fmt"
	"strings"
)

// NoteLocalFallback marks answers produced without an LLM provider.
const NoteLocalFallback = "local_fallback"

// keywordBonus rewards stack vocabulary in the answer.
var keywordBonus = []struct {
	word  string
	bonus int
}{
	{"mongo", 2},
	{"express", 1},
	{"react", 1},
	{"node", 1},
}

// LocalFeedback scores an answer with a keyword and length heuristic.
func LocalFeedback(answer string) string {
	if strings.TrimSpace(answer) == "" {
		return "No input provided."
	}

	lower := strings.ToLower(answer)
	words := len(strings.Fields(lower))

	expertise, communication := 5, 5
	for _, k := range keywordBonus {
		if strings.Contains(lower, k.word) {
			expertise += k.bonus
		}
	}

	switch {
	case words < 5:
		expertise = max(1, expertise-3)
		communication = max(1, communication-3)
	case words < 20:
		expertise = max(1, expertise-1)
	}

	return fmt.Sprintf(
		"Local feedback (short)\nSubject Matter Expertise: %d/10\nCommunication: %d/10\nTip: Expand explanations and include examples.",
		clampScore(expertise), clampScore(communication),
	)
}
