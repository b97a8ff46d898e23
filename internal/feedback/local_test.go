package feedback

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func localText(expertise, communication int) string {
	return fmt.Sprintf("Local feedback (short)\nSubject Matter Expertise: %d/10\nCommunication: %d/10\nTip: Expand explanations and include examples.", expertise, communication)
}

func TestLocalFeedback(t *testing.T) {
	twentyWords := strings.TrimSpace(strings.Repeat("answer ", 20))

	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"blank", "  ", "No input provided."},
		{"very short", "use an index", localText(2, 2)},
		{"short with keywords", "MongoDB stores documents and Express routes requests", localText(7, 5)},
		{"long baseline", twentyWords, localText(5, 5)},
		{"long all keywords", twentyWords + " mongo express react node", localText(10, 5)},
		{"short all keywords", "mongo express react node", localText(7, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalFeedback(tt.answer))
		})
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"one two three", 5, "one two three"},
		{"one two three", 3, "one two three"},
		{"one two three four", 2, "one two ..."},
		{"  spaced   out words  ", 2, "spaced out ..."},
		{"", 3, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateWords(tt.in, tt.n), "TruncateWords(%q, %d)", tt.in, tt.n)
	}
}
