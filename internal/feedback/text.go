package feedback

import "strings"

// TruncateWords keeps the first n whitespace-separated words of s and marks
// the cut with " ...". Text within the limit is returned unchanged.
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " ..."
}
