package feedback

import "time"

// MaxWords caps rendered feedback.
const MaxWords = 150

// Config holds feedback generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Timeout bounds one provider call including retries.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for feedback generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.3,
		Timeout:     45 * time.Second,
	}
}
