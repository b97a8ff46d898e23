package question

import (
	"context"
	"strings"
	"time"
)

const (
	// DefaultQuestionText replaces an absent or blank question text on add.
	DefaultQuestionText = "(no question provided)"

	// DefaultTechStack replaces an absent or blank track on add. Catalog
	// entries tagged with it are returned as filler for every filtered read.
	DefaultTechStack = "general"
)

// Question is a single interview question. It is immutable once created.
type Question struct {
	// ID is assigned by durable storage. Fallback entries have none.
	ID        string    `json:"id,omitempty"`
	Question  string    `json:"question"`
	TechStack string    `json:"techStack"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// TrackKey returns the normalized track key of the question.
func (q Question) TrackKey() string {
	return NormalizeTrack(q.TechStack)
}

// NormalizeTrack turns client input into a track filter key. An empty key
// means "no filter".
func NormalizeTrack(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// WithDefaults fills absent fields with the add-time defaults.
func (q Question) WithDefaults() Question {
	if strings.TrimSpace(q.Question) == "" {
		q.Question = DefaultQuestionText
	}
	if strings.TrimSpace(q.TechStack) == "" {
		q.TechStack = DefaultTechStack
	}
	return q
}

// Repository is durable question storage.
type Repository interface {
	// Insert stores q and returns the stored row, with ID and CreatedAt set.
	Insert(ctx context.Context, q Question) (Question, error)

	// Find returns the questions whose normalized track equals trackKey, in
	// insertion order. An empty trackKey matches every question.
	Find(ctx context.Context, trackKey string) ([]Question, error)
}
