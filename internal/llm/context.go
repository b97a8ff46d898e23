package llm

import "context"

// Purpose labels recorded with every LLM call.
const (
	PurposeFeedback = "feedback"
	PurposeUnknown  = "unknown"
)

type purposeKey struct{}

// WithPurpose tags ctx so the event log can group calls by what they were for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnknown.
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return PurposeUnknown
}
