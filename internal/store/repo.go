package store

import (
	"context"
	"time"
)

// QueryOpts filters an event query. Zero fields do not filter; a zero
// Limit returns everything. After and Before bound the sequence
// exclusively, From and To bound the timestamp inclusively.
type QueryOpts struct {
	Limit  int
	After  int64
	Before int64
	From   time.Time
	To     time.Time
}

// LLMRequestEventData is one call to an LLM provider as recorded by the
// feedback bot. The bodies are the prompt transcript and the raw reply.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a recorded call with its row ID and sequence.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage totals the calls made for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage totals the calls made to one model, for cost estimates.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo is the log of LLM calls behind the feedback admin commands.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents lists matching events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns nil, nil for an unknown id.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
