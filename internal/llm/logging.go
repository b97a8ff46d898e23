package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/codegenius/internal/store"
)

type loggedProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	logger   *slog.Logger
}

// WithLogging records each call as an LLM request event and logs one line
// per call. events and logger may be nil. A failed event write is logged
// and never fails the call.
func WithLogging(p Provider, providerName string, events store.EventRepo, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &loggedProvider{inner: p, provider: providerName, events: events, logger: logger}
}

func (l *loggedProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := l.inner.Complete(ctx, p)

	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.Model(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(p),
	}
	if c != nil {
		if c.Model != "" {
			ev.Model = c.Model
		}
		ev.InputTokens = c.Usage.Input
		ev.OutputTokens = c.Usage.Output
		ev.ResponseBody = string(c.Body)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	log := l.logger.With(
		slog.String("provider", ev.Provider),
		slog.String("model", ev.Model),
		slog.String("purpose", ev.Purpose),
		slog.Int64("latency_ms", ev.LatencyMs),
	)
	if err != nil {
		log.WarnContext(ctx, "llm call failed", slog.Any("err", err))
	} else {
		log.InfoContext(ctx, "llm call",
			slog.Int("input_tokens", ev.InputTokens),
			slog.Int("output_tokens", ev.OutputTokens),
		)
	}

	if l.events != nil {
		if werr := l.events.AppendLLMRequest(ctx, ev); werr != nil {
			l.logger.WarnContext(ctx, "record llm event", slog.Any("err", werr))
		}
	}
	return c, err
}

func (l *loggedProvider) Model() string {
	return l.inner.Model()
}

// transcript renders a prompt for the request log.
func transcript(p Prompt) string {
	var b strings.Builder
	if p.System != "" {
		fmt.Fprintf(&b, "system: %s\n\n", p.System)
	}
	for _, t := range p.Turns {
		fmt.Fprintf(&b, "%s: %s\n\n", t.Role, t.Text)
	}
	if p.Output != nil {
		if def, err := json.Marshal(p.Output.JSON); err == nil {
			fmt.Fprintf(&b, "schema %s: %s\n", p.Output.Name, def)
		}
	}
	return b.String()
}
