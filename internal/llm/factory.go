package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/codegenius/internal/store"
)

// NewProvider builds the provider cfg selects, with every attempt logged
// to events and failures retried per cfg.Retry. It returns (nil, nil) when
// cfg selects no provider.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, nil
	}

	base, err := newBase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}
	return WithRetry(WithLogging(base, cfg.Provider, events, logger), cfg.Retry), nil
}

func newBase(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		return NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		return NewOpenRouterProvider(cfg.OpenRouter)
	}
	return &ScriptedProvider{Fallback: &Reply{Body: json.RawMessage(cfg.MockReply)}}, nil
}
