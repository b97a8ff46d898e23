package llm

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterAttribution identifies the app on OpenRouter's dashboards.
var openRouterAttribution = map[string]string{
	"HTTP-Referer": "https://github.com/abhisek/codegenius",
	"X-Title":      "CodeGenius",
}

// NewOpenRouterProvider targets OpenRouter's OpenAI-compatible API. Model
// IDs are vendor-qualified (e.g. "google/gemini-2.0-flash-exp") and pass
// through unchanged.
func NewOpenRouterProvider(cfg Endpoint) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errMissingKey(ProviderOpenRouter)
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	oc.HTTPClient = &http.Client{
		Transport: headerTransport{base: http.DefaultTransport, headers: openRouterAttribution},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		name:   ProviderOpenRouter,
	}, nil
}
