package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var anthropicAliases = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

// AnthropicProvider completes prompts with the Messages API.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider builds a provider from cfg. The SDK's own retries
// are disabled; WithRetry owns the policy.
func NewAnthropicProvider(cfg Endpoint) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errMissingKey(ProviderAnthropic)
	}
	return &AnthropicProvider{
		client: newAnthropicClient(cfg.APIKey, ""),
		model:  modelAlias(cfg.Model, anthropicAliases),
	}, nil
}

func newAnthropicClient(apiKey, baseURL string) anthropic.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return anthropic.NewClient(opts...)
}

func (p *AnthropicProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(pr.MaxTokens),
		Messages:  anthropicTurns(pr.Turns),
	}
	if pr.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: pr.System}}
	}
	if pr.Temperature > 0 {
		params.Temperature = anthropic.Float(pr.Temperature)
	}
	if pr.Output != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{Schema: pr.Output.JSON},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, anthropicError(err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, malformed(ProviderAnthropic, nil, errors.New("reply has no text block"))
	}

	finish := FinishEnd
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		finish = FinishLength
	}
	if finish == FinishLength && pr.Output != nil {
		return nil, &Error{Kind: KindTruncated, Provider: ProviderAnthropic, Body: []byte(text.String())}
	}

	body, err := decodeOutput(ProviderAnthropic, pr.Output, text.String())
	if err != nil {
		return nil, err
	}

	return &Completion{
		Body:   body,
		Usage:  Usage{Input: int(msg.Usage.InputTokens), Output: int(msg.Usage.OutputTokens)},
		Model:  string(msg.Model),
		Finish: finish,
	}, nil
}

func (p *AnthropicProvider) Model() string {
	return p.model
}

func anthropicTurns(turns []Turn) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(t.Text)
		if t.Role == RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

func anthropicError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return fromStatus(ProviderAnthropic, 0, nil, err)
	}
	var header http.Header
	if apiErr.Response != nil {
		header = apiErr.Response.Header
	}
	return fromStatus(ProviderAnthropic, apiErr.StatusCode, header, err)
}

// modelAlias maps a short alias to a full model ID. Unknown names pass
// through, so full IDs work too.
func modelAlias(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}

func errMissingKey(provider string) error {
	return fmt.Errorf("%s API key is required", provider)
}
