package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

var openaiAliases = map[string]string{
	"gpt-mini": "gpt-4o-mini",
	"gpt":      "gpt-4o",
}

// OpenAIProvider completes prompts with the Chat Completions API. It also
// serves OpenAI-compatible gateways such as OpenRouter.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider builds a provider from cfg.
func NewOpenAIProvider(cfg Endpoint) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errMissingKey(ProviderOpenAI)
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		model:  modelAlias(cfg.Model, openaiAliases),
		name:   ProviderOpenAI,
	}, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            openaiMessages(pr),
		MaxCompletionTokens: pr.MaxTokens,
		Temperature:         float32(pr.Temperature),
	}
	if pr.Output != nil {
		schema, err := json.Marshal(pr.Output.JSON)
		if err != nil {
			return nil, fmt.Errorf("marshal schema %q: %w", pr.Output.Name, err)
		}
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        pr.Output.Name,
				Description: pr.Output.Description,
				Schema:      json.RawMessage(schema),
				Strict:      true,
			},
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, p.classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, malformed(p.name, nil, errors.New("reply has no choices"))
	}

	choice := resp.Choices[0]
	finish := FinishEnd
	if choice.FinishReason == openai.FinishReasonLength {
		finish = FinishLength
	}
	if finish == FinishLength && pr.Output != nil {
		return nil, &Error{Kind: KindTruncated, Provider: p.name, Body: []byte(choice.Message.Content)}
	}

	body, err := decodeOutput(p.name, pr.Output, choice.Message.Content)
	if err != nil {
		return nil, err
	}

	return &Completion{
		Body:   body,
		Usage:  Usage{Input: resp.Usage.PromptTokens, Output: resp.Usage.CompletionTokens},
		Model:  resp.Model,
		Finish: finish,
	}, nil
}

func (p *OpenAIProvider) Model() string {
	return p.model
}

func openaiMessages(pr Prompt) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(pr.Turns)+1)
	if pr.System != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: pr.System})
	}
	for _, t := range pr.Turns {
		role := openai.ChatMessageRoleUser
		if t.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	return msgs
}

func (p *OpenAIProvider) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fromStatus(p.name, apiErr.HTTPStatusCode, nil, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fromStatus(p.name, reqErr.HTTPStatusCode, nil, err)
	}
	return fromStatus(p.name, 0, nil, err)
}

// headerTransport adds fixed headers to every request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
