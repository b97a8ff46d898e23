package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	oc := openai.DefaultConfig("test-key")
	oc.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(oc),
		model:  "gpt-4o-mini",
		name:   ProviderOpenAI,
	}
}

func openaiReply(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini-2024-07-18",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAIProvider_StructuredReply(t *testing.T) {
	var got struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		ResponseFormat *struct {
			Type       string `json:"type"`
			JSONSchema *struct {
				Name string `json:"name"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		openaiReply(`{"summary":"Clear answer.","score":8}`, "stop")(w, r)
	})

	c, err := p.Complete(context.Background(), Prompt{
		System:    "You are a technical interviewer.",
		Turns:     User("Grade this answer."),
		Output:    scoreSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Usage.Input != 40 || c.Usage.Output != 25 {
		t.Fatalf("unexpected usage: %+v", c.Usage)
	}
	if c.Model != "gpt-4o-mini-2024-07-18" || c.Finish != FinishEnd {
		t.Fatalf("unexpected completion: model=%q finish=%q", c.Model, c.Finish)
	}

	if len(got.Messages) != 2 || got.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Fatalf("expected system then user message, got %+v", got.Messages)
	}
	if got.ResponseFormat == nil || got.ResponseFormat.JSONSchema == nil || got.ResponseFormat.JSONSchema.Name != "test-score" {
		t.Fatalf("expected json_schema response format, got %+v", got.ResponseFormat)
	}
}

func TestOpenAIProvider_TruncatedStructuredReply(t *testing.T) {
	p := newTestOpenAIProvider(t, openaiReply(`{"summary":"Cle`, "length"))

	_, err := p.Complete(context.Background(), Prompt{Turns: User("x"), Output: scoreSchema(), MaxTokens: 4})
	if !IsKind(err, KindTruncated) {
		t.Fatalf("expected truncated reply, got %v", err)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"id": "x", "model": "gpt-4o-mini", "choices": []any{}})
	})

	_, err := p.Complete(context.Background(), Prompt{Turns: User("x"), MaxTokens: 4})
	if !IsKind(err, KindMalformed) {
		t.Fatalf("expected malformed reply, got %v", err)
	}
}

func TestOpenAIProvider_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   Kind
	}{
		{"rate limit", http.StatusTooManyRequests, KindRateLimited},
		{"server error", http.StatusInternalServerError, KindUnavailable},
		{"bad request", http.StatusBadRequest, KindRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": "failed"},
				})
			})

			_, err := p.Complete(context.Background(), Prompt{Turns: User("x"), MaxTokens: 4})
			if !IsKind(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(Endpoint{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for missing key")
	}

	p, err := NewOpenAIProvider(Endpoint{APIKey: "sk-test", Model: "gpt-mini", BaseURL: "https://llm.example/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != "gpt-4o-mini" {
		t.Fatalf("expected alias to resolve, got %q", p.Model())
	}
}
