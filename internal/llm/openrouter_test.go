package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(Endpoint{Model: "google/gemini-2.0-flash-exp"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestOpenRouterProvider_SendsAttributionAndKeepsModel(t *testing.T) {
	var title, referer, model string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		referer = r.Header.Get("HTTP-Referer")
		var req struct {
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		model = req.Model
		openaiReply("Fine answer.", "stop")(w, r)
	}))
	defer server.Close()

	p, err := NewOpenRouterProvider(Endpoint{
		APIKey:  "sk-or-test",
		Model:   "anthropic/claude-3-haiku",
		BaseURL: server.URL + "/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Model() != "anthropic/claude-3-haiku" {
		t.Fatalf("model = %q, want pass-through", p.Model())
	}

	c, err := p.Complete(context.Background(), Prompt{Turns: User("x"), MaxTokens: 16})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(c.Body) != "Fine answer." {
		t.Fatalf("body = %q", c.Body)
	}
	if title != "CodeGenius" || referer == "" {
		t.Fatalf("missing attribution headers: title=%q referer=%q", title, referer)
	}
	if model != "anthropic/claude-3-haiku" {
		t.Fatalf("request model = %q", model)
	}
}

func TestOpenRouterErrorsNameProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "slow down"}})
	}))
	defer server.Close()

	p, err := NewOpenRouterProvider(Endpoint{APIKey: "k", Model: "m", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = p.Complete(context.Background(), Prompt{Turns: User("x"), MaxTokens: 4})
	e, ok := err.(*Error)
	if !ok || e.Provider != ProviderOpenRouter || e.Kind != KindRateLimited {
		t.Fatalf("unexpected error: %#v", err)
	}
}
