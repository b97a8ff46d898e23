// Package llm talks to hosted language models on behalf of the feedback
// service. Each backend implements Provider; retries and request logging
// are layered on as decorators by NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider completes a prompt with one model.
type Provider interface {
	// Complete sends p and returns the model's reply. When p.Output is set
	// the reply Body is JSON that has been validated against it.
	Complete(ctx context.Context, p Prompt) (*Completion, error)

	// Model returns the configured model ID.
	Model() string
}

// Prompt is a single-shot request to a model.
type Prompt struct {
	System string
	Turns  []Turn

	// Output requests structured JSON. Nil asks for plain text.
	Output *OutputSchema

	MaxTokens   int
	Temperature float64
}

// Turn is one message of the conversation.
type Turn struct {
	Role Role
	Text string
}

// Role identifies who wrote a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// User returns a single user turn.
func User(text string) []Turn {
	return []Turn{{Role: RoleUser, Text: text}}
}

// OutputSchema names a JSON Schema the reply must satisfy.
type OutputSchema struct {
	// Name is a kebab-case identifier, e.g. "answer-feedback". It keys the
	// compiled schema cache and is sent as the schema or tool name.
	Name        string
	Description string
	JSON        map[string]any
}

// Finish says why the model stopped.
type Finish string

const (
	FinishEnd    Finish = "end"
	FinishLength Finish = "max_tokens"
)

// Completion is a model reply.
type Completion struct {
	// Body is validated JSON when an OutputSchema was requested, otherwise
	// the raw reply text.
	Body   json.RawMessage
	Usage  Usage
	Model  string
	Finish Finish
}

// Usage counts tokens for one call.
type Usage struct {
	Input  int
	Output int
}

// Total returns Input plus Output.
func (u Usage) Total() int {
	return u.Input + u.Output
}
