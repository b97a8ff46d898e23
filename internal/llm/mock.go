package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// Reply is one scripted ScriptedProvider answer.
type Reply struct {
	Body  json.RawMessage
	Usage Usage
	Err   error
}

// ScriptedProvider replays scripted replies in order and records every
// prompt. Once the script runs out it repeats Fallback, or fails when
// Fallback is nil.
type ScriptedProvider struct {
	mu       sync.Mutex
	script   []Reply
	prompts  []Prompt
	Fallback *Reply
}

// NewScriptedProvider returns a provider that answers with replies.
func NewScriptedProvider(replies ...Reply) *ScriptedProvider {
	return &ScriptedProvider{script: replies}
}

func (s *ScriptedProvider) Complete(_ context.Context, p Prompt) (*Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts = append(s.prompts, p)

	var r Reply
	switch {
	case len(s.script) > 0:
		r, s.script = s.script[0], s.script[1:]
	case s.Fallback != nil:
		r = *s.Fallback
	default:
		return nil, &Error{Kind: KindUnavailable, Provider: ProviderMock, Err: errors.New("script exhausted")}
	}

	if r.Err != nil {
		return nil, r.Err
	}
	return &Completion{Body: r.Body, Usage: r.Usage, Model: ProviderMock, Finish: FinishEnd}, nil
}

func (s *ScriptedProvider) Model() string {
	return ProviderMock
}

// Prompts returns the prompts received so far.
func (s *ScriptedProvider) Prompts() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.prompts...)
}

// Calls returns how many prompts were received.
func (s *ScriptedProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
