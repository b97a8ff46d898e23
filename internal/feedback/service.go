// Package feedback grades interview answers. The server side wraps an LLM
// provider with a local heuristic fallback; the client side calls it over
// HTTP.
package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/codegenius/internal/llm"
)

// MsgEmptyAnswer is the client-facing text for a blank answer.
const MsgEmptyAnswer = "Candidate answer (prompt) is missing or empty"

// ErrEmptyAnswer is returned when the candidate answer is blank.
var ErrEmptyAnswer = errors.New("empty candidate answer")

// Request is one answer to grade.
type Request struct {
	Prompt   string `json:"prompt"`
	Question string `json:"question,omitempty"`
}

// Result is the graded answer.
type Result struct {
	Answer string `json:"answer"`
	Note   string `json:"note,omitempty"`
}

// Service produces feedback with an optional LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// NewService creates a feedback service. A nil provider selects the local
// heuristic for every request.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{provider: provider, cfg: cfg, logger: logger}
}

// HasProvider reports whether an LLM provider is configured.
func (s *Service) HasProvider() bool {
	return s.provider != nil
}

// Evaluate grades req. Errors other than ErrEmptyAnswer come from the
// provider.
func (s *Service) Evaluate(ctx context.Context, req Request) (Result, error) {
	answer := strings.TrimSpace(req.Prompt)
	if answer == "" {
		return Result{}, ErrEmptyAnswer
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		question = UnknownQuestion
	}

	if s.provider == nil {
		s.logger.WarnContext(ctx, "no LLM provider configured, returning local feedback")
		return Result{Answer: LocalFeedback(answer), Note: NoteLocalFallback}, nil
	}

	out, err := s.generate(ctx, question, answer)
	if err != nil {
		return Result{}, err
	}
	return Result{Answer: out.render()}, nil
}

func (s *Service) generate(ctx context.Context, question, answer string) (*feedbackOutput, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	prompt := llm.Prompt{
		System:      feedbackSystemPrompt,
		Turns:       llm.User(buildFeedbackUserMessage(question, answer)),
		Output:      FeedbackSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	c, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("feedback generation: %w", err)
	}

	var out feedbackOutput
	if err := json.Unmarshal(c.Body, &out); err != nil {
		return nil, fmt.Errorf("parse feedback response: %w", err)
	}
	return &out, nil
}
