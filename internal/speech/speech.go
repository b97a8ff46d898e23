// Package speech speaks feedback aloud through a system text-to-speech
// command.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
)

// Speaker reads text aloud. Cancel stops any utterance in progress and is
// safe to call at any time, any number of times.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Cancel()
}

var (
	_ Speaker = (*NoOp)(nil)
	_ Speaker = (*CommandSpeaker)(nil)
)

// NoOp is a speaker that does nothing. Used when speech is disabled.
type NoOp struct {
	log *slog.Logger
}

// NewNoOp creates a no-op speaker. log may be nil.
func NewNoOp(log *slog.Logger) *NoOp {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &NoOp{log: log}
}

// Speak does nothing.
func (n *NoOp) Speak(ctx context.Context, text string) error {
	n.log.DebugContext(ctx, "speech disabled", slog.Int("chars", len(text)))
	return nil
}

// Cancel does nothing.
func (n *NoOp) Cancel() {}

// CommandSpeaker runs an external TTS program with the text as its last
// argument. A new utterance replaces the one in progress.
type CommandSpeaker struct {
	bin  string
	args []string

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
}

// NewCommandSpeaker creates a speaker that runs bin with args followed by
// the text.
func NewCommandSpeaker(bin string, args ...string) *CommandSpeaker {
	return &CommandSpeaker{bin: bin, args: args}
}

// Speak blocks until the command exits. An utterance stopped by Cancel or a
// newer Speak returns nil.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.gen == gen {
			s.cancel = nil
		}
		s.mu.Unlock()
		cancel()
	}()

	args := append(append([]string{}, s.args...), text)
	err := exec.CommandContext(ctx, s.bin, args...).Run()
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.bin, err)
	}
	return nil
}

// Cancel stops the current utterance, if any.
func (s *CommandSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// New returns the speaker for engine ("none", "espeak" or "say"). When the
// engine's program is missing it returns a NoOp along with the error.
func New(engine string, log *slog.Logger) (Speaker, error) {
	switch engine {
	case "", "none":
		return NewNoOp(log), nil
	case "espeak", "say":
		path, err := exec.LookPath(engine)
		if err != nil {
			return NewNoOp(log), fmt.Errorf("speech engine %q unavailable: %w", engine, err)
		}
		return NewCommandSpeaker(path), nil
	}
	return NewNoOp(log), fmt.Errorf("unknown speech engine %q", engine)
}
