package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func okReply() Reply {
	return Reply{Body: json.RawMessage(`{"ok":true}`)}
}

func failWith(k Kind) Reply {
	return Reply{Err: &Error{Kind: k, Err: errors.New(k.String())}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		script    []Reply
		wantErr   bool
		wantKind  Kind
		wantCalls int
	}{
		{"first attempt succeeds", []Reply{okReply()}, false, 0, 1},
		{"outage then success", []Reply{failWith(KindUnavailable), okReply()}, false, 0, 2},
		{"rate limit then success", []Reply{failWith(KindRateLimited), okReply()}, false, 0, 2},
		{"unclassified error is retried", []Reply{{Err: errors.New("conn reset")}, okReply()}, false, 0, 2},
		{"all attempts fail", []Reply{failWith(KindUnavailable), failWith(KindUnavailable), failWith(KindUnavailable), okReply()}, true, KindUnavailable, 3},
		{"rejected is final", []Reply{failWith(KindRejected), okReply()}, true, KindRejected, 1},
		{"truncated is final", []Reply{failWith(KindTruncated), okReply()}, true, KindTruncated, 1},
		{"malformed retried once", []Reply{failWith(KindMalformed), failWith(KindMalformed), okReply()}, true, KindMalformed, 2},
		{"malformed then success", []Reply{failWith(KindMalformed), okReply()}, false, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScriptedProvider(tt.script...)
			c, err := WithRetry(s, retryConfig()).Complete(context.Background(), Prompt{})

			if tt.wantErr {
				if !IsKind(err, tt.wantKind) {
					t.Fatalf("expected %v, got %v", tt.wantKind, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(c.Body) != `{"ok":true}` {
					t.Fatalf("unexpected body: %s", c.Body)
				}
			}
			if s.Calls() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, s.Calls())
			}
		})
	}
}

func TestRetry_CancelledContextStopsWaiting(t *testing.T) {
	s := NewScriptedProvider(failWith(KindUnavailable), okReply())
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(s, cfg).Complete(ctx, Prompt{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if s.Calls() != 1 {
		t.Fatalf("expected 1 call, got %d", s.Calls())
	}
}

func TestRetry_ContextErrorNotRetried(t *testing.T) {
	s := NewScriptedProvider(Reply{Err: context.DeadlineExceeded}, okReply())
	_, err := WithRetry(s, retryConfig()).Complete(context.Background(), Prompt{})
	if !errors.Is(err, context.DeadlineExceeded) || s.Calls() != 1 {
		t.Fatalf("expected a single failed call, got err=%v calls=%d", err, s.Calls())
	}
}

func TestRetryDelay(t *testing.T) {
	r := &retryProvider{
		config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2},
		jitter: func() float64 { return 0 },
	}
	plain := errors.New("x")

	tests := []struct {
		attempt int
		err     error
		want    time.Duration
	}{
		{0, plain, 100 * time.Millisecond},
		{1, plain, 200 * time.Millisecond},
		{2, plain, 300 * time.Millisecond},
		{5, plain, 300 * time.Millisecond},
		{0, &Error{Kind: KindRateLimited, RetryAfter: 2 * time.Second}, 2 * time.Second},
	}
	for _, tt := range tests {
		if got := r.delay(tt.attempt, tt.err); got != tt.want {
			t.Errorf("delay(%d, %v) = %v, want %v", tt.attempt, tt.err, got, tt.want)
		}
	}

	r.jitter = func() float64 { return 1 }
	if got := r.delay(0, plain); got != 120*time.Millisecond {
		t.Errorf("jittered delay = %v, want 120ms", got)
	}
}

func TestRetry_ModelDelegates(t *testing.T) {
	if got := WithRetry(NewScriptedProvider(), retryConfig()).Model(); got != ProviderMock {
		t.Fatalf("expected %q, got %q", ProviderMock, got)
	}
}
