package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

type retryProvider struct {
	inner  Provider
	config RetryConfig
	// jitter returns a value in [-1, 1).
	jitter func() float64
}

// WithRetry retries failures that can succeed on a second try: outages and
// rate limits up to MaxAttempts, a malformed reply once.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retryProvider{
		inner:  p,
		config: cfg,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
	}
}

func (r *retryProvider) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	attempts := max(1, r.config.MaxAttempts)
	malformedSeen := false

	var err error
	for attempt := range attempts {
		var c *Completion
		c, err = r.inner.Complete(ctx, p)
		if err == nil {
			return c, nil
		}

		if !retryable(err, &malformedSeen) || attempt == attempts-1 {
			return nil, err
		}

		t := time.NewTimer(r.delay(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func (r *retryProvider) Model() string {
	return r.inner.Model()
}

func retryable(err error, malformedSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var e *Error
	if !errors.As(err, &e) {
		return true
	}
	switch e.Kind {
	case KindRejected, KindTruncated:
		return false
	case KindMalformed:
		if *malformedSeen {
			return false
		}
		*malformedSeen = true
	}
	return true
}

// delay is exponential in attempt, capped at MaxWait, with 20% jitter. A
// server-provided Retry-After wins.
func (r *retryProvider) delay(attempt int, err error) time.Duration {
	var e *Error
	if errors.As(err, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}

	d := r.config.InitialWait
	for range attempt {
		d = time.Duration(float64(d) * r.config.Multiplier)
		if d >= r.config.MaxWait {
			d = r.config.MaxWait
			break
		}
	}
	d += time.Duration(float64(d) * 0.2 * r.jitter())
	return max(0, d)
}
