package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind classifies provider failures for the retry policy.
type Kind int

const (
	// KindUnavailable covers network errors and 5xx replies.
	KindUnavailable Kind = iota
	// KindRateLimited is a 429 reply.
	KindRateLimited
	// KindRejected is a 4xx reply other than 408 and 429, such as a bad
	// API key. Retrying cannot help.
	KindRejected
	// KindMalformed means the reply did not match the requested schema.
	KindMalformed
	// KindTruncated means the reply hit MaxTokens before finishing.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "rejected"
	case KindMalformed:
		return "malformed reply"
	case KindTruncated:
		return "truncated reply"
	}
	return "unknown"
}

// Error is a classified provider failure.
type Error struct {
	Kind     Kind
	Provider string
	Status   int

	// RetryAfter is the server's requested delay for KindRateLimited.
	RetryAfter time.Duration

	// Body holds the offending reply for KindMalformed and KindTruncated.
	Body json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is a provider *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// fromStatus classifies an SDK error by its HTTP status. A zero status
// means the request never got a reply.
func fromStatus(provider string, status int, header http.Header, err error) *Error {
	e := &Error{Kind: KindUnavailable, Provider: provider, Status: status, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = retryAfter(header)
	case status == http.StatusRequestTimeout:
	case status >= 400 && status < 500:
		e.Kind = KindRejected
	}
	return e
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func malformed(provider string, body json.RawMessage, err error) *Error {
	return &Error{Kind: KindMalformed, Provider: provider, Body: body, Err: err}
}
