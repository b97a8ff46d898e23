package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultChatTimeout bounds one feedback request from the client.
const DefaultChatTimeout = 60 * time.Second

// GenericChatError is shown when the service gives no usable reason.
const GenericChatError = "Something went wrong. Please try again."

// ChatError is a failed feedback request. Message is safe to show to the
// candidate.
type ChatError struct {
	Status  int // 0 for transport failures
	Message string
	Err     error
}

func (e *ChatError) Error() string {
	return e.Message
}

func (e *ChatError) Unwrap() error { return e.Err }

// Client calls the feedback service. It never retries.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL. A non-positive
// timeout selects DefaultChatTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultChatTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Chat sends prompt and returns the feedback text, truncated to MaxWords.
func (c *Client) Chat(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(Request{Prompt: prompt})
	if err != nil {
		return "", &ChatError{Message: GenericChatError, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bot/chat", bytes.NewReader(body))
	if err != nil {
		return "", &ChatError{Message: GenericChatError, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ChatError{Message: GenericChatError, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ChatError{Status: resp.StatusCode, Message: GenericChatError, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ChatError{
			Status:  resp.StatusCode,
			Message: errorMessage(data),
			Err:     fmt.Errorf("feedback service returned %d", resp.StatusCode),
		}
	}

	return TruncateWords(answerText(data), MaxWords), nil
}

// answerText extracts the answer field. Non-string answers keep their JSON
// encoding; a body without one, or with a null one, is returned whole.
func answerText(body []byte) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}
	raw, ok := fields["answer"]
	if !ok || string(raw) == "null" {
		return string(body)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func errorMessage(body []byte) string {
	var e struct {
		Error   any `json:"error"`
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil {
		if s, ok := e.Error.(string); ok && s != "" {
			return s
		}
		if s, ok := e.Message.(string); ok && s != "" {
			return s
		}
	}
	return GenericChatError
}
