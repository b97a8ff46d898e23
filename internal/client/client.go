// Package client talks to the question service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/codegenius/internal/question"
)

// DefaultTimeout bounds one question service request.
const DefaultTimeout = 10 * time.Second

// Client is a question service client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL. A non-positive timeout
// selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Questions fetches the questions for techStack. An empty techStack asks
// for every question.
func (c *Client) Questions(ctx context.Context, techStack string) ([]question.Question, error) {
	u := c.baseURL + "/questions/get"
	if techStack != "" {
		u += "?" + url.Values{"techStack": {techStack}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var out []question.Question
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	if out == nil {
		out = []question.Question{}
	}
	return out, nil
}

// Add submits a question and returns the service's confirmation message.
func (c *Client) Add(ctx context.Context, q question.Question) (string, error) {
	body, err := json.Marshal(struct {
		Question  string `json:"question,omitempty"`
		TechStack string `json:"techStack,omitempty"`
	}{q.Question, q.TechStack})
	if err != nil {
		return "", fmt.Errorf("encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/questions/add", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out struct {
		Msg string `json:"msg"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("add question: %w", err)
	}
	return out.Msg, nil
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
