// Package llm provides an HTTP client for an OpenAI-compatible
// chat-completions provider.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/reachforge/reachforge/internal/config"
	"github.com/reachforge/reachforge/internal/resilience"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the provider-agnostic completion request shape.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Completion is the normalized provider response.
type Completion struct {
	Content      string
	Model        string
	TokensIn     int
	TokensOut    int
	FinishReason string
}

// Client talks to one OpenAI-compatible chat-completions endpoint.
type Client struct {
	baseURL      string
	apiKey       string
	defaultModel string
	maxTokens    int
	httpClient   *http.Client
	breaker      *resilience.Breaker
}

// NewClient creates a provider client from the LLM config.
func NewClient(cfg config.LLM) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		defaultModel: cfg.DefaultModel,
		maxTokens:    cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBreaker attaches a circuit breaker to buffered completion calls.
// Streaming calls bypass the breaker; their failure surfaces mid-stream.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// DefaultModel returns the configured default model id.
func (c *Client) DefaultModel() string { return c.defaultModel }

// --- wire types (OpenAI chat completions) ---

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Complete sends a buffered chat-completion request and normalizes the
// response. Provider failures are classified; see errors.go.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	var result *Completion
	call := func() error {
		comp, err := c.complete(ctx, req)
		if err != nil {
			return err
		}
		result = comp
		return nil
	}

	if c.breaker != nil {
		if err := c.breaker.Execute(call); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := call(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	resp, err := c.send(ctx, req, false)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		return nil, &ProviderError{Message: parsed.Error.Message, Retryable: false}
	}
	if len(parsed.Choices) == 0 {
		return nil, &ProviderError{Message: "provider returned no choices", Retryable: false}
	}

	comp := &Completion{
		Content:      parsed.Choices[0].Message.Content,
		Model:        parsed.Model,
		FinishReason: parsed.Choices[0].FinishReason,
	}
	if parsed.Usage != nil {
		comp.TokensIn = parsed.Usage.PromptTokens
		comp.TokensOut = parsed.Usage.CompletionTokens
	}
	return comp, nil
}

// send issues the HTTP request and classifies non-2xx statuses.
// The caller owns the response body on success.
func (c *Client) send(ctx context.Context, req CompletionRequest, stream bool) (*http.Response, error) {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens,
		Stream:      stream,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, classifyStatus(resp.StatusCode, resp.Header, data)
	}
	return resp, nil
}

// classifyStatus maps a provider HTTP failure to the error taxonomy.
func classifyStatus(status int, header http.Header, body []byte) error {
	var parsed chatResponse
	msg := ""
	code := ""
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil {
		msg = parsed.Error.Message
		code = parsed.Error.Code
	}
	if msg == "" {
		msg = truncate(string(body), 500)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("provider auth failed (%d): %s: %w", status, msg, ErrAuth)
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Message: msg, RetryAfter: parseRetryAfter(header)}
	case status == http.StatusBadRequest && code == "context_length_exceeded":
		return fmt.Errorf("%s: %w", msg, ErrContextLength)
	case status >= 500:
		return &ProviderError{Status: status, Message: msg, Retryable: true}
	default:
		return &ProviderError{Status: status, Message: msg, Retryable: false}
	}
}

func parseRetryAfter(header http.Header) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}

func truncate(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
