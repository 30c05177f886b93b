package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reachforge/reachforge/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.LLM{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		DefaultModel: "gpt-4o-mini",
		MaxTokens:    256,
		Timeout:      5 * time.Second,
	})
}

func TestCompleteSuccess(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3}
		}`)
	})

	out, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out.Content != "hello there" {
		t.Errorf("content = %q", out.Content)
	}
	if out.TokensIn != 12 || out.TokensOut != 3 {
		t.Errorf("usage = %d/%d", out.TokensIn, out.TokensOut)
	}
	if out.FinishReason != "stop" {
		t.Errorf("finish_reason = %q", out.FinishReason)
	}
}

func TestCompleteAuthError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`)
	})

	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("want ErrAuth, got %v", err)
	}
	if Retryable(err) {
		t.Error("auth errors are not retryable")
	}
}

func TestCompleteRateLimit(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error": {"message": "rate limit exceeded"}}`)
	})

	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	var rl *RateLimitError
	if !errors.As(err, &rl) {
		t.Fatalf("want RateLimitError, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v", rl.RetryAfter)
	}
	if !Retryable(err) {
		t.Error("rate limit errors are retryable")
	}
}

func TestCompleteContextLength(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error": {"message": "maximum context length exceeded", "code": "context_length_exceeded"}}`)
	})

	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: strings.Repeat("x", 100)}},
	})
	if !errors.Is(err, ErrContextLength) {
		t.Fatalf("want ErrContextLength, got %v", err)
	}
}

func TestCompleteServerError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": {"message": "upstream overloaded"}}`)
	})

	_, err := c.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("want ProviderError, got %v", err)
	}
	if !pe.Retryable {
		t.Error("5xx errors are retryable")
	}
	if !Retryable(err) {
		t.Error("Retryable helper should agree")
	}
}

func TestStream(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{
			`data: {"choices": [{"delta": {"content": "Hel"}}]}`,
			`data: {"choices": [{"delta": {"content": "lo"}}]}`,
			``,
			`data: {"choices": [{"delta": {}, "finish_reason": "stop"}], "usage": {"prompt_tokens": 8, "completion_tokens": 2}}`,
			`data: [DONE]`,
		}
		for _, ch := range chunks {
			io.WriteString(w, ch+"\n")
		}
	})

	stream, err := c.Stream(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	defer stream.Close()

	var got strings.Builder
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		got.WriteString(delta)
	}
	if got.String() != "Hello" {
		t.Errorf("streamed content = %q", got.String())
	}
	if stream.FinishReason() != "stop" {
		t.Errorf("finish reason = %q", stream.FinishReason())
	}
	in, out := stream.Usage()
	if in != 8 || out != 2 {
		t.Errorf("usage = %d/%d", in, out)
	}

	// A drained stream stays drained.
	if _, err := stream.Recv(); err != io.EOF {
		t.Errorf("Recv after EOF = %v", err)
	}
}

func TestStreamAuthError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error": {"message": "forbidden"}}`)
	})

	_, err := c.Stream(context.Background(), CompletionRequest{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("want ErrAuth, got %v", err)
	}
}
