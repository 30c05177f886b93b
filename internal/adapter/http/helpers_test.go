package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reachforge/reachforge/internal/adapter/llm"
	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/resilience"
)

// captureLogs routes the default slog output into a buffer for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWriteDomainErrorLogsRoute(t *testing.T) {
	buf := captureLogs(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/ventures/abc", nil)
	writeDomainError(w, r, errors.New("pool exhausted"), "venture not found")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(buf.String(), "/api/v1/ventures/abc") {
		t.Errorf("log missing route:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "pool exhausted") {
		t.Errorf("log missing error:\n%s", buf.String())
	}
	if strings.Contains(w.Body.String(), "pool exhausted") {
		t.Error("internal error text leaked to the client")
	}
}

func TestWriteLLMErrorStatuses(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("topic is required: %w", domain.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("venture abc: %w", domain.ErrNotFound), http.StatusNotFound},
		{"rate limited", &llm.RateLimitError{Message: "slow down", RetryAfter: 30 * time.Second}, http.StatusServiceUnavailable},
		{"context length", llm.ErrContextLength, http.StatusBadRequest},
		{"breaker open", resilience.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"provider 5xx", &llm.ProviderError{Status: 500, Retryable: true}, http.StatusServiceUnavailable},
		{"provider auth", fmt.Errorf("complete: %w", llm.ErrAuth), http.StatusInternalServerError},
		{"unclassified", &llm.ProviderError{Status: 422, Retryable: false}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLogs(t)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/ai/generate", nil)
			writeLLMError(w, r, tt.err)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestWriteLLMErrorRetryAfterHeader(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/ai/generate", nil)
	writeLLMError(w, r, &llm.RateLimitError{Message: "slow down", RetryAfter: 2500 * time.Millisecond})

	if got := w.Header().Get("Retry-After"); got != "3" {
		t.Errorf("Retry-After = %q, want rounded up to %q", got, "3")
	}
}
