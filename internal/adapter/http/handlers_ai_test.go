package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/reachforge/reachforge/internal/adapter/llm"
	"github.com/reachforge/reachforge/internal/config"
	"github.com/reachforge/reachforge/internal/resilience"
)

// newProvider builds an LLM client against a stub chat-completions
// endpoint.
func newProvider(t *testing.T, handler http.HandlerFunc) *llm.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return llm.NewClient(config.LLM{
		BaseURL:      srv.URL,
		APIKey:       "test",
		DefaultModel: "gpt-4o-mini",
		Timeout:      5 * time.Second,
	})
}

func completionHandler(reply string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Stream bool `json:"stream"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte(
				"data: {\"choices\":[{\"delta\":{\"content\":\"Hel\"}}]}\n\n" +
					"data: {\"choices\":[{\"delta\":{\"content\":\"lo\"}}],\"usage\":{\"prompt_tokens\":5,\"completion_tokens\":2}}\n\n" +
					"data: [DONE]\n\n"))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}, "finish_reason": "stop"},
			},
			"usage": map[string]int{"prompt_tokens": 15, "completion_tokens": 40},
		})
	}
}

func TestGenerateBuffered(t *testing.T) {
	client := newProvider(t, completionHandler("A finished post."))
	f := newFixture(t, client)
	token := f.signup(t, "writer@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{
		"topic": "platform teams", "length": "short",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: %d %s", w.Code, w.Body)
	}
	var resp struct {
		Text      string `json:"text"`
		TokensOut int    `json:"tokens_out"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Text != "A finished post." || resp.TokensOut != 40 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestGenerateStreamSSE(t *testing.T) {
	client := newProvider(t, completionHandler(""))
	f := newFixture(t, client)
	token := f.signup(t, "streamer@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{
		"topic": "platform teams", "stream": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("stream: %d %s", w.Code, w.Body)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{`data: {"delta":"Hel"}`, `data: {"delta":"lo"}`, `data: {"done":true}`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestGenerateRateLimited(t *testing.T) {
	client := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	})
	f := newFixture(t, client)
	token := f.signup(t, "limited@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{"topic": "x"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d %s", w.Code, w.Body)
	}
	if w.Header().Get("Retry-After") != "30" {
		t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
}

func TestGenerateProviderAuthFailure(t *testing.T) {
	client := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	})
	f := newFixture(t, client)
	token := f.signup(t, "badkey@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{"topic": "x"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d %s", w.Code, w.Body)
	}
	if strings.Contains(w.Body.String(), "invalid api key") {
		t.Error("provider error text leaked to the client")
	}
}

func TestGenerateUnclassifiedProviderFailure(t *testing.T) {
	client := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"message":"no such model"}}`))
	})
	f := newFixture(t, client)
	token := f.signup(t, "nomodel@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{"topic": "x"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d %s", w.Code, w.Body)
	}
}

func TestGenerateBreakerOpen(t *testing.T) {
	var calls int
	client := newProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream down"}}`))
	})
	client.SetBreaker(resilience.NewBreaker(1, time.Minute))
	f := newFixture(t, client)
	token := f.signup(t, "breaker@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{"topic": "x"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("first failure: %d %s", w.Code, w.Body)
	}
	w = f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{"topic": "x"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("open breaker: %d %s", w.Code, w.Body)
	}
	if calls != 1 {
		t.Errorf("provider calls with open breaker = %d, want 1", calls)
	}
}

func TestGenerateMissingTopic(t *testing.T) {
	f := newFixture(t, nil)
	token := f.signup(t, "empty-topic@example.com")

	if w := f.do(t, http.MethodPost, "/api/v1/ai/generate", token, map[string]any{}); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d", w.Code)
	}
}

func TestSuggestTopicsRoute(t *testing.T) {
	client := newProvider(t, completionHandler(`[{"topic": "shipping culture", "match_score": 0.9, "engagement_potential": "high"}]`))
	f := newFixture(t, client)
	token := f.signup(t, "suggest@example.com")

	w := f.do(t, http.MethodPost, "/api/v1/ventures", token, map[string]string{"name": "Suggested"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create venture: %d", w.Code)
	}
	var v struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = f.do(t, http.MethodPost, "/api/v1/ai/suggestions/topics", token, map[string]string{"venture_id": v.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("topics: %d %s", w.Code, w.Body)
	}
	var topics []struct {
		Topic string `json:"topic"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &topics); err != nil {
		t.Fatalf("decode topics: %v", err)
	}
	if len(topics) != 1 || topics[0].Topic != "shipping culture" {
		t.Errorf("topics = %+v", topics)
	}
}
