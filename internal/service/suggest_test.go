package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reachforge/reachforge/internal/adapter/llm"
	"github.com/reachforge/reachforge/internal/config"
	"github.com/reachforge/reachforge/internal/domain/venture"
)

// fakeLLM serves canned chat-completion responses in order.
func fakeLLM(t *testing.T, responses ...string) *llm.Client {
	t.Helper()
	var call int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if call >= len(responses) {
			t.Errorf("unexpected LLM call %d", call)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		content := responses[call]
		call++
		body := map[string]any{
			"model": "gpt-4o-mini",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
			"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 20},
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return llm.NewClient(config.LLM{
		BaseURL:      srv.URL,
		APIKey:       "test",
		DefaultModel: "gpt-4o-mini",
		MaxTokens:    512,
		Timeout:      5 * time.Second,
	})
}

func suggestFixture(t *testing.T, client *llm.Client) (*SuggestService, string, string) {
	t.Helper()
	store := newMockStore()
	v, err := store.CreateVenture(context.Background(), "user-1", &venture.CreateRequest{
		Name:     "DevRel Studio",
		Industry: "devtools",
	})
	if err != nil {
		t.Fatalf("create venture: %v", err)
	}
	return NewSuggestService(store, client, nil), "user-1", v.ID
}

func TestSuggestInsights(t *testing.T) {
	client := fakeLLM(t, `{
		"industry": "devtools",
		"audience_personas": ["staff engineers"],
		"brand_voice": "direct and technical",
		"content_themes": ["platform engineering"]
	}`)
	svc, userID, ventureID := suggestFixture(t, client)

	got, err := svc.Insights(context.Background(), userID, ventureID)
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if got.Industry != "devtools" {
		t.Errorf("industry = %q", got.Industry)
	}
	if len(got.ContentThemes) != 1 {
		t.Errorf("themes = %v", got.ContentThemes)
	}
}

func TestSuggestInsightsFencedJSON(t *testing.T) {
	client := fakeLLM(t, "```json\n{\"industry\": \"devtools\", \"audience_personas\": [\"CTOs\"], \"brand_voice\": \"calm\", \"content_themes\": [\"testing\"]}\n```")
	svc, userID, ventureID := suggestFixture(t, client)

	got, err := svc.Insights(context.Background(), userID, ventureID)
	if err != nil {
		t.Fatalf("Insights: %v", err)
	}
	if got.BrandVoice != "calm" {
		t.Errorf("brand_voice = %q", got.BrandVoice)
	}
}

func TestSuggestRepairRetry(t *testing.T) {
	// First response is broken JSON, the repair retry succeeds.
	client := fakeLLM(t,
		`here are your topics: [{"topic": "observability",`,
		`[{"topic": "observability", "match_score": 0.8, "engagement_potential": "high"}]`,
	)
	svc, userID, ventureID := suggestFixture(t, client)

	topics, err := svc.Topics(context.Background(), userID, ventureID)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if len(topics) != 1 || topics[0].Topic != "observability" {
		t.Errorf("topics = %+v", topics)
	}
}

func TestSuggestRepairRetryBounded(t *testing.T) {
	// Both attempts fail: error surfaces, no third call happens.
	client := fakeLLM(t, `not json`, `still not json`)
	svc, userID, ventureID := suggestFixture(t, client)

	if _, err := svc.Topics(context.Background(), userID, ventureID); err == nil {
		t.Fatal("expected error after bounded retry")
	}
}

func TestSuggestSchemaValidation(t *testing.T) {
	// Parseable JSON with an out-of-range score triggers the repair
	// path; the second response is valid.
	client := fakeLLM(t,
		`[{"topic": "observability", "match_score": 40, "engagement_potential": "high"}]`,
		`[{"topic": "observability", "match_score": 0.4, "engagement_potential": "high"}]`,
	)
	svc, userID, ventureID := suggestFixture(t, client)

	topics, err := svc.Topics(context.Background(), userID, ventureID)
	if err != nil {
		t.Fatalf("Topics: %v", err)
	}
	if topics[0].MatchScore != 0.4 {
		t.Errorf("match_score = %v", topics[0].MatchScore)
	}
}

func TestSuggestForbiddenVenture(t *testing.T) {
	client := fakeLLM(t)
	svc, _, ventureID := suggestFixture(t, client)

	if _, err := svc.Insights(context.Background(), "someone-else", ventureID); err == nil {
		t.Fatal("expected forbidden error")
	}
}
