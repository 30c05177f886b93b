package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/reachforge/reachforge/internal/service"
)

// GenerateContent handles POST /api/v1/ai/generate. With "stream":
// true the deltas go out as server-sent events; otherwise the full
// completion is buffered into one JSON response.
func (h *Handlers) GenerateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[service.GenerateRequest](w, r)
	if !ok {
		return
	}

	if req.Stream {
		h.streamGeneration(w, r, userID, &req)
		return
	}

	result, err := h.Writer.Generate(r.Context(), userID, &req)
	if err != nil {
		writeLLMError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// streamGeneration writes the completion as an SSE stream. Each delta
// is a data event; the stream always ends with a done event. Provider
// failures after the first byte can only be reported in-band.
func (h *Handlers) streamGeneration(w http.ResponseWriter, r *http.Request, userID string, req *service.GenerateRequest) {
	stream, err := h.Writer.GenerateStream(r.Context(), userID, req)
	if err != nil {
		writeLLMError(w, r, err)
		return
	}
	defer stream.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn("generation stream interrupted", "error", err)
			writeSSE(w, flusher, map[string]any{"error": "stream interrupted"})
			return
		}
		writeSSE(w, flusher, map[string]any{"delta": delta})
	}
	writeSSE(w, flusher, map[string]any{"done": true})
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to encode SSE event", "error", err)
		return
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

// ReviseContent handles POST /api/v1/ai/revise.
func (h *Handlers) ReviseContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[service.ReviseRequest](w, r)
	if !ok {
		return
	}
	result, err := h.Writer.Revise(r.Context(), userID, &req)
	if err != nil {
		writeLLMError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type suggestionRequest struct {
	VentureID string `json:"venture_id"`
}

// SuggestInsights handles POST /api/v1/ai/suggestions/insights.
func (h *Handlers) SuggestInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[suggestionRequest](w, r)
	if !ok {
		return
	}
	insights, err := h.Suggest.Insights(r.Context(), userID, req.VentureID)
	if err != nil {
		writeLLMError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

// SuggestTopics handles POST /api/v1/ai/suggestions/topics.
func (h *Handlers) SuggestTopics(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[suggestionRequest](w, r)
	if !ok {
		return
	}
	topics, err := h.Suggest.Topics(r.Context(), userID, req.VentureID)
	if err != nil {
		writeLLMError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// SuggestSchedule handles POST /api/v1/ai/suggestions/schedule.
func (h *Handlers) SuggestSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}
	req, ok := readJSON[suggestionRequest](w, r)
	if !ok {
		return
	}
	slots, err := h.Suggest.Schedule(r.Context(), userID, req.VentureID)
	if err != nil {
		writeLLMError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}
