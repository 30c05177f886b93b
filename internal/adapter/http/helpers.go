package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/reachforge/reachforge/internal/adapter/llm"
	"github.com/reachforge/reachforge/internal/domain"
	"github.com/reachforge/reachforge/internal/logger"
	"github.com/reachforge/reachforge/internal/resilience"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// urlParam is a short alias for chi.URLParam.
func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, fallbackMsg)
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, domain.ErrValidation):
		msg := strings.TrimSuffix(err.Error(), ": "+domain.ErrValidation.Error())
		writeError(w, http.StatusBadRequest, msg)
	default:
		slog.Error("unhandled domain error",
			"error", err,
			"path", r.URL.Path,
			"request_id", logger.RequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeLLMError maps provider failures on the AI routes. Throttling,
// open breakers, and server-side provider failures are 503 so clients
// know to back off; everything unclassified, including rejected
// provider credentials, is a logged 500.
func writeLLMError(w http.ResponseWriter, r *http.Request, err error) {
	var rl *llm.RateLimitError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthenticated):
		writeDomainError(w, r, err, "venture not found")
	case errors.As(err, &rl):
		if rl.RetryAfter > 0 {
			w.Header().Set("Retry-After", formatSeconds(rl.RetryAfter))
		}
		writeError(w, http.StatusServiceUnavailable, "provider is rate limiting, try again later")
	case errors.Is(err, llm.ErrContextLength):
		writeError(w, http.StatusBadRequest, "input too long for the model")
	case errors.Is(err, resilience.ErrCircuitOpen):
		writeError(w, http.StatusServiceUnavailable, "provider temporarily unavailable")
	case llm.Retryable(err):
		slog.Warn("provider failure", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusServiceUnavailable, "provider temporarily unavailable")
	case errors.Is(err, llm.ErrAuth):
		slog.Error("provider rejected credentials", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "generation failed")
	default:
		slog.Error("generation failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", logger.RequestID(r.Context()),
		)
		writeError(w, http.StatusInternalServerError, "generation failed")
	}
}

func formatSeconds(d time.Duration) string {
	secs := int64((d + time.Second - 1) / time.Second)
	return strconv.FormatInt(secs, 10)
}
