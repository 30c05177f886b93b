package llm

import (
	"errors"
	"fmt"
	"time"
)

// ErrAuth indicates the provider rejected our credentials. Not retryable.
var ErrAuth = errors.New("provider authentication failed")

// ErrContextLength indicates the prompt exceeded the model's context
// window. Not retryable without shrinking the prompt.
var ErrContextLength = errors.New("context length exceeded")

// RateLimitError indicates the provider throttled the request.
// RetryAfter is zero when the provider sent no hint.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return "rate limited: " + e.Message
}

// ProviderError is a generic provider failure. Retryable is true for
// 5xx-class conditions.
type ProviderError struct {
	Status    int
	Message   string
	Retryable bool
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider error %d: %s", e.Status, e.Message)
	}
	return "provider error: " + e.Message
}

// Retryable reports whether the caller may retry the failed call.
// Rate limits and server-side failures are retryable; auth and
// context-length failures are not.
func Retryable(err error) bool {
	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
