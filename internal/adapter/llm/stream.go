package llm

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
)

// streamChunk is one SSE data payload from the provider.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Stream is a lazy, finite, non-restartable sequence of text deltas.
// Recv returns io.EOF after the provider signals completion.
type Stream struct {
	body         io.ReadCloser
	scanner      *bufio.Scanner
	done         bool
	finishReason string
	tokensIn     int
	tokensOut    int
}

// Stream sends a streaming chat-completion request. The returned Stream
// must be closed by the caller. Cancelling ctx aborts the underlying
// response body read.
func (c *Client) Stream(ctx context.Context, req CompletionRequest) (*Stream, error) {
	resp, err := c.send(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return &Stream{
		body:    resp.Body,
		scanner: bufio.NewScanner(resp.Body),
	}, nil
}

// Recv returns the next non-empty content delta. It skips empty deltas
// and bookkeeping chunks. Returns io.EOF when the stream ends.
func (s *Stream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}

	for s.scanner.Scan() {
		line := s.scanner.Text()

		// SSE format: "data: {...}" or "data: [DONE]"
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			s.done = true
			return "", io.EOF
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}

		if chunk.Usage != nil {
			s.tokensIn = chunk.Usage.PromptTokens
			s.tokensOut = chunk.Usage.CompletionTokens
		}

		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.FinishReason != nil {
			s.finishReason = *choice.FinishReason
		}
		if choice.Delta.Content != "" {
			return choice.Delta.Content, nil
		}
	}

	s.done = true
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// FinishReason returns the normalized finish reason once the stream has ended.
func (s *Stream) FinishReason() string { return s.finishReason }

// Usage returns prompt and completion token counts, when the provider
// reported them in the final chunk.
func (s *Stream) Usage() (tokensIn, tokensOut int) {
	return s.tokensIn, s.tokensOut
}

// Close releases the underlying response body.
func (s *Stream) Close() error {
	s.done = true
	return s.body.Close()
}
