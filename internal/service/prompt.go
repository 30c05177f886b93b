package service

import (
	"strings"
	"unicode"
)

// sanitizePromptInput strips control characters and common prompt injection
// patterns from user-supplied text before it is embedded in an LLM prompt.
// This prevents role-override attacks (e.g., "system: ignore all previous
// instructions") and fence escaping.
func sanitizePromptInput(s string) string {
	// Strip non-printable control characters (keep newlines, tabs, spaces).
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	// Remove common prompt injection role markers at line beginnings.
	// These could trick the LLM into treating user data as system instructions.
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(strings.ToLower(line))
		for _, prefix := range []string{
			"system:", "assistant:", "user:", "[system]", "[assistant]",
			"<|system|>", "<|assistant|>", "<|im_start|>",
			"### system", "### assistant", "### instruction",
		} {
			if strings.HasPrefix(trimmed, prefix) {
				// Replace the role marker prefix with a safe escaped version.
				lines[i] = "[sanitized] " + line
				break
			}
		}
	}
	s = strings.Join(lines, "\n")

	// Enforce a reasonable length limit to prevent context flooding.
	const maxInputLen = 10000
	if len(s) > maxInputLen {
		s = s[:maxInputLen] + "\n[truncated]"
	}

	return s
}

// extractJSON attempts to extract a JSON object or array from a string
// that may contain markdown fences or other surrounding text.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Strip markdown code fences
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		return strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		return strings.TrimSpace(s)
	}

	// Find the first object or array and its matching closer.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		if end := strings.LastIndex(s, "]"); end > arrStart {
			return s[arrStart : end+1]
		}
	}
	if objStart >= 0 {
		if end := strings.LastIndex(s, "}"); end > objStart {
			return s[objStart : end+1]
		}
	}

	return s
}

// truncate shortens s to max bytes for log and error messages.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
