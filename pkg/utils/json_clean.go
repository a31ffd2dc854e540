package utils

import (
	"encoding/json"
	"strings"
)

// CleanJSONResponse removes markdown fences and chatter around the first valid JSON value.
// Bracketed chatter that is not JSON is skipped. When no candidate parses, the first
// balanced group (or the trimmed input) is returned so the caller's parse fails loudly.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	fallback := ""
	for start := 0; start < len(response); start++ {
		var end int
		switch response[start] {
		case '{':
			end = findMatchingClose(response, start, '{', '}')
		case '[':
			end = findMatchingClose(response, start, '[', ']')
		default:
			continue
		}
		if end == -1 {
			// Truncated value: anything nested after this point is a fragment, not the answer.
			break
		}
		candidate := response[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate
		}
		if fallback == "" {
			fallback = candidate
		}
		start = end
	}

	if fallback != "" {
		return fallback
	}
	return response
}

// findMatchingClose returns the index closing the bracket at start, skipping string literals.
func findMatchingClose(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
