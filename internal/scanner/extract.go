package scanner

import (
	"encoding/json"
	"strings"

	"receiptscan/internal/domain"
)

// Extract locates the first balanced JSON object in the raw model response
// and decodes it. Models frequently wrap the object in markdown fences or
// surround it with prose; both are tolerated. Field semantics are not checked
// here, that belongs to the normalizer.
func Extract(raw string) (map[string]any, error) {
	text := stripFences(raw)

	for offset := 0; ; {
		start := strings.IndexByte(text[offset:], '{')
		if start < 0 {
			return nil, domain.ErrUnparsableResponse
		}
		start += offset

		span, ok := balancedSpan(text[start:])
		if ok {
			var data map[string]any
			if err := json.Unmarshal([]byte(span), &data); err == nil {
				return data, nil
			}
		}
		offset = start + 1
	}
}

// balancedSpan returns the prefix of s up to and including the brace that
// closes the object s opens with. It walks the text byte by byte instead of
// using regex heuristics so that braces inside string values and escaped
// quotes do not confuse the scan.
func balancedSpan(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
