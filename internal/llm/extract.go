package llm

import (
	"encoding/json"
	"strings"
)

// ParseStatus is the three-way result of structured-output extraction.
// Callers must branch on every case: each maps to a different user-facing
// message.
type ParseStatus int

const (
	// StatusNoCandidate means the raw text contained nothing that looks like
	// structured data.
	StatusNoCandidate ParseStatus = iota
	// StatusParseFailed means a candidate was found but could not be parsed.
	StatusParseFailed
	// StatusParsed means a candidate parsed cleanly. Required-field checks
	// are the caller's responsibility (see internal/schemas).
	StatusParsed
)

func (s ParseStatus) String() string {
	switch s {
	case StatusNoCandidate:
		return "no candidate"
	case StatusParseFailed:
		return "parse failed"
	case StatusParsed:
		return "parsed"
	default:
		return "invalid"
	}
}

const fenceTag = "```json"

// ExtractCandidate pulls the most likely structured payload out of raw model
// text. A fenced block explicitly tagged as JSON wins and its inner content is
// returned verbatim (trimmed); otherwise the span from the first '{' to the
// last '}' is used; otherwise there is no candidate.
func ExtractCandidate(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	if start := strings.Index(lower, fenceTag); start >= 0 {
		inner := raw[start+len(fenceTag):]
		if end := strings.Index(inner, "```"); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner), true
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first >= 0 && last > first {
		return strings.TrimSpace(raw[first : last+1]), true
	}

	return "", false
}

// ParseStrict extracts a candidate from raw text and attempts a strict parse
// into v. Malformed input yields a status, never a panic or a partial v the
// caller can mistake for success.
func ParseStrict(raw string, v any) ParseStatus {
	candidate, ok := ExtractCandidate(raw)
	if !ok {
		return StatusNoCandidate
	}
	if err := json.Unmarshal([]byte(candidate), v); err != nil {
		return StatusParseFailed
	}
	return StatusParsed
}
