package extract

import (
	"encoding/json"
	"strings"
)

// DecodeArray parses a JSON array out of raw model output into dst.
// Model responses often wrap JSON in markdown fences or prose, so the
// decoder scans for the outermost bracket pair before unmarshaling.
func DecodeArray(raw string, dst interface{}) error {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return json.Unmarshal([]byte(cleaned), dst)
}

// DecodeObject parses a JSON object out of raw model output into dst
func DecodeObject(raw string, dst interface{}) error {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return json.Unmarshal([]byte(cleaned), dst)
}

// stripFences removes surrounding markdown code fences, if present
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
