package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"lexstyle/types"
)

// CleanJSON strips markdown fences and anything outside the outermost JSON
// object. Chat models routinely wrap JSON in ```json fences or prose.
func CleanJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

// ParseOrDefault is total: for any input it returns either the parsed value or
// exactly the supplied fallback. The never-throw contract of best-effort
// analyzers is enforced here, once.
func ParseOrDefault[T any](raw string, fallback T) T {
	var out T
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &out); err != nil {
		return fallback
	}
	return out
}

// ParseStrict decodes into out or reports ErrMalformedCompletion with the
// underlying cause and a snippet of the raw output.
func ParseStrict[T any](raw string, out *T) error {
	cleaned := CleanJSON(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v (raw: %s)", types.ErrMalformedCompletion, err, snippet(cleaned, 200))
	}
	return nil
}

func snippet(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
