package audit

import "strings"

// NormalizeURL trims the input and prepends https:// unless it already starts with "http".
// ok is false for empty input, which callers ignore without making a request.
func NormalizeURL(raw string) (normalized string, ok bool) {
	normalized = strings.TrimSpace(raw)
	if normalized == "" {
		return "", false
	}
	if !strings.HasPrefix(normalized, "http") {
		normalized = "https://" + normalized
	}
	return normalized, true
}
