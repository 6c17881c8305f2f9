package llm

import "strings"

// CleanJSONResponse strips markdown code fences (```json and ```) wherever they appear
// and trims the surrounding whitespace. Nothing else is rewritten.
func CleanJSONResponse(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// TruncateString truncates a string to maxLen with "..." suffix if needed
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
