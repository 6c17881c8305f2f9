package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAuditPrompt_EmbedsURL(t *testing.T) {
	prompt := BuildAuditPrompt("https://mystore.com")

	assert.Contains(t, prompt, "https://mystore.com")
	assert.Contains(t, prompt, "Google Search")
	assert.Contains(t, prompt, "raw JSON")
	assert.Contains(t, prompt, "AuditReport")
}

func TestBuildAuditPrompt_ListsCategoriesInOrder(t *testing.T) {
	prompt := BuildAuditPrompt("https://mystore.com")

	last := -1
	for i, category := range AuditCategories {
		idx := strings.Index(prompt, category)
		if assert.NotEqual(t, -1, idx, "category %d missing", i+1) {
			assert.Greater(t, idx, last, "category %d out of order", i+1)
			last = idx
		}
	}
	assert.Len(t, AuditCategories, 5)
}

func TestBuildAuditPrompt_NamesEveryReportField(t *testing.T) {
	prompt := BuildAuditPrompt("https://mystore.com")

	for _, field := range []string{`"overallScore"`, `"summary"`, `"sections"`, `"recommendations"`, `"title"`, `"score"`, `"status"`, `"details"`} {
		assert.Contains(t, prompt, field)
	}
	for _, status := range []string{`"good"`, `"warning"`, `"critical"`} {
		assert.Contains(t, prompt, status)
	}
}

func TestBuildAuditPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildAuditPrompt("https://a.com"), BuildAuditPrompt("https://a.com"))
	assert.NotEqual(t, BuildAuditPrompt("https://a.com"), BuildAuditPrompt("https://b.com"))
}
