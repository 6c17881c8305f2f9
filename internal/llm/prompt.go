package llm

import (
	"fmt"
	"strings"
)

// AuditCategories are the five fixed areas every audit covers, in report order
var AuditCategories = []string{
	"First Impressions & Design (hero section, branding, visual hierarchy)",
	"User Experience & Navigation (menu structure, search, mobile friendliness)",
	"Product Presentation (images, descriptions, pricing clarity, reviews)",
	"Marketing & Social Proof (popups, urgency, trust badges, social media links)",
	"Checkout & Trust (payment options, policies, security indicators)",
}

// reportShape is the JSON shape the model must answer with (AuditReport)
const reportShape = `{
  "overallScore": number (0-100),
  "summary": "A concise executive summary of the store's performance (max 50 words).",
  "sections": [
    {
      "title": "Section Name (e.g., Design & Branding)",
      "score": number (0-100),
      "status": "good" | "warning" | "critical",
      "details": ["Specific observation 1", "Specific observation 2"]
    }
  ],
  "recommendations": ["Actionable tip 1", "Actionable tip 2", "Actionable tip 3"]
}`

// BuildAuditPrompt builds the instruction sent to the model for one storefront.
// The output depends only on url.
func BuildAuditPrompt(url string) string {
	var categories strings.Builder
	for i, c := range AuditCategories {
		fmt.Fprintf(&categories, "%d. %s\n", i+1, c)
	}

	return fmt.Sprintf(
		`You are an expert e-commerce Conversion Rate Optimization (CRO) auditor specializing in Shopify stores.

Perform a simulated audit of the online store at this URL: %s

You cannot browse the live site like a browser. Use the Google Search tool to find the most recent
information about this store: cached pages, customer reviews, social media presence and any public
analyses. Infer its current state, design quality and user experience from what you find. Where
specific details are missing, infer them from standard e-commerce best practices for a store in this niche.

Analyze these 5 key areas, one section each, in this order:
%s
Return the result as a strictly valid JSON object of type AuditReport. Do not wrap it in markdown
formatting such as code fences. Return only the raw JSON.

AuditReport:
%s

Be critical but constructive. If the store looks generic or has broken elements according to the
search results, give it a lower score.`,
		url,
		categories.String(),
		reportShape,
	)
}
