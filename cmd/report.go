package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BetterCallFirewall/ShopAudit/internal/models"
	"github.com/BetterCallFirewall/ShopAudit/internal/ui"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginTop(1)
)

func bandStyle(b models.Band) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ui.BandColor(b)))
}

// renderReport formats a result for the terminal with the same bands and
// icons as the web UI
func renderReport(result *models.AuditResult) string {
	var b strings.Builder

	gauge := ui.NewGauge(result.OverallScore)
	b.WriteString(titleStyle.Render("ShopAudit AI") + "  " + mutedStyle.Render(result.URL) + "\n\n")
	b.WriteString("Overall score: " + bandStyle(gauge.Band).Render(fmt.Sprintf("%d%%", gauge.Score)) + "\n")
	b.WriteString(mutedStyle.Render(ui.ResultCaption) + "\n")

	b.WriteString(headingStyle.Render("Executive Summary") + "\n")
	b.WriteString(result.Summary + "\n")

	for _, section := range result.Sections {
		card := ui.NewSectionCard(section)

		var body strings.Builder
		fmt.Fprintf(&body, "%s %s  %s",
			card.Look.Icon,
			lipgloss.NewStyle().Bold(true).Render(card.Title),
			bandStyle(card.BadgeBand).Render(fmt.Sprintf("%d/100", card.Score)),
		)
		for _, detail := range card.Details {
			body.WriteString("\n  • " + detail)
		}
		if card.Mismatch {
			body.WriteString("\n" + mutedStyle.Render("reported status: "+string(card.Status)))
		}

		b.WriteString(sectionStyle.BorderForeground(lipgloss.Color(ui.BandColor(card.BadgeBand))).Render(body.String()) + "\n")
	}

	if len(result.Recommendations) > 0 {
		b.WriteString(headingStyle.Render("Top Recommendations") + "\n")
		for i, rec := range result.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
