package ui

import (
	"fmt"
	"time"

	"github.com/BetterCallFirewall/ShopAudit/internal/models"
)

// Band colours shared by the gauge and the section badges
const (
	ColorRed    = "#ef4444"
	ColorYellow = "#eab308"
	ColorGreen  = "#22c55e"
)

const gaugeCircumference = 100

// ResultCaption is shown under the overall gauge
const ResultCaption = "Based on AI analysis of 5 key metrics"

// View is the render model for the page and the live content fragment
type View struct {
	Phase   Phase
	Input   string
	Loading bool
	Error   string

	HasResult       bool
	URL             string
	Gauge           Gauge
	Summary         string
	Caption         string
	Recommendations []string
	Sections        []SectionCard

	Year int
}

// Gauge is the circular overall score
type Gauge struct {
	Score int
	Band  models.Band
	Color string
	// Dash is the stroke-dasharray of the arc, filled in proportion to Score
	Dash string
}

// SectionCard is one audit section as shown on the page
type SectionCard struct {
	Title   string
	Score   int
	Status  models.Status
	Details []string

	// Look follows the reported status; the badge follows the score
	Look       StatusLook
	BadgeBand  models.Band
	BadgeColor string

	// Mismatch is set when the status and the score band disagree
	Mismatch bool
}

// StatusLook is the icon and palette of a status
type StatusLook struct {
	Icon       string
	Label      string
	Border     string
	Background string
}

var statusLooks = map[models.Status]StatusLook{
	models.StatusGood:     {Icon: "✔", Label: "Good", Border: "#bbf7d0", Background: "#f0fdf4"},
	models.StatusWarning:  {Icon: "!", Label: "Warning", Border: "#fef08a", Background: "#fefce8"},
	models.StatusCritical: {Icon: "✖", Label: "Critical", Border: "#fecaca", Background: "#fef2f2"},
}

var unknownLook = StatusLook{Icon: "?", Label: "Unknown", Border: "#e5e7eb", Background: "#f9fafb"}

// BandColor maps a band to its display colour
func BandColor(b models.Band) string {
	switch b {
	case models.BandRed:
		return ColorRed
	case models.BandYellow:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// LookFor returns the look of a status, falling back to a neutral one
func LookFor(s models.Status) StatusLook {
	if look, ok := statusLooks[s]; ok {
		return look
	}
	return unknownLook
}

// NewGauge builds the gauge for an overall score
func NewGauge(score int) Gauge {
	band := models.ScoreBand(score)
	filled := min(max(score, 0), gaugeCircumference)
	return Gauge{
		Score: score,
		Band:  band,
		Color: BandColor(band),
		Dash:  fmt.Sprintf("%d %d", filled, gaugeCircumference-filled),
	}
}

// NewSectionCard builds the card for one section
func NewSectionCard(s models.AuditSection) SectionCard {
	band := models.ScoreBand(s.Score)
	return SectionCard{
		Title:      s.Title,
		Score:      s.Score,
		Status:     s.Status,
		Details:    s.Details,
		Look:       LookFor(s.Status),
		BadgeBand:  band,
		BadgeColor: BandColor(band),
		Mismatch:   s.StatusMismatch(),
	}
}

// NewView derives the render model from a state snapshot
func NewView(s State, now time.Time) View {
	v := View{
		Phase:   s.Phase,
		Input:   s.Input,
		Loading: s.Loading(),
		Error:   s.Error,
		Year:    now.Year(),
	}

	if r := s.Result; r != nil {
		v.HasResult = true
		v.URL = r.URL
		v.Gauge = NewGauge(r.OverallScore)
		v.Summary = r.Summary
		v.Caption = ResultCaption
		v.Recommendations = r.Recommendations
		v.Sections = make([]SectionCard, 0, len(r.Sections))
		for _, section := range r.Sections {
			v.Sections = append(v.Sections, NewSectionCard(section))
		}
	}

	return v
}
