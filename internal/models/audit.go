package models

// Status is the good/warning/critical classification the model attaches to a section.
// It is never derived from the numeric score.
type Status string

const (
	StatusGood     Status = "good"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Band returns the score band the status nominally corresponds to.
// Unknown statuses report ok=false.
func (s Status) Band() (Band, bool) {
	switch s {
	case StatusGood:
		return BandGreen, true
	case StatusWarning:
		return BandYellow, true
	case StatusCritical:
		return BandRed, true
	default:
		return "", false
	}
}

// AuditSection is one of the five analysis categories of an audit
type AuditSection struct {
	Title   string   `json:"title" jsonschema:"description=Section name (e.g. Design & Branding)"`
	Score   int      `json:"score" jsonschema:"minimum=0,maximum=100,description=Section score from 0 to 100"`
	Status  Status   `json:"status" jsonschema:"enum=good,enum=warning,enum=critical,description=Section status"`
	Details []string `json:"details" jsonschema:"description=Specific observations for this section"`
}

// AuditReport is the payload the model returns. It is an AuditResult without the URL.
type AuditReport struct {
	OverallScore    int            `json:"overallScore" jsonschema:"minimum=0,maximum=100,description=Overall store score from 0 to 100"`
	Summary         string         `json:"summary" jsonschema:"description=Concise executive summary of the store performance (max 50 words)"`
	Sections        []AuditSection `json:"sections" jsonschema:"description=Per-category analysis"`
	Recommendations []string       `json:"recommendations" jsonschema:"description=Actionable tips"`
}

// AuditResult is the outcome of one successful audit.
// It is built once and replaced wholesale by the next audit; nothing mutates it.
type AuditResult struct {
	URL string `json:"url"`
	AuditReport
}

// NewAuditResult attaches the audited URL to a parsed report
func NewAuditResult(url string, report AuditReport) *AuditResult {
	return &AuditResult{
		URL:         url,
		AuditReport: report,
	}
}

// StatusMismatch reports whether the model-assigned status disagrees with the band
// of the section's own score. Both values are kept as-is; this only flags them.
func (s AuditSection) StatusMismatch() bool {
	band, ok := s.Status.Band()
	if !ok {
		return false
	}
	return band != ScoreBand(s.Score)
}
