package models

// Band is the local red/yellow/green classification of a 0-100 score
type Band string

const (
	BandRed    Band = "red"
	BandYellow Band = "yellow"
	BandGreen  Band = "green"
)

// Score band thresholds: below LowScoreThreshold is red, below HighScoreThreshold is yellow.
const (
	LowScoreThreshold  = 50
	HighScoreThreshold = 80
)

// ScoreBand classifies a score: <50 red, [50,80) yellow, >=80 green.
func ScoreBand(score int) Band {
	switch {
	case score < LowScoreThreshold:
		return BandRed
	case score < HighScoreThreshold:
		return BandYellow
	default:
		return BandGreen
	}
}
