package domain

import "math"

const (
	MaxScore        = 8.0
	MaxDisplayScore = 10.0
)

type ScoreLabel string

const (
	LabelNotStarted ScoreLabel = "not_started"
	LabelPoor       ScoreLabel = "poor"
	LabelNeedsWork  ScoreLabel = "needs_work"
	LabelFair       ScoreLabel = "fair"
	LabelGood       ScoreLabel = "good"
	LabelVeryGood   ScoreLabel = "very_good"
	LabelExcellent  ScoreLabel = "excellent"
)

// Rank orders labels from NotStarted (0) to Excellent (6).
func (l ScoreLabel) Rank() int {
	switch l {
	case LabelPoor:
		return 1
	case LabelNeedsWork:
		return 2
	case LabelFair:
		return 3
	case LabelGood:
		return 4
	case LabelVeryGood:
		return 5
	case LabelExcellent:
		return 6
	default:
		return 0
	}
}

type HealthScore struct {
	Score        float64    `json:"score"`
	DisplayScore float64    `json:"display_score"`
	Label        ScoreLabel `json:"label"`
	Color        string     `json:"color"`
	Emoji        string     `json:"emoji"`
}

type scoreBand struct {
	min   float64
	label ScoreLabel
	color string
	emoji string
}

// Checked top to bottom; the first band whose min the score reaches wins.
var scoreBands = []scoreBand{
	{min: 7, label: LabelExcellent, color: "emerald", emoji: "🌟"},
	{min: 6, label: LabelVeryGood, color: "green", emoji: "😄"},
	{min: 5, label: LabelGood, color: "lime", emoji: "🙂"},
	{min: 4, label: LabelFair, color: "yellow", emoji: "😐"},
	{min: 3, label: LabelNeedsWork, color: "orange", emoji: "😕"},
}

var (
	notStartedBand = scoreBand{label: LabelNotStarted, color: "gray", emoji: "⚪"}
	poorBand       = scoreBand{label: LabelPoor, color: "red", emoji: "😟"}
)

// Classify maps a 0-8 score to its display tier. Scores outside the range are
// clamped to the nearest bound and NaN counts as zero, so it never fails.
func Classify(score float64) HealthScore {
	s := clampScore(score)

	band := poorBand
	if s == 0 {
		band = notStartedBand
	} else {
		for _, b := range scoreBands {
			if s >= b.min {
				band = b
				break
			}
		}
	}

	return HealthScore{
		Score:        s,
		DisplayScore: s * MaxDisplayScore / MaxScore,
		Label:        band.label,
		Color:        band.color,
		Emoji:        band.emoji,
	}
}

func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
