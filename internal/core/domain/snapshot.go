package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScoreSnapshot is a point-in-time copy of a user's overall score, kept for history charts.
type ScoreSnapshot struct {
	ID                   string     `json:"id" db:"id"`
	UserID               string     `json:"user_id" db:"user_id"`
	OverallScore         float64    `json:"overall_score" db:"overall_score"`
	Label                ScoreLabel `json:"label" db:"label"`
	CompletionPercentage float64    `json:"completion_percentage" db:"completion_percentage"`
	ComputedAt           time.Time  `json:"computed_at" db:"computed_at"`
}

func NewScoreSnapshot(overview *HealthOverview, at time.Time) *ScoreSnapshot {
	return &ScoreSnapshot{
		ID:                   uuid.New().String(),
		UserID:               overview.UserID,
		OverallScore:         overview.OverallScore,
		Label:                overview.HealthScore.Label,
		CompletionPercentage: overview.CompletionPercentage,
		ComputedAt:           at.UTC(),
	}
}
