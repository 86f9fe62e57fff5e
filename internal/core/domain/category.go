package domain

import (
	"math"
	"time"
)

// GoalBonus is the score added per completed goal in a category.
const GoalBonus = 0.15

type SurveyResponse struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	QuestionID string    `json:"question_id" db:"question_id"`
	Category   string    `json:"category" db:"category"`
	Points     float64   `json:"points" db:"points"`
	AnsweredAt time.Time `json:"answered_at" db:"answered_at"`
}

type CategoryStats struct {
	Category             string      `json:"category"`
	Total                int         `json:"total"`
	AnsweredCount        int         `json:"answered_count"`
	CompletedGoals       int         `json:"completed_goals"`
	CompletionPercentage float64     `json:"completion_percentage"`
	RawScore             float64     `json:"raw_score"`
	HealthScore          HealthScore `json:"health_score"`
}

type HealthOverview struct {
	UserID               string                   `json:"user_id"`
	Categories           map[string]CategoryStats `json:"categories"`
	OverallScore         float64                  `json:"overall_score"`
	HealthScore          HealthScore              `json:"health_score"`
	AnsweredCount        int                      `json:"answered_count"`
	TotalQuestions       int                      `json:"total_questions"`
	CompletionPercentage float64                  `json:"completion_percentage"`
}

// AggregateCategory averages the answered points of one category and adds the
// completed-goal bonus, clamped to maxScore. A maxScore of zero or less means MaxScore.
func AggregateCategory(responses []*SurveyResponse, completedGoalCount, totalQuestions int, maxScore float64) CategoryStats {
	if maxScore <= 0 {
		maxScore = MaxScore
	}
	if completedGoalCount < 0 {
		completedGoalCount = 0
	}

	stats := CategoryStats{
		Total:          totalQuestions,
		AnsweredCount:  len(responses),
		CompletedGoals: completedGoalCount,
	}

	if totalQuestions <= 0 {
		stats.Total = 0
		stats.HealthScore = Classify(0)
		return stats
	}

	base := 0.0
	if len(responses) > 0 {
		sum := 0.0
		for _, r := range responses {
			sum += r.Points
		}
		base = sum / float64(len(responses))
	}

	bonus := float64(completedGoalCount) * GoalBonus
	stats.RawScore = math.Min(maxScore, base+bonus)
	stats.CompletionPercentage = CompletionPercentage(len(responses), totalQuestions)
	stats.HealthScore = Classify(stats.RawScore)

	return stats
}

// AggregateOverall is the mean of the category scores rounded to two decimals.
func AggregateOverall(categoryScores map[string]float64) float64 {
	if len(categoryScores) == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range categoryScores {
		sum += s
	}

	return RoundScore(sum / float64(len(categoryScores)))
}

// RoundScore rounds half away from zero to two decimal places.
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

// CompletionPercentage reports answered/total as a percentage, capped at 100.
func CompletionPercentage(answered, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(answered) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
