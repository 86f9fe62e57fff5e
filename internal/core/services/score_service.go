package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

type ScoreService struct {
	responseRepo domain.SurveyResponseRepository
	goalRepo     domain.GoalRecordRepository
	snapshotRepo domain.ScoreSnapshotRepository
	catalog      QuestionCatalog
}

func NewScoreService(responseRepo domain.SurveyResponseRepository, goalRepo domain.GoalRecordRepository, snapshotRepo domain.ScoreSnapshotRepository, catalog QuestionCatalog) *ScoreService {
	return &ScoreService{
		responseRepo: responseRepo,
		goalRepo:     goalRepo,
		snapshotRepo: snapshotRepo,
		catalog:      catalog,
	}
}

// CategoryScore computes the stats of a single category. Completed goals from
// every record of the category count toward the bonus.
func (s *ScoreService) CategoryScore(ctx context.Context, userID, category string) (*domain.CategoryStats, error) {
	total, err := s.catalog.QuestionCount(category)
	if err != nil {
		return nil, err
	}

	responses, err := s.responseRepo.ListByUser(ctx, userID, category)
	if err != nil {
		return nil, fmt.Errorf("score service: list responses: %w", err)
	}

	records, err := s.goalRepo.ListByUser(ctx, userID, category, 0)
	if err != nil {
		return nil, fmt.Errorf("score service: list goal records: %w", err)
	}

	completed := 0
	for _, r := range records {
		completed += r.CompletedCount()
	}

	stats := domain.AggregateCategory(responses, completed, total, domain.MaxScore)
	stats.Category = category
	return &stats, nil
}

// Overview scores every catalog category and averages the ones the user has
// started answering into the overall score.
func (s *ScoreService) Overview(ctx context.Context, userID string) (*domain.HealthOverview, error) {
	responses, err := s.responseRepo.ListByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("score service: list responses: %w", err)
	}

	records, err := s.goalRepo.ListByUser(ctx, userID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("score service: list goal records: %w", err)
	}

	responsesByCategory := make(map[string][]*domain.SurveyResponse)
	for _, r := range responses {
		responsesByCategory[r.Category] = append(responsesByCategory[r.Category], r)
	}

	completedByCategory := make(map[string]int)
	for _, r := range records {
		completedByCategory[r.Category] += r.CompletedCount()
	}

	overview := &domain.HealthOverview{
		UserID:     userID,
		Categories: make(map[string]domain.CategoryStats),
	}
	started := make(map[string]float64)

	for _, category := range s.catalog.Categories() {
		total, err := s.catalog.QuestionCount(category)
		if err != nil {
			return nil, err
		}

		stats := domain.AggregateCategory(responsesByCategory[category], completedByCategory[category], total, domain.MaxScore)
		stats.Category = category
		overview.Categories[category] = stats

		overview.AnsweredCount += stats.AnsweredCount
		overview.TotalQuestions += stats.Total

		if stats.AnsweredCount > 0 {
			started[category] = stats.RawScore
		}
	}

	overview.OverallScore = domain.AggregateOverall(started)
	overview.HealthScore = domain.Classify(overview.OverallScore)
	overview.CompletionPercentage = domain.CompletionPercentage(overview.AnsweredCount, overview.TotalQuestions)

	return overview, nil
}

func (s *ScoreService) History(ctx context.Context, userID string, limit int) ([]*domain.ScoreSnapshot, error) {
	snapshots, err := s.snapshotRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("score service: list snapshots: %w", err)
	}
	return snapshots, nil
}
