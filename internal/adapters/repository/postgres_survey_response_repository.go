package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

var _ domain.SurveyResponseRepository = (*PostgresSurveyResponseRepository)(nil)

type PostgresSurveyResponseRepository struct {
	db *sqlx.DB
}

func NewPostgresSurveyResponseRepository(db *sqlx.DB) *PostgresSurveyResponseRepository {
	return &PostgresSurveyResponseRepository{db: db}
}

func (r *PostgresSurveyResponseRepository) ListByUser(ctx context.Context, userID, category string) ([]*domain.SurveyResponse, error) {
	responses := []*domain.SurveyResponse{}

	query := `
		SELECT id, user_id, question_id, category, points, answered_at
		FROM survey_responses
		WHERE user_id = $1
		  AND ($2 = '' OR category = $2)
		ORDER BY answered_at ASC, question_id ASC`

	if err := r.db.SelectContext(ctx, &responses, query, userID, category); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return responses, nil
}

// Save stores an answer, replacing any earlier answer to the same question.
func (r *PostgresSurveyResponseRepository) Save(ctx context.Context, response *domain.SurveyResponse) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}

	query := `
		INSERT INTO survey_responses (
			id, user_id, question_id, category, points, answered_at
		) VALUES (
			:id, :user_id, :question_id, :category, :points, :answered_at
		)
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			points = EXCLUDED.points,
			answered_at = EXCLUDED.answered_at`

	if _, err := r.db.NamedExecContext(ctx, query, response); err != nil {
		return fmt.Errorf("failed to save survey response: %w", err)
	}
	return nil
}
