package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

var _ domain.ScoreSnapshotRepository = (*PostgresSnapshotRepository)(nil)

type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) Create(ctx context.Context, snapshot *domain.ScoreSnapshot) error {
	query := `
		INSERT INTO score_snapshots (
			id, user_id, overall_score, label, completion_percentage, computed_at
		) VALUES (
			:id, :user_id, :overall_score, :label, :completion_percentage, :computed_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, snapshot); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("snapshot %s already stored: %w", snapshot.ID, err)
		}
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoreSnapshot, error) {
	snapshots := []*domain.ScoreSnapshot{}

	query := `
		SELECT id, user_id, overall_score, label, completion_percentage, computed_at
		FROM score_snapshots
		WHERE user_id = $1
		ORDER BY computed_at DESC`

	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	if err := r.db.SelectContext(ctx, &snapshots, query, args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return snapshots, nil
}
