package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.GoalRecordRepository = (*PostgresGoalRecordRepository)(nil)

const uniqueViolation = "23505"

type PostgresGoalRecordRepository struct {
	db *sqlx.DB
}

func NewPostgresGoalRecordRepository(db *sqlx.DB) *PostgresGoalRecordRepository {
	return &PostgresGoalRecordRepository{db: db}
}

// goalRecordRow mirrors the goal_records table; goals is a TEXT[] column.
type goalRecordRow struct {
	ID            string         `db:"id"`
	UserID        string         `db:"user_id"`
	Category      string         `db:"category"`
	Goals         pq.StringArray `db:"goals"`
	DateGenerated time.Time      `db:"date_generated"`
	IsCompleted   bool           `db:"is_completed"`
	Version       int            `db:"version"`
}

func (row goalRecordRow) toDomain() *domain.GoalRecord {
	goals := []string(row.Goals)
	if goals == nil {
		goals = []string{}
	}
	return &domain.GoalRecord{
		ID:            row.ID,
		UserID:        row.UserID,
		Category:      row.Category,
		Goals:         goals,
		DateGenerated: row.DateGenerated.UTC(),
		IsCompleted:   row.IsCompleted,
		Version:       row.Version,
	}
}

func (r *PostgresGoalRecordRepository) Create(ctx context.Context, record *domain.GoalRecord) error {
	query := `
		INSERT INTO goal_records (
			id, user_id, category, goals, date_generated, is_completed, version
		) VALUES (
			$1, $2, $3, $4, $5, $6, 1
		)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.Category, pq.Array(record.Goals),
		record.DateGenerated, record.IsCompleted,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrGoalRecordExists
		}
		return fmt.Errorf("failed to insert goal record: %w", err)
	}

	record.Version = 1
	return nil
}

func (r *PostgresGoalRecordRepository) GetByID(ctx context.Context, id string) (*domain.GoalRecord, error) {
	var row goalRecordRow
	query := `SELECT id, user_id, category, goals, date_generated, is_completed, version FROM goal_records WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalRecordNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PostgresGoalRecordRepository) ListByUser(ctx context.Context, userID, category string, limit int) ([]*domain.GoalRecord, error) {
	query := `
		SELECT id, user_id, category, goals, date_generated, is_completed, version
		FROM goal_records
		WHERE user_id = $1
		  AND ($2 = '' OR category = $2)
		ORDER BY date_generated DESC, id DESC`

	args := []interface{}{userID, category}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows := []goalRecordRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	records := make([]*domain.GoalRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}

func (r *PostgresGoalRecordRepository) UpdateGoals(ctx context.Context, record *domain.GoalRecord) error {
	query := `
		UPDATE goal_records SET
			goals = $1, is_completed = $2, version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version`

	var newVersion int
	err := r.db.QueryRowContext(ctx, query,
		pq.Array(record.Goals), record.IsCompleted, record.ID, record.Version,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			if checkErr := r.db.GetContext(ctx, &count, `SELECT count(*) FROM goal_records WHERE id = $1`, record.ID); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}
			if count == 0 {
				return domain.ErrGoalRecordNotFound
			}
			return domain.ErrGoalRecordConflict
		}
		return fmt.Errorf("update query failed: %w", err)
	}

	record.Version = newVersion
	return nil
}

// isUniqueViolation recognises duplicate keys from either Postgres driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
