package domain

import (
	"context"
	"errors"
)

var (
	ErrGoalRecordNotFound = errors.New("goal record not found")
	ErrGoalRecordConflict = errors.New("goal record version conflict")
	ErrGoalRecordExists   = errors.New("goal record already exists")
	ErrUnknownCategory    = errors.New("unknown survey category")
)

type GoalRecordRepository interface {
	// Create persists a freshly generated goal record.
	Create(ctx context.Context, record *GoalRecord) error

	// GetByID retrieves a single record, ErrGoalRecordNotFound when absent.
	GetByID(ctx context.Context, id string) (*GoalRecord, error)

	// ListByUser returns the user's records, most recent DateGenerated first.
	// An empty category matches every category; limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID, category string, limit int) ([]*GoalRecord, error)

	// UpdateGoals replaces the whole goals array and the IsCompleted flag.
	// Implementations must compare the record Version with the stored one and
	// return ErrGoalRecordConflict on mismatch; on success Version is bumped.
	UpdateGoals(ctx context.Context, record *GoalRecord) error
}

type SurveyResponseRepository interface {
	// ListByUser returns the user's answers. An empty category matches every category.
	ListByUser(ctx context.Context, userID, category string) ([]*SurveyResponse, error)
}

type ScoreSnapshotRepository interface {
	Create(ctx context.Context, snapshot *ScoreSnapshot) error

	// ListByUser returns snapshots newest first; limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]*ScoreSnapshot, error)
}
