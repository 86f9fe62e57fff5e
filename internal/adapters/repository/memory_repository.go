package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

var _ domain.GoalRecordRepository = (*InMemoryGoalRecordRepository)(nil)

// InMemoryGoalRecordRepository is a versioned store backing the handler and
// end-to-end tests. Records are copied in and out.
type InMemoryGoalRecordRepository struct {
	store map[string]*domain.GoalRecord

	mu sync.RWMutex
}

func NewInMemoryGoalRecordRepository() *InMemoryGoalRecordRepository {
	return &InMemoryGoalRecordRepository{
		store: make(map[string]*domain.GoalRecord),
	}
}

func (r *InMemoryGoalRecordRepository) Create(ctx context.Context, record *domain.GoalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[record.ID]; exists {
		return domain.ErrGoalRecordExists
	}

	record.Version = 1
	r.store[record.ID] = record.Clone()
	return nil
}

func (r *InMemoryGoalRecordRepository) GetByID(ctx context.Context, id string) (*domain.GoalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalRecordNotFound
	}
	return record.Clone(), nil
}

func (r *InMemoryGoalRecordRepository) ListByUser(ctx context.Context, userID, category string, limit int) ([]*domain.GoalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := []*domain.GoalRecord{}
	for _, rec := range r.store {
		if rec.UserID == userID && (category == "" || rec.Category == category) {
			records = append(records, rec.Clone())
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].DateGenerated.Equal(records[j].DateGenerated) {
			return records[i].ID > records[j].ID
		}
		return records[i].DateGenerated.After(records[j].DateGenerated)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (r *InMemoryGoalRecordRepository) UpdateGoals(ctx context.Context, record *domain.GoalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[record.ID]
	if !ok {
		return domain.ErrGoalRecordNotFound
	}
	if existing.Version != record.Version {
		return domain.ErrGoalRecordConflict
	}

	updated := existing.Clone()
	updated.Goals = append([]string(nil), record.Goals...)
	updated.IsCompleted = record.IsCompleted
	updated.Version++

	r.store[record.ID] = updated
	record.Version = updated.Version
	return nil
}

// InMemorySurveyResponseRepository serves answers seeded through Save.
type InMemorySurveyResponseRepository struct {
	responses []*domain.SurveyResponse

	mu sync.RWMutex
}

func NewInMemorySurveyResponseRepository() *InMemorySurveyResponseRepository {
	return &InMemorySurveyResponseRepository{}
}

func (r *InMemorySurveyResponseRepository) Save(ctx context.Context, response *domain.SurveyResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *response
	for i, existing := range r.responses {
		if existing.UserID == c.UserID && existing.QuestionID == c.QuestionID {
			r.responses[i] = &c
			return nil
		}
	}
	r.responses = append(r.responses, &c)
	return nil
}

func (r *InMemorySurveyResponseRepository) ListByUser(ctx context.Context, userID, category string) ([]*domain.SurveyResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.SurveyResponse{}
	for _, resp := range r.responses {
		if resp.UserID == userID && (category == "" || resp.Category == category) {
			c := *resp
			out = append(out, &c)
		}
	}
	return out, nil
}

type InMemorySnapshotRepository struct {
	snapshots []*domain.ScoreSnapshot

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{}
}

func (r *InMemorySnapshotRepository) Create(ctx context.Context, snapshot *domain.ScoreSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *snapshot
	r.snapshots = append(r.snapshots, &c)
	return nil
}

func (r *InMemorySnapshotRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoreSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.ScoreSnapshot{}
	for i := len(r.snapshots) - 1; i >= 0; i-- {
		s := r.snapshots[i]
		if s.UserID != userID {
			continue
		}
		c := *s
		out = append(out, &c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
