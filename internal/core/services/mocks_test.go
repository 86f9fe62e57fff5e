package services_test

import (
	"context"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

// FakeGoalRepo is a versioned in-memory store that mimics the Postgres
// optimistic locking behaviour.
type FakeGoalRepo struct {
	mu      sync.Mutex
	store   map[string]*domain.GoalRecord
	updates int

	// beforeUpdate runs once, right before the next UpdateGoals is applied.
	beforeUpdate func()
}

func NewFakeGoalRepo(records ...*domain.GoalRecord) *FakeGoalRepo {
	r := &FakeGoalRepo{store: make(map[string]*domain.GoalRecord)}
	for _, rec := range records {
		r.store[rec.ID] = rec.Clone()
	}
	return r
}

func (r *FakeGoalRepo) Create(ctx context.Context, record *domain.GoalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[record.ID]; exists {
		return domain.ErrGoalRecordExists
	}
	if record.Version == 0 {
		record.Version = 1
	}
	r.store[record.ID] = record.Clone()
	return nil
}

func (r *FakeGoalRepo) GetByID(ctx context.Context, id string) (*domain.GoalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.store[id]
	if !ok {
		return nil, domain.ErrGoalRecordNotFound
	}
	return rec.Clone(), nil
}

func (r *FakeGoalRepo) ListByUser(ctx context.Context, userID, category string, limit int) ([]*domain.GoalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []*domain.GoalRecord
	for _, rec := range r.store {
		if rec.UserID == userID && (category == "" || rec.Category == category) {
			list = append(list, rec.Clone())
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].DateGenerated.After(list[j].DateGenerated)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *FakeGoalRepo) UpdateGoals(ctx context.Context, record *domain.GoalRecord) error {
	r.mu.Lock()
	hook := r.beforeUpdate
	r.beforeUpdate = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.store[record.ID]
	if !ok {
		return domain.ErrGoalRecordNotFound
	}
	if existing.Version != record.Version {
		return domain.ErrGoalRecordConflict
	}

	record.Version++
	r.store[record.ID] = record.Clone()
	r.updates++
	return nil
}

func (r *FakeGoalRepo) stored(id string) *domain.GoalRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store[id].Clone()
}

func (r *FakeGoalRepo) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updates
}

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, record *domain.GoalRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.GoalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalRecord), args.Error(1)
}

func (m *MockGoalRepo) ListByUser(ctx context.Context, userID, category string, limit int) ([]*domain.GoalRecord, error) {
	args := m.Called(ctx, userID, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GoalRecord), args.Error(1)
}

func (m *MockGoalRepo) UpdateGoals(ctx context.Context, record *domain.GoalRecord) error {
	return m.Called(ctx, record).Error(0)
}

type MockResponseRepo struct {
	mock.Mock
}

func (m *MockResponseRepo) ListByUser(ctx context.Context, userID, category string) ([]*domain.SurveyResponse, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SurveyResponse), args.Error(1)
}

type MockSnapshotRepo struct {
	mock.Mock
}

func (m *MockSnapshotRepo) Create(ctx context.Context, snapshot *domain.ScoreSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *MockSnapshotRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoreSnapshot, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ScoreSnapshot), args.Error(1)
}

type stubCatalog map[string]int

func (c stubCatalog) Categories() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c stubCatalog) QuestionCount(category string) (int, error) {
	n, ok := c[category]
	if !ok {
		return 0, domain.ErrUnknownCategory
	}
	return n, nil
}

type recordingQueue struct {
	mu    sync.Mutex
	users []string
}

func (q *recordingQueue) Enqueue(userID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.users = append(q.users, userID)
}

func (q *recordingQueue) enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.users...)
}
