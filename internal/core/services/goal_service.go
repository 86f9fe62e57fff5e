package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

// maxCompleteAttempts bounds the re-read/re-apply loop on version conflicts.
const maxCompleteAttempts = 3

type QuestionCatalog interface {
	Categories() []string
	QuestionCount(category string) (int, error)
}

// SnapshotQueue is notified whenever a user's goals change.
type SnapshotQueue interface {
	Enqueue(userID string)
}

type GoalService struct {
	repo    domain.GoalRecordRepository
	catalog QuestionCatalog
	clock   clock.Clock
	queue   SnapshotQueue
	locks   *recordLocks
}

func NewGoalService(repo domain.GoalRecordRepository, catalog QuestionCatalog, clk clock.Clock, queue SnapshotQueue) *GoalService {
	if clk == nil {
		clk = clock.Real{}
	}
	return &GoalService{
		repo:    repo,
		catalog: catalog,
		clock:   clk,
		queue:   queue,
		locks:   newRecordLocks(),
	}
}

func (s *GoalService) checkCategory(category string) error {
	if s.catalog == nil {
		return nil
	}
	_, err := s.catalog.QuestionCount(category)
	return err
}

// FetchLatest returns the most recently generated record for the category,
// or nil when no goals were ever generated for it.
func (s *GoalService) FetchLatest(ctx context.Context, userID, category string) (*domain.GoalRecord, error) {
	if err := s.checkCategory(category); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByUser(ctx, userID, category, 1)
	if err != nil {
		return nil, fmt.Errorf("goal service: fetch latest %s: %w", category, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (s *GoalService) ListHistory(ctx context.Context, userID, category string) ([]*domain.GoalRecord, error) {
	if err := s.checkCategory(category); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByUser(ctx, userID, category, 0)
	if err != nil {
		return nil, fmt.Errorf("goal service: list history %s: %w", category, err)
	}
	return records, nil
}

func (s *GoalService) Progress(record *domain.GoalRecord) domain.GoalProgress {
	return record.Progress()
}

// RecordGeneratedGoals stores a new batch of goal texts produced by the goal
// generator. The new record supersedes earlier ones for the category.
func (s *GoalService) RecordGeneratedGoals(ctx context.Context, userID, category string, texts []string) (*domain.GoalRecord, error) {
	if err := s.checkCategory(category); err != nil {
		return nil, err
	}

	record, err := domain.NewGoalRecord(userID, category, texts, s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("goal service: create record: %w", err)
	}

	s.notify(userID)
	return record, nil
}

// CompleteGoalByID loads the record, checks it belongs to userID and category,
// and completes the goal at index. Records outside that scope are reported as
// not found.
func (s *GoalService) CompleteGoalByID(ctx context.Context, userID, category, recordID string, index int) (*domain.GoalRecord, bool, error) {
	record, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, false, err
	}
	if record.UserID != userID || record.Category != category {
		return nil, false, domain.ErrGoalRecordNotFound
	}

	ok, err := s.CompleteGoal(ctx, record, index)
	if err != nil {
		return nil, false, err
	}
	return record, ok, nil
}

// CompleteGoal marks goal index of record as completed and persists the whole
// goals array together with the recomputed IsCompleted flag.
//
// It returns false without writing when the goal is already completed, and
// ErrGoalIndexOutOfRange for a bad index. Calls for the same record are
// serialized; a version conflict with another writer triggers a re-read and
// the completion is applied again on the fresh copy. record is only modified
// once the write has succeeded (or a re-read showed the goal already done).
func (s *GoalService) CompleteGoal(ctx context.Context, record *domain.GoalRecord, index int) (bool, error) {
	if record == nil {
		return false, domain.ErrGoalRecordNotFound
	}

	unlock := s.locks.lock(record.ID)
	defer unlock()

	working := record.Clone()

	for attempt := 1; ; attempt++ {
		changed, err := working.CompleteGoal(index, s.clock.Now())
		if err != nil {
			return false, err
		}
		if !changed {
			if attempt > 1 {
				*record = *working
			}
			return false, nil
		}

		err = s.repo.UpdateGoals(ctx, working)
		if err == nil {
			*record = *working
			log.Printf("[GOALS] Completed goal %d of record %s (%s)", index, record.ID, record.Category)
			s.notify(record.UserID)
			return true, nil
		}

		if !errors.Is(err, domain.ErrGoalRecordConflict) || attempt >= maxCompleteAttempts {
			return false, fmt.Errorf("goal service: complete goal %d of record %s: %w", index, record.ID, err)
		}

		fresh, err := s.repo.GetByID(ctx, record.ID)
		if err != nil {
			return false, fmt.Errorf("goal service: reload record %s: %w", record.ID, err)
		}
		if fresh.UserID != record.UserID || fresh.Category != record.Category {
			return false, domain.ErrGoalRecordNotFound
		}
		working = fresh.Clone()
	}
}

func (s *GoalService) notify(userID string) {
	if s.queue != nil {
		s.queue.Enqueue(userID)
	}
}

// recordLocks hands out one mutex per record id, dropping it once unused.
type recordLocks struct {
	mu    sync.Mutex
	locks map[string]*recordLock
}

type recordLock struct {
	mu   sync.Mutex
	refs int
}

func newRecordLocks() *recordLocks {
	return &recordLocks{locks: make(map[string]*recordLock)}
}

func (l *recordLocks) lock(id string) func() {
	l.mu.Lock()
	rl, ok := l.locks[id]
	if !ok {
		rl = &recordLock{}
		l.locks[id] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.mu.Lock()

	return func() {
		rl.mu.Unlock()

		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
