package workers

import (
	"context"
	"log"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/clock"
	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

const DefaultQueueSize = 100

type OverviewSource interface {
	Overview(ctx context.Context, userID string) (*domain.HealthOverview, error)
}

type SnapshotStore interface {
	Create(ctx context.Context, snapshot *domain.ScoreSnapshot) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.ScoreSnapshot, error)
}

type SnapshotJob struct {
	UserID string
}

// SnapshotWorker recomputes a user's overview in the background and stores a
// snapshot whenever the overall score, label or completion moved.
type SnapshotWorker struct {
	source OverviewSource
	store  SnapshotStore
	clock  clock.Clock
	jobs   chan SnapshotJob
}

func NewSnapshotWorker(source OverviewSource, store SnapshotStore, clk clock.Clock, queueSize int) *SnapshotWorker {
	if clk == nil {
		clk = clock.Real{}
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &SnapshotWorker{
		source: source,
		store:  store,
		clock:  clk,
		jobs:   make(chan SnapshotJob, queueSize),
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Snapshot worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("[WORKER] Snapshot worker shutting down...")
				return
			}
		}
	}()
}

func (w *SnapshotWorker) Enqueue(userID string) {
	select {
	case w.jobs <- SnapshotJob{UserID: userID}:
	default:
		log.Printf("[WORKER] Snapshot queue full! Dropping job for user %s", userID)
	}
}

func (w *SnapshotWorker) processJob(ctx context.Context, job SnapshotJob) {
	overview, err := w.source.Overview(ctx, job.UserID)
	if err != nil {
		log.Printf("[WORKER] Error computing overview for %s: %v", job.UserID, err)
		return
	}

	latest, err := w.store.ListByUser(ctx, job.UserID, 1)
	if err != nil {
		log.Printf("[WORKER] Error fetching latest snapshot for %s: %v", job.UserID, err)
		return
	}

	var previous *domain.ScoreSnapshot
	if len(latest) > 0 {
		previous = latest[0]
	}

	next := domain.NewScoreSnapshot(overview, w.clock.Now())
	if !snapshotChanged(previous, next) {
		return
	}

	if err := w.store.Create(ctx, next); err != nil {
		log.Printf("[WORKER] Failed to store snapshot for %s: %v", job.UserID, err)
		return
	}
	log.Printf("[WORKER] Snapshot stored for %s: Score=%.2f Label=%s", job.UserID, next.OverallScore, next.Label)
}

func snapshotChanged(previous, next *domain.ScoreSnapshot) bool {
	if previous == nil {
		return true
	}
	return previous.OverallScore != next.OverallScore ||
		previous.Label != next.Label ||
		domain.RoundScore(previous.CompletionPercentage) != domain.RoundScore(next.CompletionPercentage)
}
