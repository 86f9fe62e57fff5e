package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-wellness-engine/internal/core/domain"
)

var _ domain.GoalRecordRepository = (*CachedGoalRecordRepository)(nil)

const DefaultGoalCacheTTL = 30 * time.Minute

// CachedGoalRecordRepository keeps ListByUser results in a redis hash per user
// and generation. Writes rotate the user's generation, so a listing read from
// the store before a write can only land in a hash nobody reads anymore.
type CachedGoalRecordRepository struct {
	next  domain.GoalRecordRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedGoalRecordRepository(next domain.GoalRecordRepository, cache *redis.Client, ttl time.Duration) *CachedGoalRecordRepository {
	if ttl <= 0 {
		ttl = DefaultGoalCacheTTL
	}
	return &CachedGoalRecordRepository{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}

func (r *CachedGoalRecordRepository) generationKey(userID string) string {
	return fmt.Sprintf("goal_records:gen:%s", userID)
}

func (r *CachedGoalRecordRepository) cacheKey(userID, generation string) string {
	return fmt.Sprintf("goal_records:%s:%s", userID, generation)
}

func (r *CachedGoalRecordRepository) cacheField(category string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	return fmt.Sprintf("%s|%d", category, limit)
}

// generation returns the user's current cache generation, starting a new one
// when none is live.
func (r *CachedGoalRecordRepository) generation(ctx context.Context, userID string) (string, error) {
	key := r.generationKey(userID)

	gen, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		return gen, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", err
	}

	if err := r.cache.SetNX(ctx, key, uuid.NewString(), r.ttl).Err(); err != nil {
		return "", err
	}
	return r.cache.Get(ctx, key).Result()
}

func (r *CachedGoalRecordRepository) invalidate(ctx context.Context, userID string) {
	key := r.generationKey(userID)

	old, err := r.cache.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Failed to read generation for user %s: %v", userID, err)
	}

	if err := r.cache.Set(ctx, key, uuid.NewString(), r.ttl).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
		return
	}
	if old != "" {
		r.cache.Del(ctx, r.cacheKey(userID, old))
	}
}

func (r *CachedGoalRecordRepository) ListByUser(ctx context.Context, userID, category string, limit int) ([]*domain.GoalRecord, error) {
	gen, err := r.generation(ctx, userID)
	if err != nil {
		log.Printf("[CACHE] Redis read error: %v", err)
		return r.next.ListByUser(ctx, userID, category, limit)
	}

	key := r.cacheKey(userID, gen)
	field := r.cacheField(category, limit)

	val, err := r.cache.HGet(ctx, key, field).Result()
	if err == nil {
		var records []*domain.GoalRecord
		if err := json.Unmarshal([]byte(val), &records); err == nil {
			return records, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	records, err := r.next.ListByUser(ctx, userID, category, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(records); err == nil {
		pipe := r.cache.TxPipeline()
		pipe.HSet(ctx, key, field, data)
		pipe.Expire(ctx, key, r.ttl)
		pipe.Expire(ctx, r.generationKey(userID), r.ttl)
		if _, setErr := pipe.Exec(ctx); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return records, nil
}

func (r *CachedGoalRecordRepository) GetByID(ctx context.Context, id string) (*domain.GoalRecord, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedGoalRecordRepository) Create(ctx context.Context, record *domain.GoalRecord) error {
	if err := r.next.Create(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx, record.UserID)
	return nil
}

func (r *CachedGoalRecordRepository) UpdateGoals(ctx context.Context, record *domain.GoalRecord) error {
	if err := r.next.UpdateGoals(ctx, record); err != nil {
		return err
	}
	r.invalidate(ctx, record.UserID)
	return nil
}
