package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-weekly-engine/internal/core/domain"
	"github.com/redis/go-redis/v9"
)

const weeklyCacheKey = "weekly:state"

var _ domain.WeeklyRepository = (*CachedWeeklyRepository)(nil)

// CachedWeeklyRepository is a write-through redis cache in front of another
// weekly store.
type CachedWeeklyRepository struct {
	next  domain.WeeklyRepository
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedWeeklyRepository(next domain.WeeklyRepository, cache *redis.Client) *CachedWeeklyRepository {
	return &CachedWeeklyRepository{
		next:  next,
		cache: cache,
		ttl:   30 * time.Minute,
	}
}

func (r *CachedWeeklyRepository) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, weeklyCacheKey).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate weekly state: %v", err)
	}
}

func (r *CachedWeeklyRepository) store(ctx context.Context, data *domain.WeeklyData) {
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, weeklyCacheKey, raw, r.ttl).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

func (r *CachedWeeklyRepository) Load(ctx context.Context) (*domain.WeeklyData, error) {
	val, err := r.cache.Get(ctx, weeklyCacheKey).Result()
	if err == nil {
		var data domain.WeeklyData
		if err := json.Unmarshal([]byte(val), &data); err == nil {
			return &data, nil
		}

		log.Printf("[CACHE] Corrupted weekly state, cleaning up key")
		r.invalidate(ctx)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	data, err := r.next.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.store(ctx, data)
	return data, nil
}

func (r *CachedWeeklyRepository) Save(ctx context.Context, data *domain.WeeklyData) error {
	if err := r.next.Save(ctx, data); err != nil {
		r.invalidate(ctx)
		return err
	}
	r.store(ctx, data)
	return nil
}
