package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avelkov/focusboard/internal/core/domain"
)

var _ domain.AchievementRepository = (*CachedAchievementRepository)(nil)

// CachedAchievementRepository keeps each user's earned list in redis.
// Earned rows are append-only, so the entry only needs invalidating
// when a new achievement lands.
type CachedAchievementRepository struct {
	next  domain.AchievementRepository
	cache *redis.Client
}

func NewCachedAchievementRepository(next domain.AchievementRepository, cache *redis.Client) *CachedAchievementRepository {
	return &CachedAchievementRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedAchievementRepository) cacheKey(userID string) string {
	return fmt.Sprintf("achievements:%s", userID)
}

func (r *CachedAchievementRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate for user %s: %v", userID, err)
	}
}

func (r *CachedAchievementRepository) Create(ctx context.Context, earned *domain.EarnedAchievement) error {
	if err := r.next.Create(ctx, earned); err != nil {
		return err
	}
	r.invalidate(ctx, earned.UserID)
	return nil
}

func (r *CachedAchievementRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EarnedAchievement, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var earned []*domain.EarnedAchievement
		if err := json.Unmarshal([]byte(val), &earned); err == nil {
			return earned, nil
		}

		log.Printf("[CACHE] Corrupted data for user %s, cleaning up key", userID)
		r.cache.Del(ctx, key)
	} else if err != redis.Nil {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	earned, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(earned); err == nil {
		if setErr := r.cache.Set(ctx, key, data, 30*time.Minute).Err(); setErr != nil {
			log.Printf("[CACHE] Redis set error: %v", setErr)
		}
	}

	return earned, nil
}

func (r *CachedAchievementRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	return r.next.CountByUserID(ctx, userID)
}
