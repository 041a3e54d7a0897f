package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bookwise/bookwise/internal/entity"

	"github.com/redis/go-redis/v9"
)

// CacheRepository keeps hot per-user reads (notification preferences) out of
// Postgres. Entries are invalidated on every preference write.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetPreferences(ctx context.Context, prefs *entity.NotificationPreferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, "prefs:"+prefs.UserID, data, r.ttl).Err()
}

func (r *CacheRepository) GetPreferences(ctx context.Context, userID string) (*entity.NotificationPreferences, error) {
	data, err := r.client.Get(ctx, "prefs:"+userID).Result()
	if err != nil {
		return nil, err
	}

	var prefs entity.NotificationPreferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *CacheRepository) DeletePreferences(ctx context.Context, userID string) error {
	return r.client.Del(ctx, "prefs:"+userID).Err()
}
