package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/meetwise/meetwise-api/internal/models"
	appErrors "github.com/meetwise/meetwise-api/pkg/errors"
)

const availabilityKeyPrefix = "availability:participant:"

// AvailabilityCacheRepository stores fetched free intervals in Redis, one
// JSON payload per participant. A nil client disables the cache.
type AvailabilityCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAvailabilityCacheRepository constructs the cache repository. The TTL
// should exceed the accessor's freshness threshold so staleness decisions stay
// with the accessor rather than with Redis eviction.
func NewAvailabilityCacheRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AvailabilityCacheRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityCacheRepository{client: client, ttl: ttl, logger: logger}
}

// Lookup retrieves the cached payload for a participant.
func (r *AvailabilityCacheRepository) Lookup(ctx context.Context, id models.ParticipantID) (*models.CachedAvailability, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, availabilityKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", availabilityKey(id), err)
	}

	var payload models.CachedAvailability
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal cached availability for %s: %w", id, err)
	}

	return &payload, nil
}

// Store writes the payload for a participant with the configured TTL.
func (r *AvailabilityCacheRepository) Store(ctx context.Context, id models.ParticipantID, payload models.CachedAvailability) error {
	if r.client == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal cached availability for %s: %w", id, err)
	}

	if err := r.client.Set(ctx, availabilityKey(id), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", availabilityKey(id), err)
	}

	return nil
}

// Invalidate drops the cached payload for a participant.
func (r *AvailabilityCacheRepository) Invalidate(ctx context.Context, id models.ParticipantID) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, availabilityKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", availabilityKey(id), err)
	}
	return nil
}

func availabilityKey(id models.ParticipantID) string {
	return availabilityKeyPrefix + string(id)
}
