package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placehub/placehub/internal/model"
)

// Cache key prefix and TTL for place records.
const (
	placeKeyPrefix = "place:"

	// DefaultPlaceTTL is the TTL for cached place data. Reads served
	// from cache may briefly lag an in-flight write; mutations
	// invalidate eagerly.
	DefaultPlaceTTL = 10 * time.Minute
)

// ErrCacheMiss indicates the key is not in cache.
var ErrCacheMiss = errors.New("cache miss")

// GetPlace retrieves a place from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetPlace(ctx context.Context, id string) (*model.Place, error) {
	data, err := c.client.Get(ctx, placeKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var place model.Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, fmt.Errorf("failed to decode cached place: %w", err)
	}

	return &place, nil
}

// SetPlace stores a place in cache.
func (c *Cache) SetPlace(ctx context.Context, place *model.Place) error {
	data, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("failed to encode place: %w", err)
	}

	if err := c.client.Set(ctx, placeKeyPrefix+place.ID, data, DefaultPlaceTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache place: %w", err)
	}

	return nil
}

// DeletePlace removes a place from cache. Called on update and delete so
// subsequent reads observe the committed state.
func (c *Cache) DeletePlace(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, placeKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete place from cache: %w", err)
	}
	return nil
}
