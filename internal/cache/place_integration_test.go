//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/placehub/placehub/internal/model"
	"github.com/placehub/placehub/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	if err := testutil.FlushRedis(ctx, client); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, NewWithClient(client)
}

func TestIntegrationPlaceCache_Roundtrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	place := &model.Place{
		ID:          "cache-p1",
		Title:       "Cached Place",
		Description: "Kept warm in Redis",
		Address:     "1 Cache Lane",
		Location:    model.Coordinates{Lat: 1.5, Lng: -2.5},
		CreatorID:   "cache-u1",
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
		UpdatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	}

	if err := c.SetPlace(ctx, place); err != nil {
		t.Fatalf("SetPlace failed: %v", err)
	}

	got, err := c.GetPlace(ctx, place.ID)
	if err != nil {
		t.Fatalf("GetPlace failed: %v", err)
	}
	if got.Title != place.Title || got.CreatorID != place.CreatorID {
		t.Errorf("cached place mismatch: got %+v", got)
	}
	if got.Location != place.Location {
		t.Errorf("coordinates mismatch: got %+v, want %+v", got.Location, place.Location)
	}
}

func TestIntegrationPlaceCache_Miss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetPlace(ctx, "never-set"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got: %v", err)
	}
}

func TestIntegrationPlaceCache_Delete(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	place := &model.Place{ID: "cache-p2", Title: "Short-lived", Description: "Soon invalidated"}
	if err := c.SetPlace(ctx, place); err != nil {
		t.Fatalf("SetPlace failed: %v", err)
	}

	if err := c.DeletePlace(ctx, place.ID); err != nil {
		t.Fatalf("DeletePlace failed: %v", err)
	}

	if _, err := c.GetPlace(ctx, place.ID); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after delete, got: %v", err)
	}

	// Deleting an absent key is not an error.
	if err := c.DeletePlace(ctx, "never-set"); err != nil {
		t.Errorf("DeletePlace on absent key failed: %v", err)
	}
}
