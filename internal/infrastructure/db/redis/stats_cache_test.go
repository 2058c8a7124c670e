package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recipehub/recipe-api/internal/core/domain"
)

func TestDecodeStats(t *testing.T) {
	stats, err := decodeStats([]byte(`{"totalUsers":3,"totalRecipes":5,"vegRecipes":2,"nonVegRecipes":3,"lastUpdated":"2025-03-01T12:00:00Z"}`))
	if err != nil {
		t.Fatalf("decodeStats: %v", err)
	}
	if stats.TotalUsers != 3 || stats.TotalRecipes != 5 || stats.VegRecipes != 2 || stats.NonVegRecipes != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if _, err := decodeStats([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestStatsCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewStatsCache(client)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx); err == nil || ok {
		t.Fatalf("expected a read error, got ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, &domain.PlatformStats{TotalUsers: 1}, time.Second); err == nil {
		t.Fatalf("expected a write error")
	}
}
