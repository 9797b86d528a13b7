package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bangla-ai/platform/internal/adapter/cache"
	"github.com/bangla-ai/platform/internal/domain"
)

// TestRedis_CacheAdapter exercises the cache port against a real Redis.
func TestRedis_CacheAdapter(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.Redis == nil {
		t.Skip("Redis not available")
	}

	FlushRedis(t, env.Redis)
	ctx := context.Background()

	appCache, err := cache.NewRedisCache(env.RedisURL, env.Logger)
	if err != nil {
		t.Fatalf("Failed to build cache adapter: %v", err)
	}

	t.Run("SetGet", func(t *testing.T) {
		if err := appCache.Set(ctx, "test:key", "test-value", time.Minute); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}

		val, err := appCache.Get(ctx, "test:key")
		if err != nil {
			t.Fatalf("Failed to get key: %v", err)
		}
		if val != "test-value" {
			t.Errorf("Expected 'test-value', got '%s'", val)
		}
	})

	t.Run("MissingKeyIsNotAnError", func(t *testing.T) {
		val, err := appCache.Get(ctx, "test:absent")
		if err != nil {
			t.Fatalf("Expected nil error for missing key, got %v", err)
		}
		if val != "" {
			t.Errorf("Expected empty value, got '%s'", val)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := appCache.Set(ctx, "test:doomed", "x", time.Minute); err != nil {
			t.Fatalf("Failed to set key: %v", err)
		}
		if err := appCache.Delete(ctx, "test:doomed"); err != nil {
			t.Fatalf("Failed to delete key: %v", err)
		}

		val, err := appCache.Get(ctx, "test:doomed")
		if err != nil || val != "" {
			t.Errorf("Key should be gone, got val=%q err=%v", val, err)
		}
	})

	t.Run("DialogueStateRoundTrip", func(t *testing.T) {
		state := domain.NewDialogueState()
		state.Merge(map[string]string{"order_id": "ORD-4521", "payment_method": "bkash"})

		raw, err := json.Marshal(state)
		if err != nil {
			t.Fatalf("Failed to marshal state: %v", err)
		}
		if err := appCache.Set(ctx, "dialogue:state:demo-shop:conv-1", string(raw), 30*time.Minute); err != nil {
			t.Fatalf("Failed to cache state: %v", err)
		}

		stored, err := appCache.Get(ctx, "dialogue:state:demo-shop:conv-1")
		if err != nil {
			t.Fatalf("Failed to read state: %v", err)
		}

		var restored domain.DialogueState
		if err := json.Unmarshal([]byte(stored), &restored); err != nil {
			t.Fatalf("Failed to unmarshal state: %v", err)
		}
		if restored.Slots["order_id"] != "ORD-4521" {
			t.Errorf("Expected order_id slot to survive, got %+v", restored.Slots)
		}
	})
}

// TestRedis_Expiration verifies TTLs actually expire.
func TestRedis_Expiration(t *testing.T) {
	env := SetupTestEnvironment(t)
	if env == nil || env.Redis == nil {
		t.Skip("Redis not available")
	}

	FlushRedis(t, env.Redis)
	ctx := context.Background()

	err := env.Redis.Set(ctx, "test:expiring", "value", 100*time.Millisecond).Err()
	if err != nil {
		t.Fatalf("Failed to set key: %v", err)
	}

	if _, err := env.Redis.Get(ctx, "test:expiring").Result(); err != nil {
		t.Fatalf("Key should exist: %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	if _, err := env.Redis.Get(ctx, "test:expiring").Result(); err != redis.Nil {
		t.Error("Key should have expired")
	}
}
