package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates an in-memory Redis server for testing
func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
		DB:   0,
	})

	// Test connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Failed to connect to test Redis: %v", err)
	}

	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}

	return redisClient, cleanup
}

func TestTokenBucket_Allow(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	// 5 uploads per minute per client
	bucket := NewTokenBucket(redisClient, 5, 5)

	ctx := context.Background()
	clientIP := "203.0.113.7"
	action := "upload"

	for i := 0; i < 5; i++ {
		allowed, err := bucket.Allow(ctx, clientIP, action)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}

	// The 6th request is denied
	allowed, err := bucket.Allow(ctx, clientIP, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("Expected request to be denied after limit reached")
	}

	remaining, err := bucket.GetRemaining(ctx, clientIP, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("Expected 0 remaining tokens, got %d", remaining)
	}
}

func TestTokenBucket_SubjectsAreIndependent(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	bucket := NewTokenBucket(redisClient, 1, 1)
	ctx := context.Background()

	allowed, err := bucket.Allow(ctx, "203.0.113.7", "upload")
	if err != nil || !allowed {
		t.Fatalf("expected first client to be allowed, got %v, %v", allowed, err)
	}

	// First client is now exhausted, a different client still has tokens.
	allowed, err = bucket.Allow(ctx, "203.0.113.7", "upload")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if allowed {
		t.Fatal("expected exhausted client to be denied")
	}

	allowed, err = bucket.Allow(ctx, "198.51.100.9", "upload")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !allowed {
		t.Fatal("expected a different client to be allowed")
	}
}

func TestTokenBucket_GetRemaining(t *testing.T) {
	redisClient, cleanup := setupTestRedis(t)
	defer cleanup()

	bucket := NewTokenBucket(redisClient, 10, 10)

	ctx := context.Background()
	clientIP := "192.0.2.1"
	action := "upload"

	remaining, err := bucket.GetRemaining(ctx, clientIP, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if remaining != 10 {
		t.Fatalf("Expected 10 remaining tokens, got %d", remaining)
	}

	for i := 0; i < 3; i++ {
		bucket.Allow(ctx, clientIP, action)
	}

	remaining, err = bucket.GetRemaining(ctx, clientIP, action)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if remaining != 7 {
		t.Fatalf("Expected 7 remaining tokens, got %d", remaining)
	}
}
