package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const messagePrefix = "solpin upload challenge "

// Store issues single-use signing challenges and checks them on upload. Each
// challenge lives in Redis under a TTL; consuming one deletes it, so a signed
// message can authorize at most one upload.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration) *Store {
	return &Store{
		redis: redisClient,
		ttl:   ttl,
	}
}

// Issue creates a new challenge and returns the exact message the wallet must
// sign, together with its expiry.
func (s *Store) Issue(ctx context.Context) (string, time.Time, error) {
	nonce := uuid.New().String()
	message := messagePrefix + nonce

	expiresAt := time.Now().Add(s.ttl)

	err := s.redis.Set(ctx, key(message), "1", s.ttl).Err()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to store challenge: %w", err)
	}

	return message, expiresAt, nil
}

// Consume atomically checks and invalidates a challenge message. It returns
// false for unknown, expired, or already-consumed messages.
func (s *Store) Consume(ctx context.Context, message string) (bool, error) {
	err := s.redis.GetDel(ctx, key(message)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to consume challenge: %w", err)
	}
	return true, nil
}

func key(message string) string {
	return "challenge:" + message
}
