package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/solpin/solpin-service/internal/storage"
	"github.com/solpin/solpin-service/internal/types"
)

// CacheService wraps storage with Redis caching of the gallery listing. The
// gallery is read far more often than it changes, so listings are cached for
// a short window and invalidated whenever a record is appended.
type CacheService struct {
	storage storage.Storage
	redis   *redis.Client
}

// NewCacheService creates a new cache service
func NewCacheService(storage storage.Storage, redisClient *redis.Client) *CacheService {
	return &CacheService{
		storage: storage,
		redis:   redisClient,
	}
}

// Cache key patterns
const (
	ListCacheKey = "gallery:recent:%d" // gallery:recent:limit
)

// Cache durations
const (
	ListCacheDuration = 30 * time.Second // Hot gallery cache
)

// CreateUpload appends the record through the underlying storage and drops
// any cached listings so the next read sees it.
func (c *CacheService) CreateUpload(record types.UploadRecord) (types.UploadRecord, error) {
	created, err := c.storage.CreateUpload(record)
	if err != nil {
		return types.UploadRecord{}, err
	}

	c.invalidateListings()
	return created, nil
}

// ListUploads returns the cached listing when fresh, otherwise reads through
// to storage. Cache failures degrade to a plain storage read.
func (c *CacheService) ListUploads(limit int) ([]types.UploadRecord, error) {
	ctx := context.Background()
	key := fmt.Sprintf(ListCacheKey, limit)

	// Try cache first
	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		var items []types.UploadRecord
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
	}

	// Cache miss - fetch from database
	items, err := c.storage.ListUploads(limit)
	if err != nil {
		return nil, err
	}

	// Cache the result
	data, _ := json.Marshal(items)
	c.redis.Set(ctx, key, data, ListCacheDuration)

	return items, nil
}

func (c *CacheService) invalidateListings() {
	ctx := context.Background()

	iter := c.redis.Scan(ctx, 0, "gallery:recent:*", 0).Iterator()
	for iter.Next(ctx) {
		c.redis.Del(ctx, iter.Val())
	}
}
