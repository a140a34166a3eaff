// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"danset_exchange/internal/feature/pricehistory/domain/entity"
	"danset_exchange/internal/feature/pricehistory/usecase"
)

// CachingPriceRepository decorates a PriceRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Reads are served from Redis while
// fresh; every append invalidates the company's cached series.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// If ttl is 0, it defaults to 30 seconds. If namespace is empty, it uses
// "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Append writes the point through and invalidates the company's cached
// entries.
func (c *CachingPriceRepository) Append(ctx context.Context, p entity.PricePoint) error {
	if err := c.inner.Append(ctx, p); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: a failed invalidation only extends staleness by the TTL
	_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(p.CompanyID)+"*")
	return nil
}

// Latest retrieves the series, checking cache first then falling back to the
// database.
func (c *CachingPriceRepository) Latest(ctx context.Context, companyID uint, limit int) ([]entity.PricePoint, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Latest(ctx, companyID, limit)
	}

	key := c.cacheKey(companyID, limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Latest(ctx, companyID, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates a cache key for a specific query.
func (c *CachingPriceRepository) cacheKey(companyID uint, limit int) string {
	return fmt.Sprintf("%s:%d:%d", c.namespace, companyID, limit)
}

// cacheKeyPrefix generates a prefix for invalidating a company's entries.
func (c *CachingPriceRepository) cacheKeyPrefix(companyID uint) string {
	return fmt.Sprintf("%s:%d:", c.namespace, companyID)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
