// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"membership_backend/internal/feature/plans/domain/entity"
	"membership_backend/internal/feature/plans/usecase"
)

// CachingPlanRepository decorates a PlanRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Plans change rarely but are read on
// every application and on the public payment-details page, so the read
// paths are cached and every write invalidates the whole namespace.
type CachingPlanRepository struct {
	inner     usecase.PlanRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingPlanRepository implements PlanRepository.
var _ usecase.PlanRepository = (*CachingPlanRepository)(nil)

// NewCachingPlanRepository decorates a PlanRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "plans".
func NewCachingPlanRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PlanRepository, namespace string) *CachingPlanRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "plans"
	}
	return &CachingPlanRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a plan and invalidates the cache.
func (c *CachingPlanRepository) Create(ctx context.Context, p *entity.Plan) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID retrieves a plan, checking cache first then falling back to the
// database.
func (c *CachingPlanRepository) FindByID(ctx context.Context, id uint) (*entity.Plan, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := fmt.Sprintf("%s:id:%d", c.namespace, id)
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var p entity.Plan
		if err := json.Unmarshal(b, &p); err == nil {
			return &p, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	p, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(p); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err() // Best effort
	}
	return p, nil
}

// Latest retrieves the newest plan, checking cache first.
func (c *CachingPlanRepository) Latest(ctx context.Context) (*entity.Plan, error) {
	if c.rdb == nil {
		return c.inner.Latest(ctx)
	}

	key := c.namespace + ":latest"
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var p entity.Plan
		if err := json.Unmarshal(b, &p); err == nil {
			return &p, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	p, err := c.inner.Latest(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(p); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return p, nil
}

// List retrieves all plans, checking cache first.
func (c *CachingPlanRepository) List(ctx context.Context) ([]entity.Plan, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.namespace + ":list"
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var plans []entity.Plan
		if err := json.Unmarshal(b, &plans); err == nil {
			return plans, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	plans, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(plans); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return plans, nil
}

// Update persists a plan edit and invalidates the cache.
func (c *CachingPlanRepository) Update(ctx context.Context, p *entity.Plan) error {
	if err := c.inner.Update(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// Delete removes a plan and invalidates the cache.
func (c *CachingPlanRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// DropLegacyUniqueIndexes passes through to the underlying repository.
func (c *CachingPlanRepository) DropLegacyUniqueIndexes(ctx context.Context) error {
	return c.inner.DropLegacyUniqueIndexes(ctx)
}

// invalidate deletes every cache key in the namespace using SCAN.
// Best effort: a failed invalidation only shortens cache coherence to the TTL.
func (c *CachingPlanRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, c.namespace+":*", 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return
			}
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}
