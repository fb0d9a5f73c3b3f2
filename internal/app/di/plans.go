// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"membership_backend/internal/feature/plans/adapters"
	"membership_backend/internal/feature/plans/usecase"
	"membership_backend/internal/platform/cache"
)

// NewPlanRepository creates a PlanRepository implementation.
// If Redis is available, the MySQL repository is wrapped with a caching
// decorator. Otherwise the plain repository is returned.
func NewPlanRepository(rdb *redis.Client, db *gorm.DB) usecase.PlanRepository {
	repo := adapters.NewPlanMySQL(db)
	if rdb != nil {
		return cache.NewCachingPlanRepository(rdb, 5*time.Minute, repo, "plans")
	}
	return repo
}
