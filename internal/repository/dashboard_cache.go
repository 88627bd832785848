package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riptano/statuspage/internal/models"
	"github.com/riptano/statuspage/internal/service"
)

const dashboardCacheKey = "dashboard:public"

// DashboardCache stores the rendered public dashboard in Redis for a short
// interval. The TTL bounds staleness for pure reads; mutating services call
// Invalidate so a write is never followed by a stale hit.
type DashboardCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewDashboardCache(redisClient *redis.Client, ttl time.Duration) service.DashboardCache {
	return &DashboardCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// GetView returns the cached view, or (nil, nil) on a miss.
func (c *DashboardCache) GetView(ctx context.Context) (*models.DashboardView, error) {
	val, err := c.redisClient.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dashboard from cache: %w", err)
	}

	view := &models.DashboardView{}
	if err := json.Unmarshal(val, view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard from cache: %w", err)
	}
	return view, nil
}

// SetView caches the view for the configured TTL.
func (c *DashboardCache) SetView(ctx context.Context, view *models.DashboardView) error {
	val, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, dashboardCacheKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set dashboard in cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached view.
func (c *DashboardCache) Invalidate(ctx context.Context) error {
	if err := c.redisClient.Del(ctx, dashboardCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}
