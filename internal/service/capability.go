package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/reachforge/reachforge/internal/domain/capability"
	"github.com/reachforge/reachforge/internal/port/cache"
	"github.com/reachforge/reachforge/internal/port/database"
)

// Cache keys for the global TC3D catalogs.
const (
	cacheKeyTools = "tc3d:tools"
	cacheKeyTiers = "tc3d:tiers"
	cacheKeyTasks = "tc3d:tasks"
)

// CapabilityService serves the TC3D reference catalogs and per-user
// capability scores. The catalogs are global read-only data, so they
// sit behind the in-process cache.
type CapabilityService struct {
	store    database.Store
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewCapabilityService creates a new capability service. c may be nil
// to bypass caching in tests.
func NewCapabilityService(store database.Store, c cache.Cache, ttl time.Duration) *CapabilityService {
	return &CapabilityService{store: store, cache: c, cacheTTL: ttl}
}

// ListTools returns the tool catalog, category then name.
func (s *CapabilityService) ListTools(ctx context.Context) ([]capability.Tool, error) {
	return cachedList(ctx, s, cacheKeyTools, s.store.ListTools)
}

// ListTiers returns the tier catalog.
func (s *CapabilityService) ListTiers(ctx context.Context) ([]capability.Tier, error) {
	return cachedList(ctx, s, cacheKeyTiers, s.store.ListTiers)
}

// ListTasks returns the task catalog.
func (s *CapabilityService) ListTasks(ctx context.Context) ([]capability.Task, error) {
	return cachedList(ctx, s, cacheKeyTasks, s.store.ListCatalogTasks)
}

// ListScores returns the caller's capability scores.
func (s *CapabilityService) ListScores(ctx context.Context, userID string) ([]capability.Score, error) {
	return s.store.ListCapabilityScores(ctx, userID)
}

// UpsertScore creates or updates the caller's score for a (tool, task)
// key. The flag reports whether a new row was inserted.
func (s *CapabilityService) UpsertScore(ctx context.Context, userID string, req *capability.UpsertRequest) (*capability.Score, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	return s.store.UpsertCapabilityScore(ctx, userID, req)
}

// cachedList serves a catalog from the cache, falling back to the
// store and repopulating on a miss. Cache failures degrade to direct
// reads.
func cachedList[T any](ctx context.Context, s *CapabilityService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var items []T
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				slog.Debug("catalog cache set failed", "key", key, "error", err)
			}
		}
	}
	return items, nil
}
