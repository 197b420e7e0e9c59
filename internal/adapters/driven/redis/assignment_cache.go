package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AssignmentStore = (*AssignmentCache)(nil)

// DefaultAssignmentTTL bounds how stale a cached assignment set can get.
// Assignment changes take effect on search results within this window.
const DefaultAssignmentTTL = 60 * time.Second

// AssignmentCache is a read-through cache over an AssignmentStore.
// Cache faults are never surfaced: a Redis failure falls back to the
// underlying store, so permission decisions stay correct when the cache is
// down.
type AssignmentCache struct {
	inner  driven.AssignmentStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewAssignmentCache wraps an AssignmentStore with a Redis cache.
func NewAssignmentCache(inner driven.AssignmentStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *AssignmentCache {
	if ttl <= 0 {
		ttl = DefaultAssignmentTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AssignmentCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// AssignedCaseIDs returns the user's assigned case ids, from cache when
// fresh.
func (c *AssignmentCache) AssignedCaseIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	key := fmt.Sprintf("assignments:%s:%s", tenantID, userID)

	if ids, ok := c.get(ctx, key); ok {
		return ids, nil
	}

	ids, err := c.inner.AssignedCaseIDs(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, ids)
	return ids, nil
}

// LinkedEntityIDs resolves linked entity ids, from cache when fresh.
// The key is derived from the parent case id set, so different assignment
// sets never share an entry.
func (c *AssignmentCache) LinkedEntityIDs(ctx context.Context, tenantID string, entityType domain.EntityType, caseIDs []string) ([]string, error) {
	key := fmt.Sprintf("linked:%s:%s:%s", tenantID, string(entityType), strings.Join(caseIDs, ","))

	if ids, ok := c.get(ctx, key); ok {
		return ids, nil
	}

	ids, err := c.inner.LinkedEntityIDs(ctx, tenantID, entityType, caseIDs)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, ids)
	return ids, nil
}

func (c *AssignmentCache) get(ctx context.Context, key string) ([]string, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("assignment cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		c.logger.Warn("assignment cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return ids, true
}

func (c *AssignmentCache) set(ctx context.Context, key string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("assignment cache write failed", "key", key, "error", err)
	}
}
