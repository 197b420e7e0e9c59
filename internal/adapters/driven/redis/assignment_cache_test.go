package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven/mocks"
)

func setupCache(t *testing.T) (*AssignmentCache, *mocks.MockAssignmentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := mocks.NewMockAssignmentStore()
	cache := NewAssignmentCache(store, client, 30*time.Second, nil)
	return cache, store, mr
}

func TestAssignedCaseIDsCaches(t *testing.T) {
	cache, store, _ := setupCache(t)
	store.Assign("tenant-1", "user-1", "case-1", "case-2")

	ids, err := cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"case-1", "case-2"}, ids)
	assert.Equal(t, 1, store.LookupCount)

	// Second read is served from cache.
	ids, err = cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"case-1", "case-2"}, ids)
	assert.Equal(t, 1, store.LookupCount, "expected cache hit, not a store read")
}

func TestAssignedCaseIDsExpiry(t *testing.T) {
	cache, store, mr := setupCache(t)
	store.Assign("tenant-1", "user-1", "case-1")

	_, err := cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)

	_, err = cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, store.LookupCount, "expected expired entry to refetch")
}

func TestAssignedCaseIDsEmptySetCached(t *testing.T) {
	cache, store, _ := setupCache(t)

	// No assignments: the empty result is cached too, so repeated denied
	// searches don't hammer the store.
	for i := 0; i < 3; i++ {
		ids, err := cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
		require.NoError(t, err)
		assert.Empty(t, ids)
	}
	assert.Equal(t, 1, store.LookupCount)
}

func TestLinkedEntityIDsKeyedByCaseSet(t *testing.T) {
	cache, store, _ := setupCache(t)
	store.Link("tenant-1", domain.EntityTypeInvestigation, "case-1", "inv-1")
	store.Link("tenant-1", domain.EntityTypeInvestigation, "case-2", "inv-2")

	ids, err := cache.LinkedEntityIDs(context.Background(), "tenant-1", domain.EntityTypeInvestigation, []string{"case-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"inv-1"}, ids)

	// A different case set must not reuse the first entry.
	ids, err = cache.LinkedEntityIDs(context.Background(), "tenant-1", domain.EntityTypeInvestigation, []string{"case-1", "case-2"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Equal(t, 2, store.LookupCount)
}

func TestCacheFaultFallsThroughToStore(t *testing.T) {
	cache, store, mr := setupCache(t)
	store.Assign("tenant-1", "user-1", "case-1")

	// Kill Redis: reads and writes fail, but answers stay correct.
	mr.Close()

	ids, err := cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
	require.NoError(t, err, "cache fault must not surface")
	assert.Equal(t, []string{"case-1"}, ids)
	assert.Equal(t, 1, store.LookupCount)
}

func TestStoreErrorSurfaces(t *testing.T) {
	cache, store, _ := setupCache(t)
	store.FailWith(context.DeadlineExceeded)

	_, err := cache.AssignedCaseIDs(context.Background(), "tenant-1", "user-1")
	require.Error(t, err)
}
