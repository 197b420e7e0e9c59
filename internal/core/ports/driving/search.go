package driving

import (
	"context"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
)

// SearchService is the unified, permission-filtered search entry point.
type SearchService interface {
	// Search fans a single query out across the requested entity types
	// concurrently and aggregates the per-type results in request order.
	Search(ctx context.Context, pctx domain.PermissionContext, req domain.SearchRequest) (*domain.UnifiedSearchResult, error)

	// SearchType queries a single entity type.
	SearchType(ctx context.Context, pctx domain.PermissionContext, entityType domain.EntityType, query string, limit int) (*domain.EntityTypeResult, error)

	// Suggest returns prefix-completion suggestions under the same
	// permission filters as a full search.
	Suggest(ctx context.Context, pctx domain.PermissionContext, prefix string, limit int) ([]domain.SearchSuggestion, error)
}
