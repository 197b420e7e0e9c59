package driven

import (
	"context"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
)

// EngineQuery is one bounded query against a single tenant-scoped index.
// The executor owns the semantics (fields, weights, filters); the adapter
// owns the wire format.
type EngineQuery struct {
	// Index is the physical index name resolved by domain.IndexName.
	Index string

	// QueryText is the free-text query. Blank means match everything,
	// ordered by recency.
	QueryText string

	// Fields are the weighted search fields from the field registry.
	Fields []domain.WeightedField

	// Filters are the permission clauses ANDed into the query.
	Filters []domain.FilterClause

	// Highlight lists the fields to return excerpt fragments for.
	Highlight []domain.HighlightField

	// Prefix switches the text query to prefix matching, used by the
	// suggestion endpoint.
	Prefix bool

	// Limit is the maximum number of hits to return.
	Limit int
}

// EngineHit is one raw engine result before redaction.
type EngineHit struct {
	ID         string
	Score      float64
	Source     map[string]any
	Highlights map[string][]string
}

// EngineResult is the normalized engine response for one query.
type EngineResult struct {
	// Total is the number of documents matching the filtered query.
	Total int64
	Hits  []EngineHit
}

// SearchEngine issues queries against the document search engine.
// Implementations enforce the per-query deadline at the call site and
// return domain.ErrIndexNotFound when the target index does not exist.
type SearchEngine interface {
	Search(ctx context.Context, query EngineQuery) (*EngineResult, error)

	// Ping verifies the search engine is reachable.
	Ping(ctx context.Context) error
}
