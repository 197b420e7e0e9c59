package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/metrics"
)

// perQueryTimeout bounds every single engine query. Because entity-type
// branches run concurrently, it also roughly bounds the whole request.
const perQueryTimeout = 500 * time.Millisecond

// executeType runs one bounded, permission-filtered query against one
// tenant-scoped index. It never fails past its own boundary: every outcome,
// success or fault, is a normal EntityTypeResult value.
func (s *searchService) executeType(ctx context.Context, pctx domain.PermissionContext, entityType domain.EntityType, query string, limit int, includeCustomFields bool) (result domain.EntityTypeResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("search branch panicked",
				"entity_type", string(entityType),
				"tenant_id", pctx.TenantID,
				"panic", r,
			)
			result = domain.EmptyResult(entityType, domain.CauseBackendFault)
		}
		metrics.ObserveSearchBranch(string(entityType), string(result.Cause), time.Since(start).Seconds())
	}()

	clauses, err := s.filters.BuildFilter(ctx, pctx, entityType)
	if err != nil {
		s.logger.Error("permission filter build failed",
			"entity_type", string(entityType),
			"tenant_id", pctx.TenantID,
			"error", err,
		)
		return domain.EmptyResult(entityType, domain.CauseBackendFault)
	}

	engineQuery := driven.EngineQuery{
		Index:     domain.IndexName(pctx.TenantID, entityType),
		QueryText: strings.TrimSpace(query),
		Fields:    domain.SearchFields(entityType, includeCustomFields),
		Filters:   clauses,
		Highlight: domain.HighlightFields(entityType),
		Limit:     limit,
	}

	queryCtx, cancel := context.WithTimeout(ctx, perQueryTimeout)
	defer cancel()

	res, err := s.engine.Search(queryCtx, engineQuery)
	if err != nil {
		return s.degrade(pctx, entityType, err)
	}

	excluded := domain.ExcludedFields(pctx, entityType)

	hits := make([]domain.Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, domain.Hit{
			DocumentID: h.ID,
			EntityType: entityType,
			Score:      h.Score,
			Document:   redactDocument(h.Source, excluded),
			Highlights: redactHighlights(h.Highlights, excluded),
		})
	}

	// Relevance descending, recency descending on ties. The engine sorts
	// too; this keeps the ordering contract independent of the backend.
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return recency(hits[i].Document) > recency(hits[j].Document)
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	return domain.EntityTypeResult{
		EntityType:      entityType,
		AuthorizedCount: res.Total,
		Hits:            hits,
		Cause:           domain.CauseOK,
	}
}

// degrade maps an engine failure to the empty-result shape. An absent index
// is expected for fresh tenants; everything else is logged with entity-type
// and tenant context.
func (s *searchService) degrade(pctx domain.PermissionContext, entityType domain.EntityType, err error) domain.EntityTypeResult {
	switch {
	case errors.Is(err, domain.ErrIndexNotFound):
		return domain.EmptyResult(entityType, domain.CauseIndexMissing)
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Warn("search branch timed out",
			"entity_type", string(entityType),
			"tenant_id", pctx.TenantID,
			"timeout", perQueryTimeout.String(),
		)
		return domain.EmptyResult(entityType, domain.CauseTimeout)
	default:
		s.logger.Error("search branch failed",
			"entity_type", string(entityType),
			"tenant_id", pctx.TenantID,
			"error", err,
		)
		return domain.EmptyResult(entityType, domain.CauseBackendFault)
	}
}

// recency reads the recency field as its sortable string form. Indexed
// timestamps are RFC 3339, which compares correctly as text.
func recency(doc map[string]any) string {
	if doc == nil {
		return ""
	}
	v, _ := doc[domain.RecencyField].(string)
	return v
}

// redactDocument removes excluded field paths from a copy of the document.
// Paths are dotted; intermediate segments traverse nested objects.
func redactDocument(source map[string]any, excluded []string) map[string]any {
	if source == nil {
		return nil
	}
	doc := deepCopy(source)
	for _, path := range excluded {
		removePath(doc, strings.Split(path, "."))
	}
	return doc
}

func redactHighlights(highlights map[string][]string, excluded []string) map[string][]string {
	if len(highlights) == 0 || len(excluded) == 0 {
		return highlights
	}
	out := make(map[string][]string, len(highlights))
	for field, fragments := range highlights {
		blocked := false
		for _, path := range excluded {
			if field == path || strings.HasPrefix(field, path+".") {
				blocked = true
				break
			}
		}
		if !blocked {
			out[field] = fragments
		}
	}
	return out
}

func removePath(doc map[string]any, segments []string) {
	if len(segments) == 0 {
		return
	}
	if len(segments) == 1 {
		delete(doc, segments[0])
		return
	}
	switch child := doc[segments[0]].(type) {
	case map[string]any:
		removePath(child, segments[1:])
	case []any:
		for _, elem := range child {
			if m, ok := elem.(map[string]any); ok {
				removePath(m, segments[1:])
			}
		}
	}
}

func deepCopy(source map[string]any) map[string]any {
	out := make(map[string]any, len(source))
	for k, v := range source {
		switch typed := v.(type) {
		case map[string]any:
			out[k] = deepCopy(typed)
		case []any:
			copied := make([]any, len(typed))
			for i, elem := range typed {
				if m, ok := elem.(map[string]any); ok {
					copied[i] = deepCopy(m)
				} else {
					copied[i] = elem
				}
			}
			out[k] = copied
		default:
			out[k] = v
		}
	}
	return out
}
