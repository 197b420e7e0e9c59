package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driving"
)

// Ensure searchService implements SearchService
var _ driving.SearchService = (*searchService)(nil)

const defaultSuggestLimit = 5

// searchService implements the unified search orchestrator. Each entity
// type is queried by an independent branch with no shared mutable state;
// the orchestrator joins all branches before aggregating, so results keep
// the requested order regardless of completion order.
type searchService struct {
	engine  driven.SearchEngine
	filters *PermissionFilterBuilder
	logger  *slog.Logger
}

// NewSearchService creates a new SearchService.
func NewSearchService(engine driven.SearchEngine, filters *PermissionFilterBuilder, logger *slog.Logger) driving.SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &searchService{
		engine:  engine,
		filters: filters,
		logger:  logger,
	}
}

// Search fans the query out to every requested entity type concurrently.
// Only input faults surface as errors; a failing branch degrades to an
// empty result for that type and never blocks the others.
func (s *searchService) Search(ctx context.Context, pctx domain.PermissionContext, req domain.SearchRequest) (*domain.UnifiedSearchResult, error) {
	if err := pctx.Validate(); err != nil {
		return nil, err
	}
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	start := time.Now()

	results := make([]domain.EntityTypeResult, len(req.EntityTypes))
	var wg sync.WaitGroup
	for i, entityType := range req.EntityTypes {
		wg.Add(1)
		go func(slot int, et domain.EntityType) {
			defer wg.Done()
			results[slot] = s.executeType(ctx, pctx, et, req.Query, req.Limit, req.IncludeCustomFields)
		}(i, entityType)
	}
	wg.Wait()

	var total int64
	for _, r := range results {
		total += r.AuthorizedCount
	}

	return &domain.UnifiedSearchResult{
		Query:               req.Query,
		TotalAuthorizedHits: total,
		Results:             results,
		ElapsedMilliseconds: time.Since(start).Milliseconds(),
	}, nil
}

// SearchType queries a single entity type with the same permission and
// fault-isolation semantics as the unified search.
func (s *searchService) SearchType(ctx context.Context, pctx domain.PermissionContext, entityType domain.EntityType, query string, limit int) (*domain.EntityTypeResult, error) {
	if err := pctx.Validate(); err != nil {
		return nil, err
	}
	if !entityType.IsValid() {
		return nil, domain.ErrUnknownEntityType
	}
	if limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if limit == 0 {
		limit = domain.DefaultResultLimit
	}
	if limit > domain.MaxResultLimit {
		limit = domain.MaxResultLimit
	}

	result := s.executeType(ctx, pctx, entityType, query, limit, false)
	return &result, nil
}

// Suggest returns prefix completions on each entity type's title field,
// filtered by the same permission clauses as a full search.
func (s *searchService) Suggest(ctx context.Context, pctx domain.PermissionContext, prefix string, limit int) ([]domain.SearchSuggestion, error) {
	if err := pctx.Validate(); err != nil {
		return nil, err
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	entityTypes := domain.AllEntityTypes()
	perType := make([][]domain.SearchSuggestion, len(entityTypes))

	var wg sync.WaitGroup
	for i, entityType := range entityTypes {
		wg.Add(1)
		go func(slot int, et domain.EntityType) {
			defer wg.Done()
			perType[slot] = s.suggestType(ctx, pctx, et, prefix, limit)
		}(i, entityType)
	}
	wg.Wait()

	suggestions := make([]domain.SearchSuggestion, 0, limit)
	for _, batch := range perType {
		suggestions = append(suggestions, batch...)
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}

// suggestType runs one prefix query; faults degrade to no suggestions for
// the type.
func (s *searchService) suggestType(ctx context.Context, pctx domain.PermissionContext, entityType domain.EntityType, prefix string, limit int) []domain.SearchSuggestion {
	clauses, err := s.filters.BuildFilter(ctx, pctx, entityType)
	if err != nil {
		s.logger.Error("permission filter build failed",
			"entity_type", string(entityType),
			"tenant_id", pctx.TenantID,
			"error", err,
		)
		return nil
	}

	field := domain.SuggestField(entityType)
	queryCtx, cancel := context.WithTimeout(ctx, perQueryTimeout)
	defer cancel()

	res, err := s.engine.Search(queryCtx, driven.EngineQuery{
		Index:     domain.IndexName(pctx.TenantID, entityType),
		QueryText: prefix,
		Fields:    []domain.WeightedField{{Path: field, Weight: 1}},
		Filters:   clauses,
		Limit:     limit,
		Prefix:    true,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrIndexNotFound) {
			s.logger.Warn("suggestion branch failed",
				"entity_type", string(entityType),
				"tenant_id", pctx.TenantID,
				"error", err,
			)
		}
		return nil
	}

	suggestions := make([]domain.SearchSuggestion, 0, len(res.Hits))
	for _, hit := range res.Hits {
		text, _ := hit.Source[field].(string)
		if text == "" {
			continue
		}
		suggestions = append(suggestions, domain.SearchSuggestion{
			Text:       text,
			EntityType: entityType,
			Score:      hit.Score,
		})
	}
	return suggestions
}
