package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sony/gobreaker"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchEngine = (*SearchEngine)(nil)

// SearchEngine implements driven.SearchEngine using Elasticsearch.
// All calls pass through a circuit breaker: when the engine is degraded the
// breaker opens and queries fail fast instead of queueing up against a dead
// backend. An open breaker surfaces as ErrSearchUnavailable, which the
// executor absorbs like any other backend fault.
type SearchEngine struct {
	client  *elasticsearch.Client
	breaker *gobreaker.CircuitBreaker
}

// Config holds Elasticsearch connection configuration.
type Config struct {
	// Addresses are the Elasticsearch endpoints.
	Addresses []string

	Username string
	Password string

	// BreakerTimeout is how long the breaker stays open after tripping.
	BreakerTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(addresses ...string) Config {
	return Config{
		Addresses:      addresses,
		BreakerTimeout: 30 * time.Second,
	}
}

// NewSearchEngine creates a new Elasticsearch-backed SearchEngine.
func NewSearchEngine(cfg Config) (*SearchEngine, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	breakerTimeout := cfg.BreakerTimeout
	if breakerTimeout <= 0 {
		breakerTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "elasticsearch",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		// An absent index is an expected condition for fresh tenants, not
		// a backend fault. It must never trip the breaker: the breaker is
		// shared, so counting it would let one unindexed tenant fail every
		// tenant's queries fast.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrIndexNotFound)
		},
	})

	return &SearchEngine{client: client, breaker: breaker}, nil
}

// Search issues one bounded query against one index. An absent index maps
// to domain.ErrIndexNotFound; an open breaker to domain.ErrSearchUnavailable.
func (s *SearchEngine) Search(ctx context.Context, query driven.EngineQuery) (*driven.EngineResult, error) {
	body, err := json.Marshal(buildQueryBody(query))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	out, err := s.breaker.Execute(func() (any, error) {
		return s.doSearch(ctx, query.Index, body)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("%w: circuit open", domain.ErrSearchUnavailable)
		}
		return nil, err
	}
	return out.(*driven.EngineResult), nil
}

func (s *SearchEngine) doSearch(ctx context.Context, index string, body []byte) (*driven.EngineResult, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(strings.NewReader(string(body))),
		s.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == http.StatusNotFound && isIndexNotFound(res.Body) {
			return nil, fmt.Errorf("%w: %s", domain.ErrIndexNotFound, index)
		}
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch search failed: %s: %s", res.Status(), string(raw))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]driven.EngineHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		var score float64
		if h.Score != nil {
			score = *h.Score
		}
		hits = append(hits, driven.EngineHit{
			ID:         h.ID,
			Score:      score,
			Source:     h.Source,
			Highlights: h.Highlight,
		})
	}

	return &driven.EngineResult{
		Total: parsed.Hits.Total.Value,
		Hits:  hits,
	}, nil
}

// Ping verifies the search engine is reachable. It bypasses the breaker so
// readiness probes keep reporting the real backend state while the breaker
// is open.
func (s *SearchEngine) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSearchUnavailable, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("%w: %s", domain.ErrSearchUnavailable, res.Status())
	}
	return nil
}

// buildQueryBody translates an EngineQuery into the Elasticsearch DSL.
func buildQueryBody(query driven.EngineQuery) map[string]any {
	boolQuery := map[string]any{
		"must": []any{textQuery(query)},
	}
	if filters := filterClauses(query.Filters); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body := map[string]any{
		"query":   map[string]any{"bool": boolQuery},
		"size":    query.Limit,
		"timeout": "500ms",
		"sort":    sortSpec(query),
	}
	if highlight := highlightSpec(query.Highlight); highlight != nil {
		body["highlight"] = highlight
	}
	return body
}

func textQuery(query driven.EngineQuery) map[string]any {
	if strings.TrimSpace(query.QueryText) == "" {
		return map[string]any{"match_all": map[string]any{}}
	}

	if query.Prefix {
		// Suggestion queries match a single field by phrase prefix.
		field := "title"
		if len(query.Fields) > 0 {
			field = query.Fields[0].Path
		}
		return map[string]any{
			"match_phrase_prefix": map[string]any{
				field: map[string]any{"query": query.QueryText},
			},
		}
	}

	fields := make([]string, 0, len(query.Fields))
	for _, f := range query.Fields {
		if f.Weight != 1 {
			fields = append(fields, fmt.Sprintf("%s^%g", f.Path, f.Weight))
		} else {
			fields = append(fields, f.Path)
		}
	}
	return map[string]any{
		"multi_match": map[string]any{
			"query":     query.QueryText,
			"fields":    fields,
			"type":      "best_fields",
			"fuzziness": "AUTO",
		},
	}
}

func filterClauses(clauses []domain.FilterClause) []any {
	if len(clauses) == 0 {
		return nil
	}
	out := make([]any, 0, len(clauses))
	for _, clause := range clauses {
		switch clause.Kind {
		case domain.ClauseIDIn:
			out = append(out, map[string]any{
				"terms": map[string]any{clause.Field: clause.Values},
			})
		case domain.ClauseTermEquals:
			var value string
			if len(clause.Values) > 0 {
				value = clause.Values[0]
			}
			out = append(out, map[string]any{
				"term": map[string]any{clause.Field: value},
			})
		default:
			// Unknown clause kinds deny everything. Permission filters
			// fail closed.
			out = append(out, map[string]any{"match_none": map[string]any{}})
		}
	}
	return out
}

func sortSpec(query driven.EngineQuery) []any {
	if strings.TrimSpace(query.QueryText) == "" {
		// Match-everything queries order by recency alone.
		return []any{
			map[string]any{domain.RecencyField: map[string]any{"order": "desc"}},
		}
	}
	return []any{
		map[string]any{"_score": map[string]any{"order": "desc"}},
		map[string]any{domain.RecencyField: map[string]any{"order": "desc"}},
	}
}

func highlightSpec(fields []domain.HighlightField) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	spec := make(map[string]any, len(fields))
	for _, f := range fields {
		spec[f.Path] = map[string]any{
			"fragment_size":       f.FragmentSize,
			"number_of_fragments": f.MaxFragments,
		}
	}
	return map[string]any{"fields": spec}
}

// isIndexNotFound checks whether a 404 body names index_not_found_exception.
// A 404 can also mean a missing endpoint, so the type is checked explicitly.
func isIndexNotFound(body io.Reader) bool {
	var parsed struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return false
	}
	return parsed.Error.Type == "index_not_found_exception"
}

// searchResponse is the subset of the Elasticsearch response we consume.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID        string              `json:"_id"`
			Score     *float64            `json:"_score"`
			Source    map[string]any      `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}
