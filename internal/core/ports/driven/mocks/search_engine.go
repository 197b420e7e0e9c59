package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
)

// MockSearchEngine is a mock implementation of SearchEngine for testing.
// Indices must be registered explicitly: querying an unregistered index
// returns domain.ErrIndexNotFound, matching the real engine for tenants
// with nothing indexed yet.
type MockSearchEngine struct {
	mu      sync.RWMutex
	indices map[string][]driven.EngineHit
	errs    map[string]error
	delays  map[string]time.Duration
	pingErr error

	// Queries records every executed query for audit assertions.
	Queries []driven.EngineQuery
}

// NewMockSearchEngine creates a new MockSearchEngine
func NewMockSearchEngine() *MockSearchEngine {
	return &MockSearchEngine{
		indices: make(map[string][]driven.EngineHit),
		errs:    make(map[string]error),
		delays:  make(map[string]time.Duration),
	}
}

// CreateIndex registers an index so queries against it succeed.
func (m *MockSearchEngine) CreateIndex(index string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.indices[index]; !ok {
		m.indices[index] = nil
	}
}

// AddDocument registers a document under an index.
func (m *MockSearchEngine) AddDocument(index string, hit driven.EngineHit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indices[index] = append(m.indices[index], hit)
}

// FailWith forces queries against an index to return err.
func (m *MockSearchEngine) FailWith(index string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[index] = err
}

// DelayFor makes queries against an index block for d before answering.
func (m *MockSearchEngine) DelayFor(index string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delays[index] = d
}

// FailPing forces Ping to return err.
func (m *MockSearchEngine) FailPing(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

func (m *MockSearchEngine) Search(ctx context.Context, query driven.EngineQuery) (*driven.EngineResult, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	docs, indexExists := m.indices[query.Index]
	forcedErr := m.errs[query.Index]
	delay := m.delays[query.Index]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if forcedErr != nil {
		return nil, forcedErr
	}
	if !indexExists {
		return nil, domain.ErrIndexNotFound
	}

	var hits []driven.EngineHit
	for _, doc := range docs {
		if !matchesClauses(doc, query.Filters) {
			continue
		}
		if !matchesText(doc, query) {
			continue
		}
		hits = append(hits, doc)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	total := int64(len(hits))
	if query.Limit > 0 && len(hits) > query.Limit {
		hits = hits[:query.Limit]
	}

	return &driven.EngineResult{Total: total, Hits: hits}, nil
}

func (m *MockSearchEngine) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingErr
}

func matchesText(doc driven.EngineHit, query driven.EngineQuery) bool {
	text := strings.TrimSpace(query.QueryText)
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	for _, field := range query.Fields {
		if value := lookupString(doc.Source, field.Path); value != "" {
			if query.Prefix {
				if strings.HasPrefix(strings.ToLower(value), needle) {
					return true
				}
				continue
			}
			if strings.Contains(strings.ToLower(value), needle) {
				return true
			}
		}
	}
	return false
}

func matchesClauses(doc driven.EngineHit, clauses []domain.FilterClause) bool {
	for _, clause := range clauses {
		switch clause.Kind {
		case domain.ClauseMatchNone:
			return false
		case domain.ClauseIDIn:
			if !containsValue(clause.Values, clauseFieldValue(doc, clause.Field)) {
				return false
			}
		case domain.ClauseTermEquals:
			if len(clause.Values) == 0 || clauseFieldValue(doc, clause.Field) != clause.Values[0] {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func clauseFieldValue(doc driven.EngineHit, field string) string {
	if field == "id" {
		return doc.ID
	}
	return lookupString(doc.Source, field)
}

func containsValue(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func lookupString(source map[string]any, path string) string {
	current := any(source)
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current = m[segment]
	}
	s, _ := current.(string)
	return s
}
