package domain

import "strings"

// DefaultResultLimit is the per-entity-type hit limit when the caller does
// not specify one.
const DefaultResultLimit = 10

// MaxResultLimit caps the per-entity-type hit limit.
const MaxResultLimit = 100

// PermissionContext carries the authenticated caller identity for one
// request. It is built once from session state by the auth middleware and is
// never persisted.
type PermissionContext struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     Role   `json:"role"`
}

// Validate checks that the context is complete enough to make permission
// decisions with.
func (p PermissionContext) Validate() error {
	if p.UserID == "" || p.TenantID == "" {
		return ErrUnauthorized
	}
	if !p.Role.IsValid() {
		return ErrUnknownRole
	}
	return nil
}

// SearchRequest is a caller-supplied unified search request.
type SearchRequest struct {
	Query               string       `json:"query"`
	EntityTypes         []EntityType `json:"entity_types,omitempty"`
	Limit               int          `json:"limit,omitempty"`
	IncludeCustomFields bool         `json:"include_custom_fields,omitempty"`
}

// Normalize applies defaults and validates the request. It must be called
// before dispatch; input faults are the only errors surfaced to the caller.
func (r *SearchRequest) Normalize() error {
	if r.Limit < 0 {
		return ErrInvalidLimit
	}
	if r.Limit == 0 {
		r.Limit = DefaultResultLimit
	}
	if r.Limit > MaxResultLimit {
		r.Limit = MaxResultLimit
	}
	if len(r.EntityTypes) == 0 {
		r.EntityTypes = AllEntityTypes()
		return nil
	}
	seen := make(map[EntityType]bool, len(r.EntityTypes))
	deduped := r.EntityTypes[:0]
	for _, et := range r.EntityTypes {
		if !et.IsValid() {
			return ErrUnknownEntityType
		}
		if !seen[et] {
			seen[et] = true
			deduped = append(deduped, et)
		}
	}
	r.EntityTypes = deduped
	return nil
}

// MatchAll reports whether the query text selects everything. A blank query
// degrades to match-everything semantics ordered by recency.
func (r *SearchRequest) MatchAll() bool {
	return strings.TrimSpace(r.Query) == ""
}

// Hit is a single authorized search result with its redacted document.
type Hit struct {
	DocumentID string              `json:"document_id"`
	EntityType EntityType          `json:"entity_type"`
	Score      float64             `json:"score"`
	Document   map[string]any      `json:"document"`
	Highlights map[string][]string `json:"highlights,omitempty"`
}

// ResultCause classifies how an EntityTypeResult was produced. It is kept
// out of the serialized response: the caller sees the same empty shape for
// every degraded branch, and monitoring consumes the cause instead.
type ResultCause string

const (
	CauseOK           ResultCause = "ok"
	CauseIndexMissing ResultCause = "index_missing"
	CauseBackendFault ResultCause = "backend_fault"
	CauseTimeout      ResultCause = "timeout"
)

// EntityTypeResult holds the outcome of one entity type's sub-query.
// AuthorizedCount is always the post-permission-filter count, never the raw
// match count. Every outcome, success or fault, is a value of this type.
type EntityTypeResult struct {
	EntityType      EntityType  `json:"entity_type"`
	AuthorizedCount int64       `json:"authorized_count"`
	Hits            []Hit       `json:"hits"`
	Cause           ResultCause `json:"-"`
}

// EmptyResult is the degraded shape returned for absent indices and backend
// faults.
func EmptyResult(entityType EntityType, cause ResultCause) EntityTypeResult {
	return EntityTypeResult{
		EntityType:      entityType,
		AuthorizedCount: 0,
		Hits:            []Hit{},
		Cause:           cause,
	}
}

// UnifiedSearchResult aggregates all per-type results for one request.
// Results preserve the requested entity-type order regardless of which
// backend query finished first.
type UnifiedSearchResult struct {
	Query               string             `json:"query"`
	TotalAuthorizedHits int64              `json:"total_authorized_hits"`
	Results             []EntityTypeResult `json:"results"`
	ElapsedMilliseconds int64              `json:"elapsed_ms"`
}

// SearchSuggestion represents a prefix-completion suggestion.
type SearchSuggestion struct {
	Text       string     `json:"text"`
	EntityType EntityType `json:"entity_type"`
	Score      float64    `json:"score"`
}
