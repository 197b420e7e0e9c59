package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// searchRequest is the unified search request body
type searchRequest struct {
	Query               string `json:"query"`
	EntityTypes         string `json:"entity_types,omitempty"`
	Limit               int    `json:"limit,omitempty"`
	IncludeCustomFields bool   `json:"include_custom_fields,omitempty"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness, checking the relational store and search engine
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.db != nil {
		if err := s.db.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.searchEngine != nil {
		if err := s.searchEngine.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "search engine unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{Version: s.version})
}

// Search endpoints

// handleSearch godoc
// @Summary      Unified search
// @Description  Execute a permission-filtered search across the requested entity types concurrently. Types that fail or have no index yet return empty results without failing the request.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      searchRequest  true  "Search query"
// @Success      200      {object}  domain.UnifiedSearchResult
// @Failure      400      {object}  ErrorResponse  "Invalid entity type or limit"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	pctx, ok := GetPermissionContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entityTypes, err := domain.ParseEntityTypes(req.EntityTypes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.searchService.Search(r.Context(), pctx, domain.SearchRequest{
		Query:               req.Query,
		EntityTypes:         entityTypes,
		Limit:               req.Limit,
		IncludeCustomFields: req.IncludeCustomFields,
	})
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSearchType godoc
// @Summary      Single entity type search
// @Description  Execute a permission-filtered search against one entity type
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        type   path      string  true   "Entity type tag"
// @Param        q      query     string  false  "Query text; blank returns most recent authorized records"
// @Param        limit  query     int     false  "Maximum hits to return"
// @Success      200    {object}  domain.EntityTypeResult
// @Failure      400    {object}  ErrorResponse  "Invalid entity type or limit"
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Router       /search/{type} [get]
func (s *Server) handleSearchType(w http.ResponseWriter, r *http.Request) {
	pctx, ok := GetPermissionContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entityType := domain.EntityType(r.PathValue("type"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	result, err := s.searchService.SearchType(r.Context(), pctx, entityType, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSuggest godoc
// @Summary      Search suggestions
// @Description  Prefix completions over the caller's authorized records
// @Tags         Search
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  true   "Prefix text"
// @Param        limit  query     int     false  "Maximum suggestions to return"
// @Success      200    {array}   domain.SearchSuggestion
// @Failure      400    {object}  ErrorResponse  "Missing prefix"
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Router       /search/suggest [get]
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	pctx, ok := GetPermissionContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	suggestions, err := s.searchService.Suggest(r.Context(), pctx, r.URL.Query().Get("q"), limit)
	if err != nil {
		writeSearchError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestions)
}

// writeSearchError maps service errors to HTTP status codes. Only input
// faults reach this point; backend faults are absorbed into empty results
// by the executor.
func writeSearchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownEntityType),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUnknownRole):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "search failed")
	}
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
