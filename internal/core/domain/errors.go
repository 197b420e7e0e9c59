package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownEntityType indicates an entity type tag outside the supported set
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrUnknownRole indicates a role with no defined permission policy
	ErrUnknownRole = errors.New("unknown role")

	// ErrInvalidLimit indicates a negative result limit
	ErrInvalidLimit = errors.New("invalid result limit")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrIndexNotFound indicates no index has been created yet for a
	// tenant/entity-type pair. Expected for fresh tenants, not a fault.
	ErrIndexNotFound = errors.New("index not found")

	// ErrSearchUnavailable indicates the search engine could not be reached
	ErrSearchUnavailable = errors.New("search engine unavailable")
)
