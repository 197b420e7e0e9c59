package driven

import "github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"

// TokenVerifier validates access tokens issued by the platform auth layer
// and extracts the caller identity.
type TokenVerifier interface {
	ParseToken(token string) (*domain.TokenClaims, error)
}
