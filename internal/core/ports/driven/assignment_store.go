package driven

import (
	"context"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
)

// AssignmentStore reads case assignments and entity linkage from the
// relational store. It is the only dependency the permission filter builder
// may block on.
type AssignmentStore interface {
	// AssignedCaseIDs returns the ids of cases the user is assigned to
	// within the tenant.
	AssignedCaseIDs(ctx context.Context, tenantID, userID string) ([]string, error)

	// LinkedEntityIDs resolves the ids of entityType records linked to
	// the given parent case ids.
	LinkedEntityIDs(ctx context.Context, tenantID string, entityType domain.EntityType, caseIDs []string) ([]string, error)
}
