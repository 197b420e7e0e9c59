package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
)

// PermissionFilterBuilder turns the caller's role into row-level filter
// clauses for one entity type. It is the only component in the search path
// allowed to block on a relational read, and it is consulted exactly once
// per (entity type, request): even full-access roles pass through and
// receive an explicit empty clause set, so "no filter" is always a traced
// decision.
type PermissionFilterBuilder struct {
	assignments driven.AssignmentStore
	logger      *slog.Logger
}

// NewPermissionFilterBuilder creates a new PermissionFilterBuilder.
func NewPermissionFilterBuilder(assignments driven.AssignmentStore, logger *slog.Logger) *PermissionFilterBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionFilterBuilder{
		assignments: assignments,
		logger:      logger,
	}
}

// denyAll is the fail-closed clause set.
func denyAll() []domain.FilterClause {
	return []domain.FilterClause{domain.MatchNoneClause()}
}

// BuildFilter evaluates the policy table for (role, entityType) and emits
// the clauses to AND into that entity type's query. A role with no defined
// policy for the entity type is a configuration fault and denies all rows.
// Errors are returned only for relational-store failures; the caller
// degrades those to an empty result.
func (b *PermissionFilterBuilder) BuildFilter(ctx context.Context, pctx domain.PermissionContext, entityType domain.EntityType) ([]domain.FilterClause, error) {
	policy, ok := domain.PolicyFor(pctx.Role, entityType)
	if !ok {
		b.logger.Warn("no access policy defined, denying",
			"role", string(pctx.Role),
			"entity_type", string(entityType),
			"tenant_id", pctx.TenantID,
		)
		return denyAll(), nil
	}

	switch policy.Kind {
	case domain.ScopeTenantWide:
		// Full access within the tenant. Empty but non-nil, so the
		// decision is observable downstream.
		return []domain.FilterClause{}, nil

	case domain.ScopeAssignedCases:
		ids, err := b.assignments.AssignedCaseIDs(ctx, pctx.TenantID, pctx.UserID)
		if err != nil {
			return nil, fmt.Errorf("assigned case lookup: %w", err)
		}
		if len(ids) == 0 {
			return denyAll(), nil
		}
		return []domain.FilterClause{domain.IDInClause(idField(policy), ids)}, nil

	case domain.ScopeLinkedToAssignedCases:
		caseIDs, err := b.assignments.AssignedCaseIDs(ctx, pctx.TenantID, pctx.UserID)
		if err != nil {
			return nil, fmt.Errorf("assigned case lookup: %w", err)
		}
		if len(caseIDs) == 0 {
			return denyAll(), nil
		}
		linked, err := b.assignments.LinkedEntityIDs(ctx, pctx.TenantID, entityType, caseIDs)
		if err != nil {
			return nil, fmt.Errorf("linked entity lookup: %w", err)
		}
		if len(linked) == 0 {
			return denyAll(), nil
		}
		return []domain.FilterClause{domain.IDInClause(idField(policy), linked)}, nil

	case domain.ScopeSelfCreated:
		field := policy.IDField
		if field == "" {
			field = "created_by"
		}
		return []domain.FilterClause{domain.TermClause(field, pctx.UserID)}, nil

	default:
		b.logger.Warn("unhandled scope kind, denying",
			"scope", string(policy.Kind),
			"role", string(pctx.Role),
			"entity_type", string(entityType),
		)
		return denyAll(), nil
	}
}

func idField(policy domain.ScopePolicy) string {
	if policy.IDField != "" {
		return policy.IDField
	}
	return "id"
}
