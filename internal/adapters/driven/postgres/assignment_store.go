package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AssignmentStore = (*AssignmentStore)(nil)

// AssignmentStore implements driven.AssignmentStore using PostgreSQL.
type AssignmentStore struct {
	db *DB
}

// NewAssignmentStore creates a new AssignmentStore
func NewAssignmentStore(db *DB) *AssignmentStore {
	return &AssignmentStore{db: db}
}

// AssignedCaseIDs returns the case ids the user is assigned to within the
// tenant.
func (s *AssignmentStore) AssignedCaseIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	query := `
		SELECT case_id FROM case_assignments
		WHERE tenant_id = $1 AND user_id = $2
	`

	rows, err := s.db.QueryContext(ctx, query, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("query case assignments: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan case assignment: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// LinkedEntityIDs resolves ids of entityType records linked to the given
// parent case ids via the linkage tables.
func (s *AssignmentStore) LinkedEntityIDs(ctx context.Context, tenantID string, entityType domain.EntityType, caseIDs []string) ([]string, error) {
	if len(caseIDs) == 0 {
		return nil, nil
	}

	var table string
	switch entityType {
	case domain.EntityTypeInvestigation:
		table = "investigations"
	case domain.EntityTypeInteraction:
		table = "interactions"
	default:
		return nil, fmt.Errorf("no linkage table for entity type %q", string(entityType))
	}

	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE tenant_id = $1 AND case_id = ANY($2)
	`, table)

	rows, err := s.db.QueryContext(ctx, query, tenantID, pq.Array(caseIDs))
	if err != nil {
		return nil, fmt.Errorf("query linked %s: %w", table, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan linked id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
