package mocks

import (
	"context"
	"sync"

	"github.com/nick-gallo-ethico/risk-intelligence-platform-sub011/internal/core/domain"
)

// MockAssignmentStore is a mock implementation of AssignmentStore for testing
type MockAssignmentStore struct {
	mu          sync.RWMutex
	assignments map[string][]string // tenantID:userID -> case ids
	linked      map[string][]string // tenantID:entityType:caseID -> linked ids
	err         error

	// LookupCount tracks how many store reads were performed.
	LookupCount int
}

// NewMockAssignmentStore creates a new MockAssignmentStore
func NewMockAssignmentStore() *MockAssignmentStore {
	return &MockAssignmentStore{
		assignments: make(map[string][]string),
		linked:      make(map[string][]string),
	}
}

// Assign records a case assignment for a user.
func (m *MockAssignmentStore) Assign(tenantID, userID string, caseIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tenantID + ":" + userID
	m.assignments[key] = append(m.assignments[key], caseIDs...)
}

// Link records entity ids linked to a parent case.
func (m *MockAssignmentStore) Link(tenantID string, entityType domain.EntityType, caseID string, entityIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := tenantID + ":" + string(entityType) + ":" + caseID
	m.linked[key] = append(m.linked[key], entityIDs...)
}

// FailWith forces all lookups to return err.
func (m *MockAssignmentStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockAssignmentStore) AssignedCaseIDs(ctx context.Context, tenantID, userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LookupCount++
	if m.err != nil {
		return nil, m.err
	}
	ids := m.assignments[tenantID+":"+userID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out, nil
}

func (m *MockAssignmentStore) LinkedEntityIDs(ctx context.Context, tenantID string, entityType domain.EntityType, caseIDs []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LookupCount++
	if m.err != nil {
		return nil, m.err
	}
	var out []string
	for _, caseID := range caseIDs {
		out = append(out, m.linked[tenantID+":"+string(entityType)+":"+caseID]...)
	}
	return out, nil
}
