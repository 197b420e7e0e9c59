package domain

import (
	"fmt"
	"strings"
)

// EntityType identifies one of the searchable record categories.
type EntityType string

const (
	EntityTypeCase          EntityType = "cases"
	EntityTypeInvestigation EntityType = "investigations"
	EntityTypeDisclosure    EntityType = "disclosures"
	EntityTypePolicy        EntityType = "policies"
	EntityTypeCampaign      EntityType = "campaigns"
	EntityTypeInteraction   EntityType = "interactions"
)

// AllEntityTypes returns the supported entity types in their canonical order.
// This is the default set for a unified search and the order results are
// reported in when the caller does not request specific types.
func AllEntityTypes() []EntityType {
	return []EntityType{
		EntityTypeCase,
		EntityTypeInvestigation,
		EntityTypeDisclosure,
		EntityTypePolicy,
		EntityTypeCampaign,
		EntityTypeInteraction,
	}
}

// IsValid reports whether the entity type is one of the supported tags.
func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeCase, EntityTypeInvestigation, EntityTypeDisclosure,
		EntityTypePolicy, EntityTypeCampaign, EntityTypeInteraction:
		return true
	}
	return false
}

// ParseEntityTypes parses a comma-separated list of entity type tags.
// An empty input yields the full supported set. Unknown tags are rejected
// with ErrUnknownEntityType before any backend call is made.
func ParseEntityTypes(raw string) ([]EntityType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AllEntityTypes(), nil
	}

	var types []EntityType
	seen := make(map[EntityType]bool)
	for _, part := range strings.Split(raw, ",") {
		et := EntityType(strings.ToLower(strings.TrimSpace(part)))
		if et == "" {
			continue
		}
		if !et.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, string(et))
		}
		if !seen[et] {
			seen[et] = true
			types = append(types, et)
		}
	}
	if len(types) == 0 {
		return AllEntityTypes(), nil
	}
	return types, nil
}

// Role identifies the caller's role within a tenant.
type Role string

const (
	// RoleAdmin has organization-wide oversight of all record types.
	RoleAdmin Role = "admin"

	// RoleComplianceOfficer has organization-wide oversight of all record types.
	RoleComplianceOfficer Role = "compliance_officer"

	// RoleInvestigator sees only cases they are assigned to, and records
	// linked to those cases.
	RoleInvestigator Role = "investigator"

	// RoleEmployee sees only records they created, plus published
	// policy and campaign content.
	RoleEmployee Role = "employee"
)

// IsValid reports whether the role is one of the defined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleComplianceOfficer, RoleInvestigator, RoleEmployee:
		return true
	}
	return false
}

// Elevated reports whether the role carries organization-wide oversight,
// meaning no row-level restriction is applied within the tenant.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleComplianceOfficer
}
