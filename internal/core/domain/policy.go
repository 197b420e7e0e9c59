package domain

// ClauseKind identifies the shape of a permission filter clause.
type ClauseKind string

const (
	// ClauseIDIn restricts rows to a set of document ids.
	ClauseIDIn ClauseKind = "id_in"

	// ClauseTermEquals restricts rows to an exact field value.
	ClauseTermEquals ClauseKind = "term_equals"

	// ClauseMatchNone matches nothing. Emitted when a role has no defined
	// policy for an entity type, or an assignment lookup yields zero ids.
	ClauseMatchNone ClauseKind = "match_none"
)

// FilterClause is an opaque row-level constraint ANDed into a sub-query.
// An empty clause set means full access within the tenant; that is a
// deliberate, auditable state, not an omission.
type FilterClause struct {
	Kind   ClauseKind `json:"kind"`
	Field  string     `json:"field,omitempty"`
	Values []string   `json:"values,omitempty"`
}

// IDInClause restricts results to the given document ids. Callers must use
// MatchNoneClause instead when the id set is empty; permission filtering
// fails closed, never open.
func IDInClause(field string, ids []string) FilterClause {
	return FilterClause{Kind: ClauseIDIn, Field: field, Values: ids}
}

// TermClause restricts results to rows where field equals value.
func TermClause(field, value string) FilterClause {
	return FilterClause{Kind: ClauseTermEquals, Field: field, Values: []string{value}}
}

// MatchNoneClause denies all rows.
func MatchNoneClause() FilterClause {
	return FilterClause{Kind: ClauseMatchNone}
}

// ScopeKind is the declarative access scope a role has over an entity type.
// Adding a role is a change to the policy table, not new control flow.
type ScopeKind string

const (
	// ScopeTenantWide grants unrestricted access within the tenant:
	// the builder emits an empty clause set.
	ScopeTenantWide ScopeKind = "tenant_wide"

	// ScopeAssignedCases restricts to documents whose id is one of the
	// caller's assigned case ids.
	ScopeAssignedCases ScopeKind = "assigned_cases"

	// ScopeLinkedToAssignedCases restricts to documents linked to one of
	// the caller's assigned cases, resolved through the linkage table.
	ScopeLinkedToAssignedCases ScopeKind = "linked_to_assigned_cases"

	// ScopeSelfCreated restricts to documents the caller created.
	ScopeSelfCreated ScopeKind = "self_created"
)

// ScopePolicy describes how one role may see one entity type.
type ScopePolicy struct {
	Kind ScopeKind

	// IDField is the document field the id constraint applies to.
	// Defaults to "id" for assignment scopes and "created_by" for
	// self scope when empty.
	IDField string
}

// rolePolicies is the total access-policy table. A missing (role, entity
// type) entry is a configuration fault and fails closed: the filter builder
// emits a match-none clause for it.
//
// Deliberate tenant-wide grants: published policy and campaign content is
// readable by every defined role.
var rolePolicies = map[Role]map[EntityType]ScopePolicy{
	RoleAdmin: {
		EntityTypeCase:          {Kind: ScopeTenantWide},
		EntityTypeInvestigation: {Kind: ScopeTenantWide},
		EntityTypeDisclosure:    {Kind: ScopeTenantWide},
		EntityTypePolicy:        {Kind: ScopeTenantWide},
		EntityTypeCampaign:      {Kind: ScopeTenantWide},
		EntityTypeInteraction:   {Kind: ScopeTenantWide},
	},
	RoleComplianceOfficer: {
		EntityTypeCase:          {Kind: ScopeTenantWide},
		EntityTypeInvestigation: {Kind: ScopeTenantWide},
		EntityTypeDisclosure:    {Kind: ScopeTenantWide},
		EntityTypePolicy:        {Kind: ScopeTenantWide},
		EntityTypeCampaign:      {Kind: ScopeTenantWide},
		EntityTypeInteraction:   {Kind: ScopeTenantWide},
	},
	RoleInvestigator: {
		EntityTypeCase:          {Kind: ScopeAssignedCases},
		EntityTypeInvestigation: {Kind: ScopeLinkedToAssignedCases},
		EntityTypeInteraction:   {Kind: ScopeLinkedToAssignedCases},
		EntityTypePolicy:        {Kind: ScopeTenantWide},
		EntityTypeCampaign:      {Kind: ScopeTenantWide},
		// Disclosures are managed by compliance officers only; no entry,
		// so investigator access to them fails closed.
	},
	RoleEmployee: {
		EntityTypeCase:        {Kind: ScopeSelfCreated},
		EntityTypeDisclosure:  {Kind: ScopeSelfCreated},
		EntityTypeInteraction: {Kind: ScopeSelfCreated},
		EntityTypePolicy:      {Kind: ScopeTenantWide},
		EntityTypeCampaign:    {Kind: ScopeTenantWide},
		// Investigations are never visible to employees; fails closed.
	},
}

// PolicyFor returns the access policy for a role and entity type. The
// second return is false when no policy is defined, which callers must
// treat as deny-all.
func PolicyFor(role Role, entityType EntityType) (ScopePolicy, bool) {
	policies, ok := rolePolicies[role]
	if !ok {
		return ScopePolicy{}, false
	}
	policy, ok := policies[entityType]
	return policy, ok
}
