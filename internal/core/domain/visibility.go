package domain

// sensitiveFields lists the document fields stripped from results returned
// to non-elevated roles. Field-level redaction is orthogonal to the
// row-level permission filter: a caller authorized to see a row may still
// not see the reporter's identity on it.
var sensitiveFields = map[EntityType][]string{
	EntityTypeCase: {
		"reporter.name",
		"reporter.email",
		"reporter.phone",
	},
	EntityTypeInteraction: {
		"reporter.name",
		"reporter.email",
		"reporter.phone",
		"caller_id",
	},
	EntityTypeDisclosure: {
		"respondent.email",
		"respondent.phone",
	},
}

// ExcludedFields returns the document field paths that must be removed from
// any result returned to the caller. Pure, no I/O.
func ExcludedFields(ctx PermissionContext, entityType EntityType) []string {
	if ctx.Role.Elevated() {
		return nil
	}
	fields := sensitiveFields[entityType]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
