package domain

import (
	"fmt"
	"strings"
)

// IndexName resolves the physical search index for a tenant and entity type.
// The mapping is pure and deterministic, and the tenant id encoding is
// injective, so two distinct tenants can never resolve to the same index.
// Every component must source index names from here, never from
// caller-supplied strings.
func IndexName(tenantID string, entityType EntityType) string {
	return sanitizeTenantID(tenantID) + "_" + string(entityType)
}

// sanitizeTenantID maps a tenant id onto the index-name alphabet. Runes in
// [a-z0-9-] pass through; every other rune, '_' included, is escaped as
// "_<hex>_". Because '_' never appears unescaped, the encoding decodes
// unambiguously and distinct tenant ids keep distinct index names.
func sanitizeTenantID(tenantID string) string {
	var b strings.Builder
	b.Grow(len(tenantID))
	for _, r := range tenantID {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "_%x_", r)
		}
	}
	return b.String()
}
