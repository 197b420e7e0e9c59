package domain

// TokenClaims is the identity payload carried by an access token. Tokens
// are issued by the platform's authentication layer; this service verifies
// the signature and trusts the claims.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	TenantID  string `json:"tenant_id"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Context builds the request-scoped permission context from the claims.
func (c *TokenClaims) Context() PermissionContext {
	return PermissionContext{
		UserID:   c.UserID,
		TenantID: c.TenantID,
		Role:     c.Role,
	}
}
