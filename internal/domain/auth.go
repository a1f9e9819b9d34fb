package domain

import (
	"slices"
	"time"
)

// Principal is the authenticated caller: the token subject and its permission claims.
type Principal struct {
	Subject     string
	Permissions []string
}

// HasPermission reports whether the principal holds the given permission claim.
func (p Principal) HasPermission(permission string) bool {
	return slices.Contains(p.Permissions, permission)
}

// TokenIssuer issues bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string, permissions []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the principal it carries.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}
