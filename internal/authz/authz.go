// Package authz defines the permission claims understood by the API and the
// predicates controllers use to check them.
package authz

import "conventions/internal/domain"

// Permission claims carried in the token's "permissions" claim.
const (
	ReadUsers   = "read:users"
	UpdateUsers = "update:users"
	DeleteUsers = "delete:users"

	CreateVenues = "create:venues"
	UpdateVenues = "update:venues"
	DeleteVenues = "delete:venues"

	CreateConventions = "create:conventions"
	UpdateConventions = "update:conventions"
	DeleteConventions = "delete:conventions"
	SignupConventions = "signup:conventions"
	EjectConventions  = "eject:conventions"

	CreateTalks         = "create:talks"
	CreateTalksOnBehalf = "create:talks:onbehalf"
	UpdateTalks         = "update:talks"
	DeleteTalks         = "delete:talks"
	SignupTalks         = "signup:talks"
	EjectTalks          = "eject:talks"
)

// Policy is a set of permissions of which the caller must hold at least one.
type Policy []string

// CreateTalkPolicy admits speakers creating their own talks and organisers
// creating talks for others.
var CreateTalkPolicy = Policy{CreateTalks, CreateTalksOnBehalf}

// Allows reports whether p holds any permission of the policy.
func (pol Policy) Allows(p domain.Principal) bool {
	for _, perm := range pol {
		if p.HasPermission(perm) {
			return true
		}
	}
	return false
}

// CanAccess reports whether p may act on userID's resources: either p holds
// permission, or p is userID.
func CanAccess(p domain.Principal, userID, permission string) bool {
	return p.HasPermission(permission) || (p.Subject != "" && p.Subject == userID)
}
