package auth

import "idorlab/internal/model"

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "ALLOW"
	}
	return "DENY"
}

// Authorize decides whether a caller may read or modify a record owned by
// ownerID. Admins may act on any record; everyone else only on their own.
// A zero caller id never matches.
func Authorize(callerID uint, callerRole model.Role, ownerID uint) Decision {
	if callerRole == model.RoleAdmin {
		return Allow
	}
	if callerID != 0 && callerID == ownerID {
		return Allow
	}
	return Deny
}

// AuthorizeRole is a role gate independent of any record.
func AuthorizeRole(callerRole, required model.Role) Decision {
	if !required.Valid() || callerRole != required {
		return Deny
	}
	return Allow
}
