package auth

import "idorlab/internal/model"

// Identity is the resolved caller of a single request.
type Identity struct {
	UserID    uint
	Username  string
	Role      model.Role
	SessionID string
}

// NewIdentity builds the identity of user for the given session.
func NewIdentity(user *model.User, sessionID string) *Identity {
	return &Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		SessionID: sessionID,
	}
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// CanAccess applies the ownership policy to a record owned by ownerID.
func (i Identity) CanAccess(ownerID uint) bool {
	return Authorize(i.UserID, i.Role, ownerID) == Allow
}
