package domain

import "time"

// Identity is the authenticated subject reconstructed from a verified session
// token. It only ever comes out of token verification and is never stored.
type Identity struct {
	SubjectID string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}
