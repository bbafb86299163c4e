package session

import "github.com/estateview/realty-api/internal/core/domain"

// Options tunes a single authorization decision.
type Options struct {
	// AllowAdmin lets an admin act on resources owned by someone else.
	AllowAdmin bool
}

// SelfOnly is the policy for mutations a user may only make on their own account.
var SelfOnly = Options{}

// SelfOrAdmin is the policy for mutations an admin may perform on behalf of the owner.
var SelfOrAdmin = Options{AllowAdmin: true}

// Allowed reports whether id may act on a resource owned by ownerID.
func Allowed(id *domain.Identity, ownerID string, opts Options) bool {
	if id == nil || id.SubjectID == "" {
		return false
	}
	if ownerID != "" && id.SubjectID == ownerID {
		return true
	}
	return opts.AllowAdmin && id.Role == domain.RoleAdmin
}

// Authorize returns domain.ErrForbidden when id may not act on a resource
// owned by ownerID, and an unauthorized error when there is no identity at all.
func Authorize(id *domain.Identity, ownerID string, opts Options) error {
	if id == nil {
		return domain.NewUnauthorized(domain.ReasonTokenMissing)
	}
	if !Allowed(id, ownerID, opts) {
		return domain.ErrForbidden
	}
	return nil
}
