// Package authz centralizes every permission decision. Handlers and services
// never check roles themselves; they pass the acting principal, the entity
// kind, the owner of the concrete record (when there is one) and the
// requested action, and get a single allow/deny answer back.
package authz

import (
	"errors"

	"reviewhub/internal/api/models"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("permission denied")
)

// Kind of entity a decision is being made about.
type Kind string

const (
	KindCategory Kind = "category"
	KindGenre    Kind = "genre"
	KindTitle    Kind = "title"
	KindReview   Kind = "review"
	KindComment  Kind = "comment"
	KindUser     Kind = "user"
)

// Action requested on the entity.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Principal is the acting identity. The zero value is the anonymous reader.
type Principal struct {
	ID        string
	Username  string
	Role      string
	Superuser bool
}

// Anonymous returns the unauthenticated principal.
func Anonymous() Principal {
	return Principal{}
}

// FromUser builds a principal out of a stored user record.
func FromUser(u *models.User) Principal {
	return Principal{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Superuser: u.Superuser,
	}
}

// Authenticated reports whether the principal carries an identity.
func (p Principal) Authenticated() bool {
	return p.ID != ""
}

// IsAdmin mirrors models.User.IsAdmin for token-derived principals.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin || p.Superuser
}

// IsModerator reports whether the principal holds the moderator role.
func (p Principal) IsModerator() bool {
	return p.Role == models.RoleModerator
}

// Allows decides whether the principal may perform action on an instance of
// kind owned by ownerID. ownerID is empty for collection-level actions and
// for entities without an owner (catalog data). The decision is evaluated
// per call against the concrete record, never cached.
func Allows(p Principal, kind Kind, ownerID string, action Action) bool {
	switch kind {
	case KindCategory, KindGenre, KindTitle:
		if action == ActionRead {
			return true
		}
		return p.IsAdmin()

	case KindReview, KindComment:
		switch action {
		case ActionRead:
			return true
		case ActionCreate:
			return p.Authenticated()
		case ActionUpdate, ActionDelete:
			if !p.Authenticated() {
				return false
			}
			return p.IsAdmin() || p.IsModerator() || p.ID == ownerID
		}
		return false

	case KindUser:
		// User administration is admin-only for every action. The /users/me
		// endpoint does not go through this gate at all.
		return p.IsAdmin()
	}
	return false
}

// Require is Allows with the HTTP-friendly error split: anonymous principals
// get ErrUnauthenticated so handlers answer 401, everyone else denied gets
// ErrForbidden for 403.
func Require(p Principal, kind Kind, ownerID string, action Action) error {
	if Allows(p, kind, ownerID, action) {
		return nil
	}
	if !p.Authenticated() {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
