package permissions

import (
	"net/http"

	"review-catalogue-api/models"
)

// Actor is the requester as seen by the policy layer. The zero value is an
// anonymous actor.
type Actor struct {
	ID            uint
	Username      string
	Role          models.UserRole
	Authenticated bool
}

func Anonymous() Actor {
	return Actor{}
}

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// CanAccessCollection is the collection-level gate: reads are open to
// everyone, writes require authentication. Evaluated before any object is
// fetched.
func CanAccessCollection(actor Actor, method string) bool {
	if SafeMethod(method) {
		return true
	}
	return actor.Authenticated
}

// CanAccessObject is the object-level gate: reads are open, writes are
// allowed to the resource author, moderators and admins.
func CanAccessObject(actor Actor, method string, authorID uint) bool {
	if SafeMethod(method) {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	if actor.ID == authorID {
		return true
	}
	switch actor.Role {
	case models.RoleModerator, models.RoleAdmin:
		return true
	case models.RoleUser:
		return false
	}
	return false
}

// IsAdmin reports whether the actor holds the admin role. Role comparison
// only; there is no separate staff flag.
func IsAdmin(actor Actor) bool {
	return actor.Authenticated && actor.Role == models.RoleAdmin
}

// IsAdminOrReadOnly allows reads to anyone and writes to admins only.
func IsAdminOrReadOnly(actor Actor, method string) bool {
	if SafeMethod(method) {
		return true
	}
	return IsAdmin(actor)
}
