package models

import (
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// Roles is the single source of truth for valid role values. Both the user
// model and the permissions package consume it.
var Roles = []UserRole{RoleUser, RoleModerator, RoleAdmin}

func (r UserRole) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ReservedUsername collides with the self-profile route and can never be
// registered.
const ReservedUsername = "me"

type User struct {
	ID        uint     `json:"-" gorm:"primarykey"`
	Username  string   `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email     string   `json:"email" gorm:"uniqueIndex;not null;size:254"`
	FirstName string   `json:"first_name" gorm:"size:150"`
	LastName  string   `json:"last_name" gorm:"size:150"`
	Bio       string   `json:"bio" gorm:"size:256"`
	Role      UserRole `json:"role" gorm:"size:9;default:'user'"`
	// ConfirmationSecret keys the signup confirmation code for this user.
	ConfirmationSecret string    `json:"-" gorm:"not null"`
	CreatedAt          time.Time `json:"-"`
	// UpdatedAt doubles as the state fingerprint for confirmation codes:
	// any persisted change invalidates previously issued codes.
	UpdatedAt time.Time `json:"-"`
}
