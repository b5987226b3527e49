package domain

import (
	"errors"
	"time"
)

// Permission labels grantable to a user.
const (
	PermissionAdmin            = "ADMIN"
	PermissionUser             = "USER"
	PermissionItemDelete       = "ITEMDELETE"
	PermissionPermissionUpdate = "PERMISSIONUPDATE"
)

// AllPermissions lists every label the API accepts.
var AllPermissions = []string{
	PermissionAdmin,
	PermissionUser,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

var ErrAuthRequired = errors.New("you must be signed in")
var ErrForbidden = errors.New("access forbidden")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrResetTokenInvalid = errors.New("reset token is invalid or expired")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidPermission = errors.New("unknown permission label")

// User models an account holder.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Permissions      []string  `json:"permissions"`
	ResetToken       string    `json:"-"`
	ResetTokenExpiry time.Time `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// HasPermission reports whether the user holds at least one of the required
// permission labels.
func (u *User) HasPermission(required ...string) bool {
	for _, have := range u.Permissions {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// ValidPermission reports whether label is a known permission.
func ValidPermission(label string) bool {
	for _, p := range AllPermissions {
		if p == label {
			return true
		}
	}
	return false
}
