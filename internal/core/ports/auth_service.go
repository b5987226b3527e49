package ports

import (
	"context"

	"github.com/fitstore/storefront/internal/core/domain"
)

// AuthService defines the account and session use-cases. Operations that
// establish a session return the signed token alongside the user; the
// transport layer decides how to deliver it (cookie).
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)

	// RequestReset issues a single-use, time-bounded reset token and queues a
	// mail carrying it. Callers should surface a generic acknowledgment
	// regardless of delivery outcome.
	RequestReset(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and establishes a fresh session.
	ResetPassword(ctx context.Context, token, password, confirm string) (string, *domain.User, error)
}

// UserService defines user profile and permission use-cases.
type UserService interface {
	Me(ctx context.Context, userID string) (*domain.User, error)

	// UpdatePermissions replaces the target user's permission set. The actor
	// must hold ADMIN or PERMISSIONUPDATE.
	UpdatePermissions(ctx context.Context, actorID, targetID string, permissions []string) (*domain.User, error)
}
