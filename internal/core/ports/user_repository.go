package ports

import (
	"context"
	"time"

	"github.com/fitstore/storefront/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// SetResetToken stores a password-reset token and its expiry on the user.
	SetResetToken(ctx context.Context, id, token string, expiry time.Time) error

	// FindByResetToken returns the user holding token, but only while the
	// token's expiry is strictly after now. Expired or unknown tokens yield
	// domain.ErrResetTokenInvalid.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)

	// UpdatePassword replaces the password hash and clears any reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// UpdatePermissions replaces the user's permission set wholesale.
	UpdatePermissions(ctx context.Context, id string, permissions []string) (*domain.User, error)
}
