package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// UserService implements profile reads and permission administration.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdatePermissions replaces the target's permission set wholesale. The actor
// must hold ADMIN or PERMISSIONUPDATE; unknown labels are rejected.
func (s *UserService) UpdatePermissions(ctx context.Context, actorID, targetID string, permissions []string) (*domain.User, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.HasPermission(domain.PermissionAdmin, domain.PermissionPermissionUpdate) {
		return nil, domain.ErrForbidden
	}

	for _, p := range permissions {
		if !domain.ValidPermission(p) {
			return nil, domain.ErrInvalidPermission
		}
	}

	updated, err := s.users.UpdatePermissions(ctx, targetID, permissions)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("actor_id", actorID).
		Str("target_id", targetID).
		Strs("permissions", permissions).
		Msg("permissions updated")

	return updated, nil
}
