package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fitstore/storefront/internal/core/domain"
)

func seedUser(repo *stubUserRepo, email string, perms ...string) *domain.User {
	u, _ := repo.Create(context.Background(), &domain.User{
		Name:        email,
		Email:       email,
		Permissions: perms,
	})
	return u
}

func TestUserService_UpdatePermissions_RequiresElevatedActor(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	actor := seedUser(repo, "plain@example.com", domain.PermissionUser)
	target := seedUser(repo, "target@example.com", domain.PermissionUser)

	if _, err := svc.UpdatePermissions(context.Background(), actor.ID, target.ID, []string{domain.PermissionAdmin}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_UpdatePermissions_FullReplace(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	admin := seedUser(repo, "admin@example.com", domain.PermissionAdmin)
	target := seedUser(repo, "target@example.com", domain.PermissionUser, domain.PermissionItemDelete)

	updated, err := svc.UpdatePermissions(context.Background(), admin.ID, target.ID, []string{domain.PermissionUser})
	if err != nil {
		t.Fatalf("UpdatePermissions failed: %v", err)
	}
	// Replace, not merge: ITEMDELETE is gone.
	if len(updated.Permissions) != 1 || updated.Permissions[0] != domain.PermissionUser {
		t.Fatalf("expected exactly [USER], got %v", updated.Permissions)
	}
}

func TestUserService_UpdatePermissions_PermissionUpdateLabelSuffices(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	actor := seedUser(repo, "mod@example.com", domain.PermissionUser, domain.PermissionPermissionUpdate)
	target := seedUser(repo, "target@example.com", domain.PermissionUser)

	if _, err := svc.UpdatePermissions(context.Background(), actor.ID, target.ID, []string{domain.PermissionUser, domain.PermissionItemDelete}); err != nil {
		t.Fatalf("PERMISSIONUPDATE holder should be allowed: %v", err)
	}
}

func TestUserService_UpdatePermissions_RejectsUnknownLabel(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	admin := seedUser(repo, "admin@example.com", domain.PermissionAdmin)
	target := seedUser(repo, "target@example.com", domain.PermissionUser)

	if _, err := svc.UpdatePermissions(context.Background(), admin.ID, target.ID, []string{"SUDO"}); err != domain.ErrInvalidPermission {
		t.Fatalf("expected ErrInvalidPermission, got %v", err)
	}
}

func TestUserService_Me(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	u := seedUser(repo, "me@example.com", domain.PermissionUser)

	got, err := svc.Me(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if got.Email != "me@example.com" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.Me(context.Background(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
