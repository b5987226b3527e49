package handler

import "github.com/fitstore/storefront/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	ResetToken      string `json:"reset_token"      validate:"required"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type updatePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required,dive,oneof=ADMIN USER ITEMDELETE PERMISSIONUPDATE"`
}

type userResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Permissions []string `json:"permissions"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Permissions: u.Permissions,
	}
}
