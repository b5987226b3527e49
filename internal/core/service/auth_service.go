package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

const resetTokenTTL = time.Hour

// ResetThrottle abstracts the per-address rate limit on reset mail (Redis).
type ResetThrottle interface {
	// Allow reports whether a reset mail may be sent to email right now.
	Allow(ctx context.Context, email string) (bool, error)
	// Mark records that a reset mail was just issued for email.
	Mark(ctx context.Context, email string) error
}

// AuthService implements signup, signin, and the password-reset flow.
type AuthService struct {
	users    ports.UserRepository
	mail     ports.MailEnqueuer
	throttle ResetThrottle
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, mail ports.MailEnqueuer, throttle ResetThrottle, secret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 365 * 24 * time.Hour
	}
	return &AuthService{users: users, mail: mail, throttle: throttle, secret: secret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Permissions:  []string{domain.PermissionUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.SessionToken(created.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user signed up")
	return token, created, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.SessionToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// RequestReset issues a reset token and queues the mail carrying it. The
// per-address throttle suppresses repeat mail inside its window; callers get
// a nil error either way so the endpoint stays non-enumerating about timing.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	allowed, err := s.throttle.Allow(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("reset throttle check failed, proceeding")
		allowed = true
	}
	if !allowed {
		s.log.Debug().Str("email", email).Msg("reset mail suppressed by throttle")
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expiry := time.Now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	if markErr := s.throttle.Mark(ctx, email); markErr != nil {
		s.log.Warn().Err(markErr).Str("email", email).Msg("failed to mark reset throttle")
	}

	s.mail.Enqueue(ports.MailMessage{
		To:      user.Email,
		Subject: "Your password reset token",
		Body:    "Your password reset token is: " + token + "\nIt expires in one hour.",
	})

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) (string, *domain.User, error) {
	// Confirmation check runs before any lookup.
	if password == "" || password != confirm {
		return "", nil, domain.ErrPasswordMismatch
	}

	user, err := s.users.FindByResetToken(ctx, token, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return "", nil, err
	}

	session, err := s.SessionToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset completed")
	return session, user, nil
}

// SessionToken signs a session JWT carrying the user identifier.
func (s *AuthService) SessionToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateResetToken returns a 40-character random hex token.
func generateResetToken() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
