package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository shared by the service
// tests in this package.
type stubUserRepo struct {
	users   map[string]*domain.User // keyed by ID
	nextID  int
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Permissions = append([]string(nil), u.Permissions...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("user_%03d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id, token string, expiry time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiry = expiry
	return nil
}

func (r *stubUserRepo) FindByResetToken(_ context.Context, token string, now time.Time) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token && u.ResetTokenExpiry.After(now) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrResetTokenInvalid
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpiry = time.Time{}
	return nil
}

func (r *stubUserRepo) UpdatePermissions(_ context.Context, id string, permissions []string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Permissions = append([]string(nil), permissions...)
	return cloneUser(u), nil
}

// stubMailQueue records enqueued messages.
type stubMailQueue struct {
	sent []ports.MailMessage
}

func (q *stubMailQueue) Enqueue(msg ports.MailMessage) {
	q.sent = append(q.sent, msg)
}

// stubThrottle allows or suppresses reset mail.
type stubThrottle struct {
	allow  bool
	marked []string
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) { return t.allow, nil }
func (t *stubThrottle) Mark(_ context.Context, email string) error {
	t.marked = append(t.marked, email)
	return nil
}

func newAuthService(repo *stubUserRepo, mail *stubMailQueue, throttle *stubThrottle) *AuthService {
	return NewAuthService(repo, mail, throttle, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailQueue{}, &stubThrottle{allow: true})

	token, user, err := svc.Signup(context.Background(), "Alice", "Foo@Bar.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "foo@bar.com" {
		t.Fatalf("email not lowercased: %s", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if len(user.Permissions) != 1 || user.Permissions[0] != domain.PermissionUser {
		t.Fatalf("expected default permissions [USER], got %v", user.Permissions)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("session token invalid: %v", err)
	}
	if claims["user_id"] != user.ID {
		t.Fatalf("expected user_id claim %s, got %v", user.ID, claims["user_id"])
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailQueue{}, &stubThrottle{allow: true})

	if _, _, err := svc.Signup(context.Background(), "Bob", "bob@example.com", "pw"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, _, err := svc.Signup(context.Background(), "Bobby", "BOB@example.com", "pw2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Signin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailQueue{}, &stubThrottle{allow: true})

	if _, _, err := svc.Signup(context.Background(), "Carol", "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Signin(context.Background(), "Carol@Example.com", "s3cret")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected token and user")
	}

	if _, _, err := svc.Signin(context.Background(), "carol@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Signin(context.Background(), "ghost@example.com", "pw"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_RequestReset_Success(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailQueue{}
	throttle := &stubThrottle{allow: true}
	svc := newAuthService(repo, mail, throttle)

	_, created, _ := svc.Signup(context.Background(), "Dave", "dave@example.com", "pw")

	if err := svc.RequestReset(context.Background(), "DAVE@example.com"); err != nil {
		t.Fatalf("RequestReset failed: %v", err)
	}

	stored := repo.users[created.ID]
	if stored.ResetToken == "" || len(stored.ResetToken) != 40 {
		t.Fatalf("expected 40-char hex token, got %q", stored.ResetToken)
	}
	if !stored.ResetTokenExpiry.After(time.Now().Add(55 * time.Minute)) {
		t.Fatalf("expected ~1h expiry, got %v", stored.ResetTokenExpiry)
	}
	if len(mail.sent) != 1 || mail.sent[0].To != "dave@example.com" {
		t.Fatalf("expected one reset mail to dave, got %+v", mail.sent)
	}
	if !strings.Contains(mail.sent[0].Body, stored.ResetToken) {
		t.Fatalf("mail body does not carry the token")
	}
	if len(throttle.marked) != 1 {
		t.Fatalf("expected throttle mark")
	}
}

func TestAuthService_RequestReset_UnknownEmail(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubMailQueue{}, &stubThrottle{allow: true})
	if err := svc.RequestReset(context.Background(), "nobody@example.com"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_RequestReset_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	mail := &stubMailQueue{}
	svc := newAuthService(repo, mail, &stubThrottle{allow: false})

	_, created, _ := svc.Signup(context.Background(), "Eve", "eve@example.com", "pw")

	if err := svc.RequestReset(context.Background(), "eve@example.com"); err != nil {
		t.Fatalf("throttled request should still ack: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("throttled request must not send mail")
	}
	if repo.users[created.ID].ResetToken != "" {
		t.Fatalf("throttled request must not mint a token")
	}
}

func TestAuthService_ResetPassword_MismatchBeforeLookup(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = context.DeadlineExceeded // trips if any lookup happens
	svc := newAuthService(repo, &stubMailQueue{}, &stubThrottle{allow: true})

	if _, _, err := svc.ResetPassword(context.Background(), "tok", "new", "different"); err != domain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestAuthService_ResetPassword_InvalidToken(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubMailQueue{}, &stubThrottle{allow: true})
	if _, _, err := svc.ResetPassword(context.Background(), "nope", "new", "new"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestAuthService_ResetPassword_ExpiredToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailQueue{}, &stubThrottle{allow: true})

	_, created, _ := svc.Signup(context.Background(), "Frank", "frank@example.com", "old")
	repo.users[created.ID].ResetToken = "expiredtoken"
	repo.users[created.ID].ResetTokenExpiry = time.Now().Add(-time.Minute)

	if _, _, err := svc.ResetPassword(context.Background(), "expiredtoken", "new", "new"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected ErrResetTokenInvalid for expired token, got %v", err)
	}
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubMailQueue{}, &stubThrottle{allow: true})

	_, created, _ := svc.Signup(context.Background(), "Grace", "grace@example.com", "oldpw")
	repo.users[created.ID].ResetToken = "goodtoken"
	repo.users[created.ID].ResetTokenExpiry = time.Now().Add(30 * time.Minute)

	token, user, err := svc.ResetPassword(context.Background(), "goodtoken", "newpw", "newpw")
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if token == "" || user == nil {
		t.Fatalf("expected fresh session token and user")
	}

	stored := repo.users[created.ID]
	if stored.ResetToken != "" || !stored.ResetTokenExpiry.IsZero() {
		t.Fatalf("reset token not cleared")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpw")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}

	// Token is single-use.
	if _, _, err := svc.ResetPassword(context.Background(), "goodtoken", "again", "again"); err != domain.ErrResetTokenInvalid {
		t.Fatalf("expected token to be single-use, got %v", err)
	}
}
