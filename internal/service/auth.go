package service

import (
	"context"
	"errors"
	"time"

	"github.com/inkstream/inkstream-go/internal/authority"
	"github.com/inkstream/inkstream-go/internal/crypto"
	"github.com/inkstream/inkstream-go/internal/model"
	"github.com/inkstream/inkstream-go/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrPasswordMismatch = errors.New("password does not match")
)

// AccountStore is the slice of the user repository the auth flows need.
type AccountStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AuthService handles registration, login and password recovery.
type AuthService struct {
	users       AccountStore
	sessions    authority.Store
	tokenSecret string
	resetTTL    time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users AccountStore, sessions authority.Store, tokenSecret string, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		tokenSecret: tokenSecret,
		resetTTL:    resetTTL,
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) error {
	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return ErrUserExists
		}
		return err
	}

	return nil
}

// Login verifies the credentials and opens a session. It returns the session
// token the client presents as a bearer credential.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	match, err := crypto.ComparePassword(req.Password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrPasswordMismatch
	}

	token, err := crypto.GenerateSessionToken()
	if err != nil {
		return "", err
	}

	if err := s.sessions.Set(ctx, token, authority.Record{ID: user.ID, Email: user.Email}); err != nil {
		return "", err
	}

	return token, nil
}

// VerifyEmail reports whether the email is still available for registration.
func (s *AuthService) VerifyEmail(ctx context.Context, email string) error {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return ErrUserExists
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil
	}
	return err
}

// Logout discards the session. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ResetPassword replaces the caller's password hash.
func (s *AuthService) ResetPassword(ctx context.Context, userID, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

// ForgotPassword issues a short-lived action token for the password reset
// link. The caller decides how to deliver it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return crypto.GenerateActionToken(user.ID, user.Email, s.tokenSecret, s.resetTTL)
}
