package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// AuthService coordinates login, token verification and password changes.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	verifier   *auth.PasswordVerifier
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, admins repository.AdminRepository) *AuthService {
	return &AuthService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		verifier:   auth.NewPasswordVerifier(cfg.AllowPlaintext),
		bcryptCost: cfg.BcryptCost,
	}
}

// Login authenticates an admin by username and password. Unknown username and
// wrong password produce the exact same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AdminUser, string, error) {
	user, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, "", err
	}

	if err := s.verifier.Verify(user.Password, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("invalid username or password")
	}

	token, _, err := s.tokenMgr.Generate(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ChangePassword verifies the old password before storing a bcrypt hash of
// the new one. Legacy plaintext rows migrate to hashes here.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := s.admins.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("invalid or expired token")
		}
		return err
	}

	if err := s.verifier.Verify(user.Password, oldPassword); err != nil {
		return apperrors.NewUnauthorized("old password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, userID, hash)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
