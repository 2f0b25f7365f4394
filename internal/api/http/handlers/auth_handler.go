package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/service"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// AuthHandler exposes login, token verification and password change.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("username and password are required")
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password are required")
	}

	user, token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"token":   token,
		"user": dto.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}

// Verify handles GET /api/auth/verify. The auth middleware has already
// validated the token; the response echoes its claims.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Token is valid",
		"user": dto.UserSummary{
			ID:       principal.UserID,
			Username: principal.Username,
		},
	})
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("old password and new password are required")
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("old password and new password are required")
	}

	if err := h.auth.ChangePassword(c.Context(), principal.UserID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Password changed successfully",
	})
}
