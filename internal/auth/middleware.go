package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated admin derived from token claims.
// No store lookup happens here; a bad token must fail before any DB access.
type Principal struct {
	UserID   int64
	Username string
}

// Middleware validates bearer tokens on protected routes.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	claims, err := m.ClaimsFromHeader(c.Get("Authorization"))
	if err != nil {
		return err
	}
	c.Locals(principalKey, &Principal{UserID: claims.UserID, Username: claims.Username})
	return c.Next()
}

// ClaimsFromHeader parses an Authorization header value. The header must be
// exactly two space-separated tokens with the literal "Bearer" first.
func (m *Middleware) ClaimsFromHeader(header string) (*Claims, error) {
	if header == "" {
		return nil, apperrors.NewUnauthorized("no token provided")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.NewUnauthorized("invalid token format, use: Bearer <token>")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid or expired token")
	}
	return claims, nil
}

// PrincipalFromContext retrieves the authenticated admin.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
