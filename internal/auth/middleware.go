package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/repository"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for a single request.
type Principal struct {
	User *domain.User
}

// AuthMiddleware validates bearer tokens and loads the caller's account.
// Every request re-verifies the token and re-queries the store; nothing is
// cached between requests.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. A missing token is
// 401, a token that fails signature or expiry checks is 403, and a valid
// token for a vanished account is 401.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := bearerToken(c.Get("Authorization"))
	if token == "" {
		return apperrors.NewUnauthorized("Access token required")
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewForbidden("Invalid or expired token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("Invalid token")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
