package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-dashboard/internal/domain"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

// RequireProjectManager gates project creation on the caller's role.
func RequireProjectManager() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("Access token required")
		}
		if principal.User.Role != domain.RoleProjectManager {
			return apperrors.NewForbidden("Only project managers can create projects")
		}
		return c.Next()
	}
}
