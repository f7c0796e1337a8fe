package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-dashboard/internal/api/dto"
	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/service"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

// UsersHandler exposes the role-filtered user listing.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// List handles GET /api/users?role=X. The role parameter is mandatory; the
// dashboard uses it to populate manager pickers.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	role := c.Query("role")
	if role == "" {
		return apperrors.NewValidationError("Role parameter is required", nil)
	}

	users, err := h.auth.UsersByRole(c.Context(), domain.UserRole(role))
	if err != nil {
		return err
	}

	payloads := make([]dto.UserPayload, 0, len(users))
	for i := range users {
		payloads = append(payloads, *dto.NewUserPayload(&users[i]))
	}

	return c.JSON(dto.UsersResponse{
		Success: true,
		Users:   payloads,
	})
}
