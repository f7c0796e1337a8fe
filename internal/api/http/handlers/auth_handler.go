package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-dashboard/internal/api/dto"
	"github.com/spec-kit/project-dashboard/internal/auth"
	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/service"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

// AuthHandler exposes signup, login and verify endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("Email, password, and name are required", nil)
	}

	user, token, err := h.auth.Signup(c.Context(), req.Email, req.Password, req.Name, domain.UserRole(req.Role))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.AuthResponse{
		Success: true,
		Message: "User created successfully",
		User:    dto.NewUserPayload(user),
		Token:   token,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("Email and password are required", nil)
	}

	user, token, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    dto.NewUserPayload(user),
		Token:   token,
	})
}

// Verify handles GET /api/auth/verify. The access middleware already
// resolved the caller; this only echoes it back.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Access token required")
	}

	return c.JSON(dto.VerifyResponse{
		Success: true,
		User:    dto.NewUserPayload(principal.User),
	})
}
