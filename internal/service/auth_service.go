package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-dashboard/internal/auth"
	"github.com/spec-kit/project-dashboard/internal/config"
	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/events"
	"github.com/spec-kit/project-dashboard/internal/repository"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

// AuthService coordinates signup and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLDays),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// Signup creates a new account and issues a session token. A missing role
// defaults to employee. Email uniqueness relies on the store's constraint;
// two concurrent signups for the same email race past no pre-check, the
// loser's insert fails and maps to a conflict.
func (s *AuthService) Signup(ctx context.Context, email, password, name string, role domain.UserRole) (*domain.User, string, error) {
	if role == "" {
		role = domain.RoleEmployee
	}
	if !domain.ValidRole(role) {
		return nil, "", apperrors.NewValidationError("Role must be employee or project_manager", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, "", apperrors.NewConflict("User with this email already exists", nil)
		}
		return nil, "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
	})

	user.PasswordHash = ""
	return user, token, nil
}

// Login authenticates an account. Unknown emails and wrong passwords fail
// with the same message so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.NewUnauthorized("Invalid email or password")
		}
		return nil, "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", apperrors.NewUnauthorized("Invalid email or password")
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// UsersByRole lists accounts holding the given role, ordered by name.
func (s *AuthService) UsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	return s.users.ListByRole(ctx, role)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
