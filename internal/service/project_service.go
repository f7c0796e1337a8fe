package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/events"
	"github.com/spec-kit/project-dashboard/internal/repository"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// ProjectCreateInput carries validated-at-the-edge creation fields.
type ProjectCreateInput struct {
	Name        string
	Description string
	Tags        []string
	ManagerID   string
	Deadline    time.Time
	Priority    domain.ProjectPriority
	ImageURL    *string
}

// ProjectService coordinates project reads and creation.
type ProjectService struct {
	projects   repository.ProjectRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository, dispatcher events.Dispatcher) *ProjectService {
	return &ProjectService{projects: projects, users: users, dispatcher: dispatcher}
}

// List returns every project, newest first. Visibility is shared: any
// authenticated caller sees all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.ListAll(ctx)
}

// ListByManager returns projects owned by the given manager, newest first.
func (s *ProjectService) ListByManager(ctx context.Context, managerID string) ([]domain.Project, error) {
	return s.projects.ListByManager(ctx, managerID)
}

// Get fetches a project by id with the manager name joined in.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("Project", nil)
		}
		return nil, err
	}
	return project, nil
}

// Create validates and persists a new project. The named manager may be any
// user holding the project_manager role, not only the caller.
func (s *ProjectService) Create(ctx context.Context, input ProjectCreateInput) (*domain.Project, error) {
	if !input.Deadline.After(time.Now()) {
		return nil, apperrors.NewValidationError("Deadline must be in the future", nil)
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("Priority must be low, medium, or high", nil)
	}

	manager, err := s.users.GetByID(ctx, input.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("Invalid project manager", nil)
		}
		return nil, err
	}
	if manager.Role != domain.RoleProjectManager {
		return nil, apperrors.NewValidationError("Invalid project manager", nil)
	}

	project := &domain.Project{
		ID:          newProjectID(),
		Name:        input.Name,
		Description: input.Description,
		Tags:        input.Tags,
		ManagerID:   input.ManagerID,
		Deadline:    input.Deadline,
		Priority:    input.Priority,
		ImageURL:    input.ImageURL,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	project.ManagerName = &manager.Name

	s.publish(ctx, events.EventProjectCreated, events.ProjectCreatedPayload{
		ProjectID: project.ID,
		Name:      project.Name,
		ManagerID: project.ManagerID,
		Priority:  string(project.Priority),
	})

	return project, nil
}

// newProjectID produces a random base-36 suffix plus base-36 millisecond
// timestamp. Not guaranteed globally unique; the primary key rejects the
// rare collision.
func newProjectID() string {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(buf) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

func (s *ProjectService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
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
