package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-dashboard/internal/api/dto"
	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/service"
	apperrors "github.com/spec-kit/project-dashboard/pkg/util"
)

// ProjectsHandler manages project endpoints.
type ProjectsHandler struct {
	service *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{service: projectService}
}

// List handles GET /api/projects. All projects are visible to any
// authenticated caller; ?manager=<id> narrows to one manager's projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	var (
		projects []domain.Project
		err      error
	)
	if managerID := c.Query("manager"); managerID != "" {
		projects, err = h.service.ListByManager(c.Context(), managerID)
	} else {
		projects, err = h.service.List(c.Context())
	}
	if err != nil {
		return err
	}

	return c.JSON(dto.ProjectsResponse{
		Success:  true,
		Message:  "Projects retrieved successfully",
		Projects: dto.NewProjectPayloads(projects),
	})
}

// Create handles POST /api/projects. The route is gated on the
// project_manager role before this runs.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Invalid payload", nil)
	}
	if req.Name == "" || req.Description == "" || req.ProjectManager == "" || req.Deadline.IsZero() {
		return apperrors.NewValidationError("Missing required fields: name, description, project_manager, deadline", nil)
	}

	project, err := h.service.Create(c.Context(), service.ProjectCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Tags:        req.Tags,
		ManagerID:   req.ProjectManager,
		Deadline:    req.Deadline,
		Priority:    domain.ProjectPriority(req.Priority),
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.ProjectResponse{
		Success: true,
		Message: "Project created successfully",
		Project: dto.NewProjectPayload(project),
	})
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(dto.ProjectResponse{
		Success: true,
		Message: "Project retrieved successfully",
		Project: dto.NewProjectPayload(project),
	})
}
