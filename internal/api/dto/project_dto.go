package dto

import (
	"time"

	"github.com/spec-kit/project-dashboard/internal/domain"
)

// CreateProjectRequest payload for new projects.
type CreateProjectRequest struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags"`
	ProjectManager string    `json:"project_manager"`
	Deadline       time.Time `json:"deadline"`
	Priority       string    `json:"priority"`
	ImageURL       *string   `json:"image_url,omitempty"`
}

// ProjectPayload is the client-facing project shape.
type ProjectPayload struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Tags               []string  `json:"tags"`
	ProjectManager     string    `json:"project_manager"`
	ProjectManagerName *string   `json:"project_manager_name,omitempty"`
	Deadline           time.Time `json:"deadline"`
	Priority           string    `json:"priority"`
	ImageURL           *string   `json:"image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProjectResponse wraps a single project.
type ProjectResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Project *ProjectPayload `json:"project,omitempty"`
}

// ProjectsResponse wraps a listing.
type ProjectsResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Projects []ProjectPayload `json:"projects"`
}

// NewProjectPayload maps the domain project to its API shape.
func NewProjectPayload(project *domain.Project) *ProjectPayload {
	if project == nil {
		return nil
	}
	tags := project.Tags
	if tags == nil {
		tags = []string{}
	}
	return &ProjectPayload{
		ID:                 project.ID,
		Name:               project.Name,
		Description:        project.Description,
		Tags:               tags,
		ProjectManager:     project.ManagerID,
		ProjectManagerName: project.ManagerName,
		Deadline:           project.Deadline,
		Priority:           string(project.Priority),
		ImageURL:           project.ImageURL,
		CreatedAt:          project.CreatedAt,
		UpdatedAt:          project.UpdatedAt,
	}
}

// NewProjectPayloads maps a listing.
func NewProjectPayloads(projects []domain.Project) []ProjectPayload {
	items := make([]ProjectPayload, 0, len(projects))
	for i := range projects {
		items = append(items, *NewProjectPayload(&projects[i]))
	}
	return items
}
