package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/project-dashboard/internal/domain"
	"github.com/spec-kit/project-dashboard/internal/events"
)

type fakeProjectRepo struct {
	projects map[string]*domain.Project
	creates  int
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*domain.Project{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.creates++
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	stored := *project
	r.projects[project.ID] = &stored
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *project
	return &copied, nil
}

func (r *fakeProjectRepo) ListAll(_ context.Context) ([]domain.Project, error) {
	var out []domain.Project
	for _, project := range r.projects {
		out = append(out, *project)
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByManager(_ context.Context, managerID string) ([]domain.Project, error) {
	var out []domain.Project
	for _, project := range r.projects {
		if project.ManagerID == managerID {
			out = append(out, *project)
		}
	}
	return out, nil
}

func seedManager(t *testing.T, repo *fakeUserRepo) *domain.User {
	t.Helper()
	manager := &domain.User{Email: "pm@x.com", Name: "Paula Manager", Role: domain.RoleProjectManager}
	require.NoError(t, repo.Create(context.Background(), manager))
	return manager
}

func validInput(managerID string) ProjectCreateInput {
	return ProjectCreateInput{
		Name:        "Website relaunch",
		Description: "New marketing site",
		Tags:        []string{"a", "b"},
		ManagerID:   managerID,
		Deadline:    time.Now().Add(48 * time.Hour),
		Priority:    domain.PriorityHigh,
	}
}

func TestCreateProject(t *testing.T) {
	users := newFakeUserRepo()
	manager := seedManager(t, users)
	projects := newFakeProjectRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewProjectService(projects, users, dispatcher)

	project, err := svc.Create(context.Background(), validInput(manager.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, []string{"a", "b"}, project.Tags)
	require.NotNil(t, project.ManagerName)
	assert.Equal(t, "Paula Manager", *project.ManagerName)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventProjectCreated, dispatcher.published[0].Type)

	fetched, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fetched.Tags)
}

func TestCreateProjectPastDeadline(t *testing.T) {
	users := newFakeUserRepo()
	manager := seedManager(t, users)
	projects := newFakeProjectRepo()
	svc := NewProjectService(projects, users, nil)

	input := validInput(manager.ID)
	input.Deadline = time.Now().Add(-time.Hour)

	_, err := svc.Create(context.Background(), input)
	de := domainErr(t, err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, "Deadline must be in the future", de.Message)
	assert.Zero(t, projects.creates, "nothing persisted")
}

func TestCreateProjectInvalidPriority(t *testing.T) {
	users := newFakeUserRepo()
	manager := seedManager(t, users)
	svc := NewProjectService(newFakeProjectRepo(), users, nil)

	input := validInput(manager.ID)
	input.Priority = "urgent"

	_, err := svc.Create(context.Background(), input)
	de := domainErr(t, err)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Equal(t, "Priority must be low, medium, or high", de.Message)
}

func TestCreateProjectManagerValidation(t *testing.T) {
	users := newFakeUserRepo()
	employee := &domain.User{Email: "emp@x.com", Name: "Evan", Role: domain.RoleEmployee}
	require.NoError(t, users.Create(context.Background(), employee))
	svc := NewProjectService(newFakeProjectRepo(), users, nil)

	t.Run("unknown manager", func(t *testing.T) {
		_, err := svc.Create(context.Background(), validInput("missing-id"))
		de := domainErr(t, err)
		assert.Equal(t, 400, de.HTTPStatus)
		assert.Equal(t, "Invalid project manager", de.Message)
	})

	t.Run("manager without role", func(t *testing.T) {
		_, err := svc.Create(context.Background(), validInput(employee.ID))
		de := domainErr(t, err)
		assert.Equal(t, 400, de.HTTPStatus)
		assert.Equal(t, "Invalid project manager", de.Message)
	})
}

func TestGetProjectNotFound(t *testing.T) {
	svc := NewProjectService(newFakeProjectRepo(), newFakeUserRepo(), nil)

	_, err := svc.Get(context.Background(), "nope")
	de := domainErr(t, err)
	assert.Equal(t, 404, de.HTTPStatus)
}

func TestNewProjectID(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := newProjectID()
		assert.Greater(t, len(id), 11)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected character %q in %s", r, id)
		}
		seen[id] = struct{}{}
	}
	// Collisions are possible in principle but not across 100 draws.
	assert.Len(t, seen, 100)
}
