package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/project-dashboard/internal/domain"
)

// ProjectRepository encapsulates project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListAll(ctx context.Context) ([]domain.Project, error)
	ListByManager(ctx context.Context, managerID string) ([]domain.Project, error)
}

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository instantiates repository.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

// Create inserts the project with its caller-supplied id. Tags are stored as
// a JSON array in a text column.
func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	tags, err := encodeTags(project.Tags)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO projects (id, name, description, tags, project_manager, deadline, priority, image_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		tags,
		project.ManagerID,
		project.Deadline,
		project.Priority,
		project.ImageURL,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	const query = `
        SELECT p.id, p.name, p.description, p.tags, p.project_manager, u.name,
               p.deadline, p.priority, p.image_url, p.created_at, p.updated_at
        FROM projects p
        LEFT JOIN users u ON p.project_manager = u.id
        WHERE p.id=$1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanProject(row)
}

// ListAll returns every project, newest first.
func (r *projectRepository) ListAll(ctx context.Context) ([]domain.Project, error) {
	const query = `
        SELECT p.id, p.name, p.description, p.tags, p.project_manager, u.name,
               p.deadline, p.priority, p.image_url, p.created_at, p.updated_at
        FROM projects p
        LEFT JOIN users u ON p.project_manager = u.id
        ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

// ListByManager returns the manager's projects, newest first.
func (r *projectRepository) ListByManager(ctx context.Context, managerID string) ([]domain.Project, error) {
	const query = `
        SELECT p.id, p.name, p.description, p.tags, p.project_manager, u.name,
               p.deadline, p.priority, p.image_url, p.created_at, p.updated_at
        FROM projects p
        LEFT JOIN users u ON p.project_manager = u.id
        WHERE p.project_manager=$1
        ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProjects(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		project domain.Project
		rawTags *string
	)
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&rawTags,
		&project.ManagerID,
		&project.ManagerName,
		&project.Deadline,
		&project.Priority,
		&project.ImageURL,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tags, err := decodeTags(rawTags)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", project.ID, err)
	}
	project.Tags = tags
	return &project, nil
}

func collectProjects(rows pgx.Rows) ([]domain.Project, error) {
	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

// encodeTags serializes tags to the JSON text representation the column
// holds. A nil slice stores as an empty array.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(raw), nil
}

// decodeTags parses the stored JSON array. A NULL column yields no tags; a
// malformed value is a store-level error, not a silent drop.
func decodeTags(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*raw), &tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return tags, nil
}
