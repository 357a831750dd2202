package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
)

// PostgresProjectRepository implements ProjectRepository using PostgreSQL
type PostgresProjectRepository struct {
	db *sql.DB
}

// NewPostgresProjectRepository creates a new PostgreSQL project repository
func NewPostgresProjectRepository(db *sql.DB) repositories.ProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// Create stores a new project and assigns it an ID
func (r *PostgresProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	if project.ID == "" {
		project.ID = uuid.New().String()
	}
	if project.Status == "" {
		project.Status = entities.ProjectStatusActive
	}
	if err := project.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	query := `
		INSERT INTO projects (id, name, description, owner_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.OwnerID,
		string(project.Status), project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	query := `
		SELECT id, name, description, owner_id, status, created_at, updated_at
		FROM projects
		WHERE id = $1
	`
	var project entities.Project
	var status string

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Description, &project.OwnerID,
		&status, &project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	project.Status = entities.ProjectStatus(status)
	return &project, nil
}

// List retrieves all projects ordered by creation time
func (r *PostgresProjectRepository) List(ctx context.Context) ([]*entities.Project, error) {
	query := `
		SELECT id, name, description, owner_id, status, created_at, updated_at
		FROM projects
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

// ListForUser retrieves the projects the user is a member of
func (r *PostgresProjectRepository) ListForUser(ctx context.Context, userID string) ([]*entities.Project, error) {
	query := `
		SELECT p.id, p.name, p.description, p.owner_id, p.status, p.created_at, p.updated_at
		FROM projects p
		INNER JOIN project_members pm ON pm.project_id = p.id
		WHERE pm.user_id = $1
		ORDER BY p.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for user: %w", err)
	}
	defer rows.Close()

	return scanProjects(rows)
}

func scanProjects(rows *sql.Rows) ([]*entities.Project, error) {
	var projects []*entities.Project
	for rows.Next() {
		var project entities.Project
		var status string
		err := rows.Scan(
			&project.ID, &project.Name, &project.Description, &project.OwnerID,
			&status, &project.CreatedAt, &project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project.Status = entities.ProjectStatus(status)
		projects = append(projects, &project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// Update replaces a project's mutable fields
func (r *PostgresProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("invalid project: %w", err)
	}

	query := `
		UPDATE projects
		SET name = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, string(project.Status), time.Now(), project.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project %s: %w", project.ID, repositories.ErrNotFound)
	}
	return nil
}

// Delete removes a project and its memberships
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project memberships: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project %s: %w", id, repositories.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Count returns the total number of projects
func (r *PostgresProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}
