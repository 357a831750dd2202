package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/entities"
	"github.com/SrinivasanNikhil/ProjectAgents-sub002/internal/repositories"
)

// PostgresMembershipRepository implements MembershipRepository using PostgreSQL
type PostgresMembershipRepository struct {
	db *sql.DB
}

// NewPostgresMembershipRepository creates a new PostgreSQL membership repository
func NewPostgresMembershipRepository(db *sql.DB) repositories.MembershipRepository {
	return &PostgresMembershipRepository{db: db}
}

// AddMember adds a user to a project; adding an existing member is a no-op
func (r *PostgresMembershipRepository) AddMember(ctx context.Context, projectID string, userID string) error {
	query := `
		INSERT INTO project_members (project_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, projectID, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add project member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from a project
func (r *PostgresMembershipRepository) RemoveMember(ctx context.Context, projectID string, userID string) error {
	query := `
		DELETE FROM project_members
		WHERE project_id = $1 AND user_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("membership %s/%s: %w", projectID, userID, repositories.ErrNotFound)
	}
	return nil
}

// IsProjectMember reports whether the user belongs to the project
func (r *PostgresMembershipRepository) IsProjectMember(ctx context.Context, userID string, projectID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM project_members
			WHERE project_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check project membership: %w", err)
	}
	return exists, nil
}

// ListMembers retrieves the users belonging to a project ordered by name
func (r *PostgresMembershipRepository) ListMembers(ctx context.Context, projectID string) ([]*entities.Principal, error) {
	query := `
		SELECT u.id, u.email, u.name, u.role, u.active
		FROM users u
		INNER JOIN project_members pm ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY u.name
	`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	defer rows.Close()

	var members []*entities.Principal
	for rows.Next() {
		var user entities.Principal
		var role string
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &role, &user.Active); err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		user.Role = entities.Role(role)
		members = append(members, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project members: %w", err)
	}

	return members, nil
}
