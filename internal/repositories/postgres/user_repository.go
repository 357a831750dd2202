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

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *sql.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sql.DB) repositories.UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create stores a new user and assigns it an ID
func (r *PostgresUserRepository) Create(ctx context.Context, user *entities.Principal) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	query := `
		INSERT INTO users (id, email, name, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, string(user.Role), user.Active, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*entities.Principal, error) {
	query := `
		SELECT id, email, name, role, active
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id), id)
}

// GetByEmail retrieves a user by email address
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*entities.Principal, error) {
	query := `
		SELECT id, email, name, role, active
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email), email)
}

func (r *PostgresUserRepository) scanUser(row *sql.Row, key string) (*entities.Principal, error) {
	var user entities.Principal
	var role string

	err := row.Scan(&user.ID, &user.Email, &user.Name, &role, &user.Active)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", key, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = entities.Role(role)
	return &user, nil
}

// List retrieves all users ordered by name
func (r *PostgresUserRepository) List(ctx context.Context) ([]*entities.Principal, error) {
	query := `
		SELECT id, email, name, role, active
		FROM users
		ORDER BY name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entities.Principal
	for rows.Next() {
		var user entities.Principal
		var role string
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &role, &user.Active); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Role = entities.Role(role)
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Update replaces a user's mutable fields
func (r *PostgresUserRepository) Update(ctx context.Context, user *entities.Principal) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid user: %w", err)
	}

	query := `
		UPDATE users
		SET email = $1, name = $2, role = $3, active = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.Name, string(user.Role), user.Active, time.Now(), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", user.ID, repositories.ErrNotFound)
	}
	return nil
}

// CountByRole returns the number of users per role
func (r *PostgresUserRepository) CountByRole(ctx context.Context) (map[entities.Role]int, error) {
	query := `
		SELECT role, COUNT(*)
		FROM users
		GROUP BY role
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.Role]int)
	for rows.Next() {
		var role string
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, fmt.Errorf("failed to scan role count: %w", err)
		}
		counts[entities.Role(role)] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating role counts: %w", err)
	}

	return counts, nil
}
