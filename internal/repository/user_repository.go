package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praceando/event-platform/internal/domain"
)

// UserRepository is the credential store consumed by the authentication
// gateway and the login flow. Lookups resolve the current role name in the
// same query so the gateway never trusts a stale role claim.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `
        u.id, u.name, u.email, u.password_hash, u.role_id, r.name, u.status,
        u.created_at, u.updated_at`

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT` + userColumns + `
        FROM users u
        JOIN roles r ON r.id = u.role_id
        WHERE lower(u.email) = lower($1) AND u.deleted_at IS NULL`

	return r.scanUser(r.pool.QueryRow(ctx, query, strings.TrimSpace(email)))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT` + userColumns + `
        FROM users u
        JOIN roles r ON r.id = u.role_id
        WHERE u.id = $1 AND u.deleted_at IS NULL`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM users WHERE lower(email) = lower($1) AND deleted_at IS NULL
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, strings.TrimSpace(email)).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM users WHERE id = $1 AND deleted_at IS NULL
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.RoleID,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
