package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"physioflow/server/internal/domain"
	"physioflow/server/internal/repository"
)

const userColumns = "id, email, password_hash, created_at"

// userRepository implements repository.UserRepository over PostgreSQL.
type userRepository struct {
	db DBTX
}

// NewUserRepository creates a User repository backed by PostgreSQL.
func NewUserRepository(db DBTX) repository.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new authentication identity. The unique index on email
// rejects duplicates at the database level.
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	var u domain.User
	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves an identity by exact email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var u domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves an identity by id.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
