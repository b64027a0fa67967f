package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_platform/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateEmail is returned when an insert violates the unique email
// constraint.
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolationCode = "23505"

// DB is the subset of pgxpool.Pool the repositories need. Tests substitute
// a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// UpdatePassword swaps the stored hash only if it still equals oldHash.
	// Returns the new updated_at, or nil when no row matched.
	UpdatePassword(ctx context.Context, id uuid.UUID, oldHash, newHash string) (*time.Time, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, phone, role, provider, password_hash, google_id, picture, created_at, updated_at`

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (id, email, name, phone, role, provider, password_hash, google_id, picture, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, sql,
		user.ID, user.Email, user.Name, user.Phone, user.Role, user.Provider,
		user.PasswordHash, user.GoogleID, user.Picture, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email. Callers are expected to pass the
// email already normalized to lower case.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.QueryRow(ctx, sql, email).Scan(
		&user.ID, &user.Email, &user.Name, &user.Phone, &user.Role, &user.Provider,
		&user.PasswordHash, &user.GoogleID, &user.Picture, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found is not an error for this method's contract, service layer handles it
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&user.ID, &user.Email, &user.Name, &user.Phone, &user.Role, &user.Provider,
		&user.PasswordHash, &user.GoogleID, &user.Picture, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpdatePassword performs a compare-and-swap on the stored hash so two
// concurrent changes cannot interleave into a hash matching neither input.
func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, oldHash, newHash string) (*time.Time, error) {
	sql := `UPDATE users SET password_hash = $3, updated_at = NOW()
            WHERE id = $1 AND password_hash = $2 RETURNING updated_at`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, sql, id, oldHash, newHash).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Record gone or hash moved underneath us
		}
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	return &updatedAt, nil
}
