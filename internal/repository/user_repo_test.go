package repository

import (
	"context"
	"testing"
	"time"

	"course_platform/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRowColumns() []string {
	return []string{"id", "email", "name", "phone", "role", "provider", "password_hash", "google_id", "picture", "created_at", "updated_at"}
}

func sampleUser() *model.User {
	hash := "$2a$12$fakehashfakehashfakehash"
	return model.NewLocalUser("ada@example.com", "Ada", nil, hash, model.RoleUser)
}

func userRow(u *model.User) *pgxmock.Rows {
	return pgxmock.NewRows(userRowColumns()).AddRow(
		u.ID, u.Email, u.Name, u.Phone, u.Role, u.Provider,
		u.PasswordHash, u.GoogleID, u.Picture, u.CreatedAt, u.UpdatedAt,
	)
}

func TestUserRepository_Create(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	user := sampleUser()

	mockPool.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.Name, user.Phone, user.Role, user.Provider,
			user.PasswordHash, user.GoogleID, user.Picture, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), user)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	user := sampleUser()

	mockPool.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.Name, user.Phone, user.Role, user.Provider,
			user.PasswordHash, user.GoogleID, user.Picture, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err = repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	user := sampleUser()

	mockPool.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs(user.Email).
		WillReturnRows(userRow(user))

	found, err := repo.FindByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, user.Email, found.Email)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)

	mockPool.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("missing@example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns()))

	found, err := repo.FindByEmail(context.Background(), "missing@example.com")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepository_FindByID_NotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	id := uuid.New()

	mockPool.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userRowColumns()))

	found, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	id := uuid.New()
	now := time.Now()

	mockPool.ExpectQuery("UPDATE users SET password_hash").
		WithArgs(id, "old-hash", "new-hash").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	updatedAt, err := repo.UpdatePassword(context.Background(), id, "old-hash", "new-hash")
	require.NoError(t, err)
	require.NotNil(t, updatedAt)
	assert.WithinDuration(t, now, *updatedAt, time.Second)
}

func TestUserRepository_UpdatePassword_StaleHash(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewUserRepository(mockPool)
	id := uuid.New()

	// The CAS condition did not match any row
	mockPool.ExpectQuery("UPDATE users SET password_hash").
		WithArgs(id, "stale-hash", "new-hash").
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))

	updatedAt, err := repo.UpdatePassword(context.Background(), id, "stale-hash", "new-hash")
	assert.NoError(t, err)
	assert.Nil(t, updatedAt)
}
