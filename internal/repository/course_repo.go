package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"course_platform/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CourseRepository defines operations for catalog data
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	FindAll(ctx context.Context, filters model.CourseFilters) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseRepository struct {
	db DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DB) CourseRepository {
	return &courseRepository{db: db}
}

// Create inserts a new course into the database
func (r *courseRepository) Create(ctx context.Context, c *model.Course) error {
	sql := `INSERT INTO courses (id, title, description, category, price, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, c.ID, c.Title, c.Description, c.Category, c.Price, c.CreatedAt, c.UpdatedAt).
		Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// FindByID retrieves a course by its ID
func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	sql := `SELECT id, title, description, category, price, created_at, updated_at
            FROM courses WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Price, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to find course by ID: %w", err)
	}
	return c, nil
}

// FindAll retrieves courses with optional filters
func (r *courseRepository) FindAll(ctx context.Context, filters model.CourseFilters) ([]model.Course, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, title, description, category, price, created_at, updated_at
                               FROM courses WHERE 1=1`)
	args := []interface{}{}
	argCount := 1

	if filters.Category != nil && *filters.Category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.Price, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// Update modifies an existing course
func (r *courseRepository) Update(ctx context.Context, c *model.Course) error {
	sql := `UPDATE courses SET title = $2, description = $3, category = $4, price = $5, updated_at = NOW()
            WHERE id = $1 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, c.ID, c.Title, c.Description, c.Category, c.Price).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("course not found for update")
		}
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// Delete removes a course by its ID
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	sql := `DELETE FROM courses WHERE id = $1`
	tag, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("course not found for delete")
	}
	return nil
}
