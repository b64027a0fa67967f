package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"course_platform/internal/model"
	"course_platform/internal/repository"

	"github.com/google/uuid"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseService provides catalog operations
type CourseService interface {
	CreateCourse(ctx context.Context, req model.CreateCourseRequest) (*model.Course, error)
	GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListCourses(ctx context.Context, filters model.CourseFilters) ([]model.Course, error)
	UpdateCourse(ctx context.Context, id uuid.UUID, req model.UpdateCourseRequest) (*model.Course, error)
	DeleteCourse(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	courseRepo repository.CourseRepository
}

// NewCourseService creates a new CourseService
func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

// CreateCourse adds a new course to the catalog
func (s *courseService) CreateCourse(ctx context.Context, req model.CreateCourseRequest) (*model.Course, error) {
	now := time.Now()
	course := &model.Course{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// GetCourse retrieves a single course
func (s *courseService) GetCourse(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

// ListCourses retrieves courses matching the filters
func (s *courseService) ListCourses(ctx context.Context, filters model.CourseFilters) ([]model.Course, error) {
	courses, err := s.courseRepo.FindAll(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// UpdateCourse applies a partial update to an existing course
func (s *courseService) UpdateCourse(ctx context.Context, id uuid.UUID, req model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

// DeleteCourse removes a course from the catalog
func (s *courseService) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find course: %w", err)
	}
	if course == nil {
		return ErrCourseNotFound
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
