package service

import (
	"context"
	"time"

	"course_platform/internal/model"
	"course_platform/internal/oauth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	var user *model.User
	if v := args.Get(0); v != nil {
		user = v.(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	var user *model.User
	if v := args.Get(0); v != nil {
		user = v.(*model.User)
	}
	return user, args.Error(1)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, oldHash, newHash string) (*time.Time, error) {
	args := m.Called(ctx, id, oldHash, newHash)
	var updatedAt *time.Time
	if v := args.Get(0); v != nil {
		updatedAt = v.(*time.Time)
	}
	return updatedAt, args.Error(1)
}

type mockGoogleVerifier struct {
	mock.Mock
}

func (m *mockGoogleVerifier) Verify(ctx context.Context, rawToken string) (*oauth.GoogleClaims, error) {
	args := m.Called(ctx, rawToken)
	var claims *oauth.GoogleClaims
	if v := args.Get(0); v != nil {
		claims = v.(*oauth.GoogleClaims)
	}
	return claims, args.Error(1)
}

type mockCourseRepo struct {
	mock.Mock
}

func (m *mockCourseRepo) Create(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, id)
	var course *model.Course
	if v := args.Get(0); v != nil {
		course = v.(*model.Course)
	}
	return course, args.Error(1)
}

func (m *mockCourseRepo) FindAll(ctx context.Context, filters model.CourseFilters) ([]model.Course, error) {
	args := m.Called(ctx, filters)
	var courses []model.Course
	if v := args.Get(0); v != nil {
		courses = v.([]model.Course)
	}
	return courses, args.Error(1)
}

func (m *mockCourseRepo) Update(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *mockCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
