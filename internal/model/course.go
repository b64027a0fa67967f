package model

import (
	"time"

	"github.com/google/uuid"
)

// Course represents a catalog entry
type Course struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"` // Pointer for optional field
	Category    string    `json:"category"`
	Price       int64     `json:"price"` // In smallest currency unit
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseRequest is used for creating a new course
type CreateCourseRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Price       int64   `json:"price" binding:"gte=0"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty"` // Pointers to allow partial updates
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Price       *int64  `json:"price,omitempty" binding:"omitempty,gte=0"`
}

// CourseFilters contains filter parameters for catalog queries
type CourseFilters struct {
	Category *string
}
