package handler

import (
	"errors"
	"net/http"

	"course_platform/internal/model"
	"course_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CourseHandler handles catalog requests
type CourseHandler struct {
	service      service.CourseService
	exposeErrors bool
	log          zerolog.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(s service.CourseService, exposeErrors bool, log zerolog.Logger) *CourseHandler {
	return &CourseHandler{service: s, exposeErrors: exposeErrors, log: log}
}

func (h *CourseHandler) internalError(c *gin.Context, err error, fallback string) {
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	message := fallback
	if h.exposeErrors {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req model.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		h.internalError(c, err, "Failed to create course")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Course created", "data": course})
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid course ID"})
		return
	}

	course, err := h.service.GetCourse(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		h.internalError(c, err, "Failed to get course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course found", "data": course})
}

func (h *CourseHandler) List(c *gin.Context) {
	var filters model.CourseFilters
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}

	courses, err := h.service.ListCourses(c.Request.Context(), filters)
	if err != nil {
		h.internalError(c, err, "Failed to list courses")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Courses listed", "data": courses})
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid course ID"})
		return
	}

	var req model.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		h.internalError(c, err, "Failed to update course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course updated", "data": course})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid course ID"})
		return
	}

	if err := h.service.DeleteCourse(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			return
		}
		h.internalError(c, err, "Failed to delete course")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course deleted"})
}

// RegisterCourseRoutes registers catalog routes. Reads require a valid
// token; writes additionally require the admin role.
func (h *CourseHandler) RegisterCourseRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	courses := rg.Group("/courses", authMW)
	{
		courses.GET("", h.List)
		courses.GET("/:id", h.Get)
		courses.POST("", adminMW, h.Create)
		courses.PUT("/:id", adminMW, h.Update)
		courses.DELETE("/:id", adminMW, h.Delete)
	}
}
