package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
	"github.com/OldStager01/gpa-tracker/pkg/models"
	"github.com/OldStager01/gpa-tracker/pkg/validation"
)

type CourseHandler struct {
	tracker Tracker
}

func NewCourseHandler(tracker Tracker) *CourseHandler {
	return &CourseHandler{tracker: tracker}
}

type CreateCourseRequest struct {
	Name     string `json:"name" binding:"required" example:"Data Structures"`
	Credits  int    `json:"credits" binding:"required" example:"4"`
	Grade    string `json:"grade" binding:"required" example:"B+"`
	Semester string `json:"semester" binding:"required" example:"Semester 1"`
	Program  string `json:"program" example:"software_engineering"`
}

// List godoc
// @Summary List courses
// @Description All recorded courses in insertion order
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	courses, err := h.tracker.ListCourses(ctx)
	if err != nil {
		logger.ErrorCtxf(ctx, "Failed to list courses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch courses"})
		return
	}

	c.JSON(http.StatusOK, courses)
}

// Create godoc
// @Summary Add course
// @Description Record a completed course. The grade must be on the grade table.
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} map[string]string "Invalid course"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	course, err := h.tracker.AddCourse(ctx, models.NewCourse(req.Name, req.Credits, req.Grade, req.Semester, req.Program))
	if err != nil {
		if errors.Is(err, validation.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.ErrorCtxf(ctx, "Failed to add course: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add course"})
		return
	}

	c.JSON(http.StatusCreated, course)
}

// Delete godoc
// @Summary Remove course
// @Tags Courses
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Course removed"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.tracker.RemoveCourse(ctx, id); err != nil {
		if errors.Is(err, queries.ErrCourseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		logger.ErrorCtxf(ctx, "Failed to remove course %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove course"})
		return
	}

	c.Status(http.StatusNoContent)
}
