package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/internal/prediction"
)

type SummaryHandler struct {
	tracker Tracker
}

func NewSummaryHandler(tracker Tracker) *SummaryHandler {
	return &SummaryHandler{tracker: tracker}
}

// Summary godoc
// @Summary GPA summary
// @Description Credit-weighted GPA, credit totals and degree progress
// @Tags Summary
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.GPASummary
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/summary [get]
func (h *SummaryHandler) Summary(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.tracker.Summary(ctx)
	if err != nil {
		logger.ErrorCtxf(ctx, "Failed to build summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Grades godoc
// @Summary Grade table
// @Description Accepted letter grades and their grade points, best first
// @Tags Summary
// @Produce json
// @Success 200 {array} prediction.GradeEntry
// @Router /api/grades [get]
func (h *SummaryHandler) Grades(c *gin.Context) {
	c.JSON(http.StatusOK, prediction.GradeScale())
}
