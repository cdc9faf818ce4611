package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/internal/tracker"
	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
)

type PredictionHandler struct {
	tracker Tracker
}

func NewPredictionHandler(tracker Tracker) *PredictionHandler {
	return &PredictionHandler{tracker: tracker}
}

// Get godoc
// @Summary Current prediction
// @Description The most recently computed prediction
// @Tags Predictions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Prediction
// @Failure 404 {object} map[string]string "No predictions yet"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/predictions [get]
func (h *PredictionHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	p, err := h.tracker.CurrentPrediction(ctx)
	if err != nil {
		if errors.Is(err, queries.ErrPredictionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No predictions yet"})
			return
		}
		logger.ErrorCtxf(ctx, "Failed to load prediction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch prediction"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Calculate godoc
// @Summary Recalculate prediction
// @Description Runs both models over the current courses and replaces the stored prediction
// @Tags Predictions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Prediction
// @Failure 400 {object} map[string]string "Add courses first"
// @Failure 500 {object} map[string]string "Failed to calculate predictions"
// @Router /api/predictions/calculate [post]
func (h *PredictionHandler) Calculate(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	p, err := h.tracker.Recalculate(ctx)
	if err != nil {
		if errors.Is(err, tracker.ErrNoCourses) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Add courses first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate predictions"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Explain godoc
// @Summary Explain prediction
// @Description Feature vector, ensemble member outputs and model comparison for the current courses
// @Tags Predictions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} prediction.Explanation
// @Failure 400 {object} map[string]string "Add courses first"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/predictions/explain [get]
func (h *PredictionHandler) Explain(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	explanation, err := h.tracker.Explain(ctx)
	if err != nil {
		if errors.Is(err, tracker.ErrNoCourses) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Add courses first"})
			return
		}
		logger.ErrorCtxf(ctx, "Failed to explain prediction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to explain prediction"})
		return
	}

	c.JSON(http.StatusOK, explanation)
}
