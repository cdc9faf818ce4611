package handlers

import (
	"context"

	"github.com/OldStager01/gpa-tracker/internal/prediction"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

// Tracker is the part of tracker.Service the HTTP layer calls.
type Tracker interface {
	Ping(ctx context.Context) error
	ListCourses(ctx context.Context) ([]*models.Course, error)
	AddCourse(ctx context.Context, course *models.Course) (*models.Course, error)
	RemoveCourse(ctx context.Context, id int) error
	Recalculate(ctx context.Context) (*models.Prediction, error)
	CurrentPrediction(ctx context.Context) (*models.Prediction, error)
	Summary(ctx context.Context) (*models.GPASummary, error)
	Explain(ctx context.Context) (*prediction.Explanation, error)
}
