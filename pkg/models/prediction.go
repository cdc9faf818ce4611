package models

import (
	"time"

	"github.com/OldStager01/gpa-tracker/internal/prediction"
)

// Prediction is the single stored prediction. At most one exists at a time.
type Prediction struct {
	ID                     int       `json:"id,omitempty"`
	RunID                  string    `json:"run_id"`
	LinearRegressionGPA    float64   `json:"linear_regression_gpa"`
	RandomForestGPA        float64   `json:"random_forest_gpa"`
	BetterModel            string    `json:"better_model"`
	Accuracy               int       `json:"accuracy"`
	AcademicStanding       string    `json:"academic_standing"`
	ConfidenceScore        float64   `json:"confidence_score"`
	Trend                  string    `json:"trend"`
	TrendAnalysis          string    `json:"trend_analysis"`
	NextSemesterPrediction float64   `json:"next_semester_prediction"`
	CourseCount            int       `json:"course_count"`
	ComputedAt             time.Time `json:"computed_at"`
}

func NewPrediction(result prediction.Result, courseCount int) *Prediction {
	return &Prediction{
		RunID:                  NewUUID(),
		LinearRegressionGPA:    result.LinearRegressionGPA,
		RandomForestGPA:        result.RandomForestGPA,
		BetterModel:            result.BetterModel.String(),
		Accuracy:               result.Accuracy,
		AcademicStanding:       string(result.AcademicStanding),
		ConfidenceScore:        result.ConfidenceScore,
		Trend:                  string(result.Trend),
		TrendAnalysis:          result.TrendAnalysis,
		NextSemesterPrediction: result.NextSemesterPrediction,
		CourseCount:            courseCount,
		ComputedAt:             time.Now(),
	}
}

// IsDeclining reports whether the later half of the record scored clearly lower.
func (p *Prediction) IsDeclining() bool {
	return p.Trend == string(prediction.TrendDeclining)
}

// SameOutcome reports whether two predictions carry identical model output,
// ignoring identity and timestamps.
func (p *Prediction) SameOutcome(other *Prediction) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.LinearRegressionGPA == other.LinearRegressionGPA &&
		p.RandomForestGPA == other.RandomForestGPA &&
		p.BetterModel == other.BetterModel &&
		p.Accuracy == other.Accuracy &&
		p.AcademicStanding == other.AcademicStanding &&
		p.ConfidenceScore == other.ConfidenceScore &&
		p.Trend == other.Trend &&
		p.TrendAnalysis == other.TrendAnalysis &&
		p.NextSemesterPrediction == other.NextSemesterPrediction
}
