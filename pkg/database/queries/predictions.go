package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OldStager01/gpa-tracker/pkg/database"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

var ErrPredictionNotFound = errors.New("prediction not found")

type PredictionRepository struct {
	db *sql.DB
}

func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Get(ctx context.Context) (*models.Prediction, error) {
	query := `
		SELECT id, run_id, linear_regression_gpa, random_forest_gpa, better_model,
		       accuracy, academic_standing, confidence_score, trend, trend_analysis,
		       next_semester_prediction, course_count, computed_at
		FROM predictions
		ORDER BY id DESC
		LIMIT 1`

	var p models.Prediction
	err := r.db.QueryRowContext(ctx, query).Scan(
		&p.ID,
		&p.RunID,
		&p.LinearRegressionGPA,
		&p.RandomForestGPA,
		&p.BetterModel,
		&p.Accuracy,
		&p.AcademicStanding,
		&p.ConfidenceScore,
		&p.Trend,
		&p.TrendAnalysis,
		&p.NextSemesterPrediction,
		&p.CourseCount,
		&p.ComputedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPredictionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// Set replaces the stored prediction. The table never holds more than one row.
func (r *PredictionRepository) Set(ctx context.Context, p *models.Prediction) error {
	return database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM predictions`); err != nil {
			return err
		}

		query := `
			INSERT INTO predictions (
				run_id, linear_regression_gpa, random_forest_gpa, better_model,
				accuracy, academic_standing, confidence_score, trend, trend_analysis,
				next_semester_prediction, course_count, computed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`

		return tx.QueryRowContext(ctx, query,
			p.RunID,
			p.LinearRegressionGPA,
			p.RandomForestGPA,
			p.BetterModel,
			p.Accuracy,
			p.AcademicStanding,
			p.ConfidenceScore,
			p.Trend,
			p.TrendAnalysis,
			p.NextSemesterPrediction,
			p.CourseCount,
			p.ComputedAt,
		).Scan(&p.ID)
	})
}

func (r *PredictionRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM predictions`)
	return err
}
