// Package tracker is the calling layer around the prediction engine: it owns
// the course list and the single stored prediction.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/OldStager01/gpa-tracker/internal/events"
	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/internal/metrics"
	"github.com/OldStager01/gpa-tracker/internal/prediction"
	"github.com/OldStager01/gpa-tracker/pkg/config"
	"github.com/OldStager01/gpa-tracker/pkg/models"
	"github.com/OldStager01/gpa-tracker/pkg/validation"
)

// ErrNoCourses is returned when a prediction is requested for an empty record.
var ErrNoCourses = errors.New("no courses recorded")

const defaultRequiredCredits = 120

type Service struct {
	store     Store
	publisher *events.Publisher
	metrics   *metrics.Metrics
	cfg       config.TrackerConfig

	// serializes recalculation so concurrent runs cannot interleave set/clear
	calcMu sync.Mutex
}

func NewService(store Store, cfg config.TrackerConfig, publisher *events.Publisher, m *metrics.Metrics) *Service {
	if cfg.RequiredCredits <= 0 {
		cfg.RequiredCredits = defaultRequiredCredits
	}
	if m == nil {
		m = metrics.Get()
	}
	return &Service{
		store:     store,
		publisher: publisher,
		metrics:   m,
		cfg:       cfg,
	}
}

func (s *Service) publisherFor(ctx context.Context) *events.Publisher {
	if s.publisher == nil {
		return nil
	}
	if traceID := logger.TraceIDFromContext(ctx); traceID != "" {
		return s.publisher.WithTraceID(traceID)
	}
	return s.publisher
}

// Ping reports store readiness when the store supports it.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Service) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// AddCourse validates and stores a course. The grade is normalized to the
// grade table spelling before it is stored.
func (s *Service) AddCourse(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.Name = validation.SanitizeString(course.Name)
	course.Semester = validation.SanitizeString(course.Semester)
	course.Grade = validation.NormalizeGrade(course.Grade)
	if course.Program == "" {
		course.Program = models.DefaultProgram
	}

	if err := errors.Join(
		validation.ValidateCourseName(course.Name),
		validation.ValidateCredits(course.Credits),
		validation.ValidateGrade(course.Grade),
		validation.ValidateSemester(course.Semester),
		validation.ValidateProgram(course.Program),
	); err != nil {
		return nil, err
	}

	if err := s.store.AddCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to add course: %w", err)
	}

	s.metrics.IncCoursesAdded()
	logger.WithCourse(course.ID).Infof("Course added: %s (%s)", course.Name, course.Grade)
	s.publisherFor(ctx).CourseAdded(course)

	s.afterMutation(ctx)
	return course, nil
}

// RemoveCourse deletes a course; queries.ErrCourseNotFound when absent.
func (s *Service) RemoveCourse(ctx context.Context, id int) error {
	if err := s.store.RemoveCourse(ctx, id); err != nil {
		return fmt.Errorf("failed to remove course %d: %w", id, err)
	}

	s.metrics.IncCoursesRemoved()
	logger.WithCourse(id).Info("Course removed")
	s.publisherFor(ctx).CourseRemoved(id)

	s.afterMutation(ctx)
	return nil
}

// afterMutation recomputes, or clears the prediction once the record is
// empty. Both happen under one hold of calcMu so a concurrent add cannot slip
// a prediction in between the empty check and the clear.
func (s *Service) afterMutation(ctx context.Context) {
	if !s.cfg.AutoRecalculate {
		return
	}

	s.calcMu.Lock()
	defer s.calcMu.Unlock()

	_, err := s.recalculate(ctx)
	if errors.Is(err, ErrNoCourses) {
		if err := s.store.ClearPrediction(ctx); err != nil {
			logger.ErrorCtxf(ctx, "Failed to clear prediction: %v", err)
			return
		}
		s.publisherFor(ctx).PredictionCleared("no courses remain")
		return
	}
	if err != nil {
		logger.ErrorCtxf(ctx, "Automatic recalculation failed: %v", err)
	}
}

// Recalculate runs the engine over the current course list and replaces the
// stored prediction.
func (s *Service) Recalculate(ctx context.Context) (*models.Prediction, error) {
	s.calcMu.Lock()
	defer s.calcMu.Unlock()
	return s.recalculate(ctx)
}

// recalculate requires calcMu.
func (s *Service) recalculate(ctx context.Context) (*models.Prediction, error) {
	start := time.Now()

	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		s.fail(ctx, "load_courses", err)
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}
	if len(courses) == 0 {
		s.metrics.IncPredictionFailure("no_courses")
		return nil, ErrNoCourses
	}

	result := prediction.Calculate(toEngineCourses(courses))
	p := models.NewPrediction(result, len(courses))

	if err := s.store.SetPrediction(ctx, p); err != nil {
		s.fail(ctx, "store", err)
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}

	s.metrics.RecordPrediction(len(courses), p.LinearRegressionGPA, p.RandomForestGPA, p.Accuracy, p.ConfidenceScore, time.Since(start))
	logger.WithRun(p.RunID).WithFields(map[string]interface{}{
		"courses":  len(courses),
		"linear":   p.LinearRegressionGPA,
		"forest":   p.RandomForestGPA,
		"standing": p.AcademicStanding,
	}).Info("Prediction computed")
	s.publisherFor(ctx).PredictionComputed(p)

	return p, nil
}

func (s *Service) fail(ctx context.Context, reason string, err error) {
	s.metrics.IncPredictionFailure(reason)
	logger.ErrorCtxf(ctx, "Prediction failed (%s): %v", reason, err)
	s.publisherFor(ctx).PredictionFailed(reason, err)
}

// CurrentPrediction returns the stored prediction or queries.ErrPredictionNotFound.
func (s *Service) CurrentPrediction(ctx context.Context) (*models.Prediction, error) {
	return s.store.GetPrediction(ctx)
}

// Summary is the plain credit-weighted GPA of the current record.
func (s *Service) Summary(ctx context.Context) (*models.GPASummary, error) {
	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(courses, s.cfg.RequiredCredits), nil
}

// Summarize computes GPA, totals and degree progress for a course list.
func Summarize(courses []*models.Course, requiredCredits int) *models.GPASummary {
	summary := &models.GPASummary{
		CourseCount:     len(courses),
		RequiredCredits: requiredCredits,
	}

	var points float64
	for _, c := range courses {
		points += prediction.GradeToPoint(c.Grade) * float64(c.Credits)
		summary.TotalCredits += c.Credits
	}

	if summary.TotalCredits > 0 {
		summary.GPA = prediction.Round2(points / float64(summary.TotalCredits))
	}
	summary.TotalPoints = prediction.Round2(points)

	if requiredCredits > 0 {
		progress := float64(summary.TotalCredits) / float64(requiredCredits) * 100
		summary.ProgressPercent = math.Min(100, math.Max(0, progress))
	}

	return summary
}

// Explain returns the engine's intermediate values for the current record.
func (s *Service) Explain(ctx context.Context) (*prediction.Explanation, error) {
	courses, err := s.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	explanation := prediction.Explain(toEngineCourses(courses))
	return &explanation, nil
}

func toEngineCourses(courses []*models.Course) []prediction.Course {
	out := make([]prediction.Course, 0, len(courses))
	for _, c := range courses {
		out = append(out, prediction.Course{
			Credits:    c.Credits,
			GradePoint: prediction.GradeToPoint(c.Grade),
			Semester:   c.Semester,
		})
	}
	return out
}
