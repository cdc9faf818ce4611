package tracker

import (
	"context"
	"errors"
	"time"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/internal/metrics"
	"github.com/OldStager01/gpa-tracker/internal/resilience"
	"github.com/OldStager01/gpa-tracker/pkg/database"
	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

var ErrSchemaMissing = errors.New("database schema not migrated")

type PostgresStoreConfig struct {
	CallTimeout time.Duration
	MaxFailures int
	OpenTimeout time.Duration
	// ReadAttempts and RetryDelay apply to read-only calls only.
	ReadAttempts int
	RetryDelay   time.Duration
}

// PostgresStore backs the tracker with PostgreSQL. Every call runs through a
// circuit breaker; not-found results do not count as failures.
type PostgresStore struct {
	db          *database.DB
	courses     *queries.CourseRepository
	predictions *queries.PredictionRepository
	breaker     *resilience.CircuitBreaker

	readAttempts int
	retryDelay   time.Duration
}

func NewPostgresStore(db *database.DB, cfg PostgresStoreConfig) *PostgresStore {
	if cfg.ReadAttempts <= 0 {
		cfg.ReadAttempts = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:        "store",
		MaxFailures: cfg.MaxFailures,
		Timeout:     cfg.OpenTimeout,
		CallTimeout: cfg.CallTimeout,
		IsFailure:   isStoreFailure,
		OnStateChange: func(name string, from, to resilience.State) {
			logger.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
			metrics.Get().SetCircuitBreakerState(name, int(to))
		},
	})

	return &PostgresStore{
		db:           db,
		courses:      queries.NewCourseRepository(db.DB),
		predictions:  queries.NewPredictionRepository(db.DB),
		breaker:      breaker,
		readAttempts: cfg.ReadAttempts,
		retryDelay:   cfg.RetryDelay,
	}
}

func isStoreFailure(err error) bool {
	return !errors.Is(err, queries.ErrCourseNotFound) &&
		!errors.Is(err, queries.ErrPredictionNotFound)
}

// read runs an idempotent query, retrying store failures inside a single
// breaker call so a retried success does not count against the breaker.
func (s *PostgresStore) read(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	return s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		var lastErr error
		for attempt := 1; attempt <= s.readAttempts; attempt++ {
			lastErr = fn(ctx)
			if lastErr == nil || !isStoreFailure(lastErr) {
				return lastErr
			}

			logger.WithField("op", op).Warnf("Read attempt %d/%d failed: %v", attempt, s.readAttempts, lastErr)

			if attempt < s.readAttempts {
				select {
				case <-ctx.Done():
					return lastErr
				case <-time.After(s.retryDelay):
				}
			}
		}
		return lastErr
	})
}

func (s *PostgresStore) ListCourses(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := s.read(ctx, "list_courses", func(ctx context.Context) error {
		var err error
		courses, err = s.courses.List(ctx)
		return err
	})
	return courses, err
}

func (s *PostgresStore) AddCourse(ctx context.Context, course *models.Course) error {
	return s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return s.courses.Create(ctx, course)
	})
}

func (s *PostgresStore) RemoveCourse(ctx context.Context, id int) error {
	return s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return s.courses.Delete(ctx, id)
	})
}

func (s *PostgresStore) CountCourses(ctx context.Context) (int, error) {
	var count int
	err := s.read(ctx, "count_courses", func(ctx context.Context) error {
		var err error
		count, err = s.courses.Count(ctx)
		return err
	})
	return count, err
}

func (s *PostgresStore) GetPrediction(ctx context.Context) (*models.Prediction, error) {
	var p *models.Prediction
	err := s.read(ctx, "get_prediction", func(ctx context.Context) error {
		var err error
		p, err = s.predictions.Get(ctx)
		return err
	})
	return p, err
}

func (s *PostgresStore) SetPrediction(ctx context.Context, prediction *models.Prediction) error {
	return s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return s.predictions.Set(ctx, prediction)
	})
}

func (s *PostgresStore) ClearPrediction(ctx context.Context) error {
	return s.breaker.ExecuteContext(ctx, func(ctx context.Context) error {
		return s.predictions.Clear(ctx)
	})
}

// Ping reports the store unready while the breaker is open, the database is
// unreachable, or the courses table is missing.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.breaker.State() == resilience.StateOpen {
		return resilience.ErrCircuitOpen
	}
	if err := s.db.HealthCheck(ctx); err != nil {
		return err
	}
	exists, err := s.db.TableExists(ctx, "courses")
	if err != nil {
		return err
	}
	if !exists {
		return ErrSchemaMissing
	}
	return nil
}
