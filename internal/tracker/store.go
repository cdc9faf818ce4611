package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

// CourseStore keeps the course list. ListCourses returns courses in insertion order.
type CourseStore interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	AddCourse(ctx context.Context, course *models.Course) error
	RemoveCourse(ctx context.Context, id int) error
	CountCourses(ctx context.Context) (int, error)
}

// PredictionStore is a single slot: SetPrediction replaces whatever was there.
type PredictionStore interface {
	GetPrediction(ctx context.Context) (*models.Prediction, error)
	SetPrediction(ctx context.Context, prediction *models.Prediction) error
	ClearPrediction(ctx context.Context) error
}

type Store interface {
	CourseStore
	PredictionStore
}

// Pinger is implemented by stores that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MemoryStore keeps everything in process. Returned values are copies.
type MemoryStore struct {
	mu         sync.RWMutex
	courses    []models.Course
	nextID     int
	prediction *models.Prediction
	predID     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, predID: 1}
}

func (s *MemoryStore) ListCourses(ctx context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(s.courses))
	for i := range s.courses {
		c := s.courses[i]
		courses = append(courses, &c)
	}
	return courses, nil
}

func (s *MemoryStore) AddCourse(ctx context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course.ID = s.nextID
	s.nextID++
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now()
	}
	s.courses = append(s.courses, *course)
	return nil
}

func (s *MemoryStore) RemoveCourse(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return nil
		}
	}
	return queries.ErrCourseNotFound
}

func (s *MemoryStore) CountCourses(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.courses), nil
}

func (s *MemoryStore) GetPrediction(ctx context.Context) (*models.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.prediction == nil {
		return nil, queries.ErrPredictionNotFound
	}
	p := *s.prediction
	return &p, nil
}

func (s *MemoryStore) SetPrediction(ctx context.Context, prediction *models.Prediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prediction.ID = s.predID
	s.predID++
	p := *prediction
	s.prediction = &p
	return nil
}

func (s *MemoryStore) ClearPrediction(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prediction = nil
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
