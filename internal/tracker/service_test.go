package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/gpa-tracker/internal/events"
	"github.com/OldStager01/gpa-tracker/internal/metrics"
	"github.com/OldStager01/gpa-tracker/internal/prediction"
	"github.com/OldStager01/gpa-tracker/pkg/config"
	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
	"github.com/OldStager01/gpa-tracker/pkg/models"
	"github.com/OldStager01/gpa-tracker/pkg/validation"
)

type failingStore struct {
	*MemoryStore
	setErr error
}

func (s *failingStore) SetPrediction(ctx context.Context, p *models.Prediction) error {
	return s.setErr
}

func newTestService(t *testing.T, cfg config.TrackerConfig) (*Service, *MemoryStore, <-chan *models.Event) {
	t.Helper()
	bus := events.NewEventBus(50)
	t.Cleanup(bus.Close)
	all := bus.SubscribeAll()
	store := NewMemoryStore()
	return NewService(store, cfg, events.NewPublisher(bus), metrics.New()), store, all
}

func drain(ch <-chan *models.Event) []models.EventType {
	var types []models.EventType
	for {
		select {
		case e := <-ch:
			types = append(types, e.Type)
		case <-time.After(50 * time.Millisecond):
			return types
		}
	}
}

func TestService_AddCourse(t *testing.T) {
	svc, _, feed := newTestService(t, config.TrackerConfig{})
	ctx := context.Background()

	course, err := svc.AddCourse(ctx, models.NewCourse("  Database Design ", 4, "a-", "Semester 2", ""))

	require.NoError(t, err)
	assert.Equal(t, 1, course.ID)
	assert.Equal(t, "Database Design", course.Name)
	assert.Equal(t, "A-", course.Grade)
	assert.Equal(t, models.DefaultProgram, course.Program)
	assert.Equal(t, []models.EventType{models.EventTypeCourseAdded}, drain(feed))
}

func TestService_AddCourse_Invalid(t *testing.T) {
	svc, store, _ := newTestService(t, config.TrackerConfig{})

	_, err := svc.AddCourse(context.Background(), models.NewCourse("", 0, "E", "", ""))

	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrInvalidInput)
	count, _ := store.CountCourses(context.Background())
	assert.Zero(t, count)
}

func TestService_RemoveCourse_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t, config.TrackerConfig{})

	err := svc.RemoveCourse(context.Background(), 42)

	assert.ErrorIs(t, err, queries.ErrCourseNotFound)
}

func TestService_Recalculate_Empty(t *testing.T) {
	svc, store, _ := newTestService(t, config.TrackerConfig{})

	_, err := svc.Recalculate(context.Background())

	assert.ErrorIs(t, err, ErrNoCourses)
	_, err = store.GetPrediction(context.Background())
	assert.ErrorIs(t, err, queries.ErrPredictionNotFound)
}

func TestService_Recalculate_LiteralCase(t *testing.T) {
	svc, _, feed := newTestService(t, config.TrackerConfig{})
	ctx := context.Background()

	_, err := svc.AddCourse(ctx, models.NewCourse("Course A", 3, "A", "Semester 1", ""))
	require.NoError(t, err)
	_, err = svc.AddCourse(ctx, models.NewCourse("Course B", 4, "B+", "Semester 1", ""))
	require.NoError(t, err)

	p, err := svc.Recalculate(ctx)

	require.NoError(t, err)
	assert.InDelta(t, 3.75, p.LinearRegressionGPA, 1e-9)
	assert.InDelta(t, 3.85, p.RandomForestGPA, 1e-9)
	assert.Equal(t, "linear", p.BetterModel)
	assert.Equal(t, 93, p.Accuracy)
	assert.Equal(t, 2, p.CourseCount)
	assert.NotEmpty(t, p.RunID)

	stored, err := svc.CurrentPrediction(ctx)
	require.NoError(t, err)
	assert.True(t, p.SameOutcome(stored))

	assert.Contains(t, drain(feed), models.EventTypePredictionComputed)
}

func TestService_Recalculate_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t, config.TrackerConfig{SeedDemoData: true})
	ctx := context.Background()
	_, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)

	first, err := svc.Recalculate(ctx)
	require.NoError(t, err)
	second, err := svc.Recalculate(ctx)
	require.NoError(t, err)

	assert.True(t, first.SameOutcome(second))
	assert.NotEqual(t, first.RunID, second.RunID)

	stored, err := svc.CurrentPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, stored.RunID)
}

func TestService_Recalculate_StoreFailure(t *testing.T) {
	bus := events.NewEventBus(10)
	defer bus.Close()
	failed := bus.Subscribe(models.EventTypePredictionFailed)
	store := &failingStore{MemoryStore: NewMemoryStore(), setErr: errors.New("disk full")}
	svc := NewService(store, config.TrackerConfig{}, events.NewPublisher(bus), metrics.New())
	require.NoError(t, store.AddCourse(context.Background(), models.NewCourse("X", 3, "B", "S1", "")))

	_, err := svc.Recalculate(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCourses)
	assert.Len(t, drain(failed), 1)
}

func TestService_AutoRecalculate(t *testing.T) {
	svc, _, feed := newTestService(t, config.TrackerConfig{AutoRecalculate: true})
	ctx := context.Background()

	course, err := svc.AddCourse(ctx, models.NewCourse("Algorithms", 3, "A", "Semester 1", ""))
	require.NoError(t, err)

	p, err := svc.CurrentPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CourseCount)

	require.NoError(t, svc.RemoveCourse(ctx, course.ID))

	_, err = svc.CurrentPrediction(ctx)
	assert.ErrorIs(t, err, queries.ErrPredictionNotFound)
	assert.Equal(t, []models.EventType{
		models.EventTypeCourseAdded,
		models.EventTypePredictionComputed,
		models.EventTypeCourseRemoved,
		models.EventTypePredictionCleared,
	}, drain(feed))
}

// interleavingStore lets another course be added while a recalculation is
// reading an empty course list.
type interleavingStore struct {
	*MemoryStore
	added   chan struct{}
	onEmpty func()
	once    sync.Once
}

func (s *interleavingStore) AddCourse(ctx context.Context, course *models.Course) error {
	if err := s.MemoryStore.AddCourse(ctx, course); err != nil {
		return err
	}
	select {
	case s.added <- struct{}{}:
	default:
	}
	return nil
}

func (s *interleavingStore) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.MemoryStore.ListCourses(ctx)
	if err == nil && len(courses) == 0 && s.onEmpty != nil {
		s.once.Do(s.onEmpty)
	}
	return courses, err
}

func TestService_AutoRecalculate_ConcurrentAddKeepsPrediction(t *testing.T) {
	store := &interleavingStore{MemoryStore: NewMemoryStore(), added: make(chan struct{}, 1)}
	svc := NewService(store, config.TrackerConfig{AutoRecalculate: true}, nil, metrics.New())
	ctx := context.Background()

	first, err := svc.AddCourse(ctx, models.NewCourse("Algorithms", 3, "A", "Semester 1", ""))
	require.NoError(t, err)
	<-store.added

	done := make(chan error, 1)
	store.onEmpty = func() {
		go func() {
			_, err := svc.AddCourse(ctx, models.NewCourse("Databases", 4, "B+", "Semester 2", ""))
			done <- err
		}()
		<-store.added
	}

	require.NoError(t, svc.RemoveCourse(ctx, first.ID))
	require.NoError(t, <-done)

	p, err := svc.CurrentPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CourseCount)
}

func TestService_SeedDemoData(t *testing.T) {
	svc, store, _ := newTestService(t, config.TrackerConfig{SeedDemoData: true})
	ctx := context.Background()

	seeded, err := svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	courses, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 5)
	assert.Equal(t, "Introduction to AI", courses[0].Name)
	assert.Equal(t, "Software Engineering", courses[4].Name)

	p, err := store.GetPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(prediction.TrendSlightDecline), p.Trend)

	seeded, err = svc.SeedDemoData(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)
}

func TestService_SeedDemoData_Disabled(t *testing.T) {
	svc, store, _ := newTestService(t, config.TrackerConfig{SeedDemoData: false})

	seeded, err := svc.SeedDemoData(context.Background())

	require.NoError(t, err)
	assert.False(t, seeded)
	count, _ := store.CountCourses(context.Background())
	assert.Zero(t, count)
}

func TestSummarize(t *testing.T) {
	summary := Summarize(DemoCourses(), 120)

	assert.Equal(t, 5, summary.CourseCount)
	assert.Equal(t, 17, summary.TotalCredits)
	assert.InDelta(t, 63.6, summary.TotalPoints, 1e-9)
	assert.InDelta(t, 3.74, summary.GPA, 1e-9)
	assert.InDelta(t, 17.0/120*100, summary.ProgressPercent, 1e-9)
}

func TestSummarize_RoundsHalfBoundary(t *testing.T) {
	// 15.7 / 4 is stored just below 3.925
	summary := Summarize([]*models.Course{
		models.NewCourse("Compilers", 3, "A+", "Semester 1", ""),
		models.NewCourse("Networks", 1, "A-", "Semester 1", ""),
	}, 120)

	assert.Equal(t, 3.92, summary.GPA)
	assert.Equal(t, 15.7, summary.TotalPoints)
}

func TestSummarize_Bounds(t *testing.T) {
	empty := Summarize(nil, 120)
	assert.Zero(t, empty.GPA)
	assert.Zero(t, empty.ProgressPercent)

	many := make([]*models.Course, 0, 20)
	for i := 0; i < 20; i++ {
		many = append(many, models.NewCourse("c", 12, "A", "S", ""))
	}
	assert.Equal(t, 100.0, Summarize(many, 120).ProgressPercent)
}

func TestService_Explain(t *testing.T) {
	svc, _, _ := newTestService(t, config.TrackerConfig{SeedDemoData: true})
	ctx := context.Background()

	_, err := svc.Explain(ctx)
	assert.ErrorIs(t, err, ErrNoCourses)

	_, err = svc.SeedDemoData(ctx)
	require.NoError(t, err)

	exp, err := svc.Explain(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, exp.Features.CourseCount)
	assert.Len(t, exp.Estimators, 5)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.AddCourse(ctx, models.NewCourse("A", 3, "A", "S1", "")))

	list, err := store.ListCourses(ctx)
	require.NoError(t, err)
	list[0].Name = "mutated"

	again, err := store.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again[0].Name)
}

func TestMemoryStore_SinglePredictionSlot(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SetPrediction(ctx, &models.Prediction{RunID: "first"}))
	require.NoError(t, store.SetPrediction(ctx, &models.Prediction{RunID: "second"}))

	p, err := store.GetPrediction(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", p.RunID)

	require.NoError(t, store.ClearPrediction(ctx))
	_, err = store.GetPrediction(ctx)
	assert.ErrorIs(t, err, queries.ErrPredictionNotFound)
}
