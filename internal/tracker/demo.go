package tracker

import (
	"context"
	"fmt"

	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/pkg/models"
)

// DemoCourses is the record loaded into an empty tracker on first start.
func DemoCourses() []*models.Course {
	return []*models.Course{
		models.NewCourse("Introduction to AI", 3, "A", "Semester 1", models.DefaultProgram),
		models.NewCourse("Data Structures", 4, "B+", "Semester 1", models.DefaultProgram),
		models.NewCourse("Web Development", 3, "A-", "Semester 2", models.DefaultProgram),
		models.NewCourse("Database Design", 4, "A", "Semester 2", models.DefaultProgram),
		models.NewCourse("Software Engineering", 3, "B+", "Semester 3", models.DefaultProgram),
	}
}

// SeedDemoData loads the demo record and an initial prediction when seeding
// is enabled and the store holds no courses. It reports whether it seeded.
func (s *Service) SeedDemoData(ctx context.Context) (bool, error) {
	if !s.cfg.SeedDemoData {
		return false, nil
	}

	count, err := s.store.CountCourses(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count courses: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, course := range DemoCourses() {
		if err := s.store.AddCourse(ctx, course); err != nil {
			return false, fmt.Errorf("failed to seed course %q: %w", course.Name, err)
		}
	}

	if _, err := s.Recalculate(ctx); err != nil {
		return false, err
	}

	logger.Infof("Seeded %d demo courses", len(DemoCourses()))
	return true, nil
}
