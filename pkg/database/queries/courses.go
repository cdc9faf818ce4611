package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/OldStager01/gpa-tracker/pkg/models"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course in insertion order.
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, name, credits, grade, semester, program, created_at
		FROM courses
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]*models.Course, 0)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Credits, &c.Grade, &c.Semester, &c.Program, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, &c)
	}

	return courses, rows.Err()
}

// Create inserts the course and fills in its ID and CreatedAt.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (name, credits, grade, semester, program)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		course.Name,
		course.Credits,
		course.Grade,
		course.Semester,
		course.Program,
	).Scan(&course.ID, &course.CreatedAt)
}

func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCourseNotFound
	}

	return nil
}

func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	return count, err
}
