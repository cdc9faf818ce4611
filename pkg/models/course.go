package models

import "time"

const DefaultProgram = "software_engineering"

// Course is a completed course as stored by the tracker.
type Course struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	Grade     string    `json:"grade"`
	Semester  string    `json:"semester"`
	Program   string    `json:"program"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCourse(name string, credits int, grade, semester, program string) *Course {
	if program == "" {
		program = DefaultProgram
	}
	return &Course{
		Name:      name,
		Credits:   credits,
		Grade:     grade,
		Semester:  semester,
		Program:   program,
		CreatedAt: time.Now(),
	}
}

// GPASummary is the plain credit-weighted GPA of a course list.
type GPASummary struct {
	GPA             float64 `json:"gpa"`
	TotalCredits    int     `json:"total_credits"`
	TotalPoints     float64 `json:"total_points"`
	CourseCount     int     `json:"course_count"`
	RequiredCredits int     `json:"required_credits"`
	ProgressPercent float64 `json:"progress_percent"`
}
