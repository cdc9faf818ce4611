package prediction

// gradeScale maps letter grades to grade points on the 4.0 scale.
var gradeScale = map[string]float64{
	"A+": 4.0,
	"A":  4.0,
	"A-": 3.7,
	"B+": 3.5,
	"B":  3.0,
	"B-": 2.7,
	"C+": 2.5,
	"C":  2.0,
	"C-": 1.7,
	"D+": 1.3,
	"D":  1.0,
	"F":  0.0,
}

// gradeOrder lists the letters from best to worst for display.
var gradeOrder = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "F"}

// GradeToPoint returns the grade point for a letter grade.
// Unknown letters map to 0.
func GradeToPoint(grade string) float64 {
	return gradeScale[grade]
}

// IsKnownGrade reports whether the letter is part of the grading scale.
func IsKnownGrade(grade string) bool {
	_, ok := gradeScale[grade]
	return ok
}

type GradeEntry struct {
	Letter string  `json:"letter"`
	Points float64 `json:"points"`
}

// GradeScale returns the grading scale ordered from best to worst.
func GradeScale() []GradeEntry {
	entries := make([]GradeEntry, len(gradeOrder))
	for i, letter := range gradeOrder {
		entries[i] = GradeEntry{Letter: letter, Points: gradeScale[letter]}
	}
	return entries
}
