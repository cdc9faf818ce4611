package prediction

import "math"

const (
	highGradeThreshold = 3.7
	lowGradeThreshold  = 1.0
	coursesPerSemester = 5
)

// Course is a single completed course as seen by the engine.
type Course struct {
	Credits    int     `json:"credits"`
	GradePoint float64 `json:"grade_point"`
	// Semester is carried for the caller's benefit; no formula reads it.
	Semester string `json:"semester,omitempty"`
}

// Features summarizes a course record for the prediction models.
type Features struct {
	TotalCredits       int     `json:"total_credits"`
	TotalQualityPoints float64 `json:"total_quality_points"`
	CourseCount        int     `json:"course_count"`
	AverageGrade       float64 `json:"average_grade"`
	GradeVariance      float64 `json:"grade_variance"`
	GradeConsistency   float64 `json:"grade_consistency"`
	CreditBalance      float64 `json:"credit_balance"`
	HighGradeCount     int     `json:"high_grade_count"`
	LowGradeCount      int     `json:"low_grade_count"`
	// SemesterCount is estimated from the course count, not from semester labels.
	SemesterCount int `json:"semester_count"`
}

// WeightedGPA returns quality points per credit, or 0 when there are no credits.
func (f Features) WeightedGPA() float64 {
	if f.TotalCredits == 0 {
		return 0
	}
	return f.TotalQualityPoints / float64(f.TotalCredits)
}

// ExtractFeatures derives the feature summary of a course list.
// An empty list yields the zero Features.
func ExtractFeatures(courses []Course) Features {
	if len(courses) == 0 {
		return Features{}
	}

	var (
		totalCredits int
		qualityPts   float64
		gradeSum     float64
		high, low    int
	)
	for _, c := range courses {
		totalCredits += c.Credits
		qualityPts += c.GradePoint * float64(c.Credits)
		gradeSum += c.GradePoint
		if c.GradePoint >= highGradeThreshold {
			high++
		}
		if c.GradePoint <= lowGradeThreshold {
			low++
		}
	}

	count := len(courses)
	avgGrade := gradeSum / float64(count)

	var sqDev float64
	for _, c := range courses {
		d := c.GradePoint - avgGrade
		sqDev += d * d
	}
	variance := sqDev / float64(count)

	avgCredits := float64(totalCredits) / float64(count)
	var absDev float64
	for _, c := range courses {
		absDev += math.Abs(float64(c.Credits) - avgCredits)
	}

	var balance float64
	if avgCredits > 0 {
		balance = math.Max(0, 1-(absDev/float64(count))/avgCredits)
	}

	return Features{
		TotalCredits:       totalCredits,
		TotalQualityPoints: qualityPts,
		CourseCount:        count,
		AverageGrade:       avgGrade,
		GradeVariance:      variance,
		GradeConsistency:   math.Max(0, 1-math.Sqrt(variance)/2),
		CreditBalance:      balance,
		HighGradeCount:     high,
		LowGradeCount:      low,
		SemesterCount:      (count + coursesPerSemester - 1) / coursesPerSemester,
	}
}
