// Package prediction estimates cumulative GPA from a student's completed
// courses using two fixed-formula models and interprets the result.
//
// Every function in this package is pure: the same course list always yields
// the same output, and nothing is retained between calls.
package prediction

// Result is the full output of one prediction run.
type Result struct {
	LinearRegressionGPA    float64   `json:"linear_regression_gpa"`
	RandomForestGPA        float64   `json:"random_forest_gpa"`
	BetterModel            ModelKind `json:"better_model"`
	Accuracy               int       `json:"accuracy"`
	ConfidenceScore        float64   `json:"confidence_score"`
	AcademicStanding       Standing  `json:"academic_standing"`
	Trend                  Trend     `json:"trend"`
	TrendAnalysis          string    `json:"trend_analysis"`
	NextSemesterPrediction float64   `json:"next_semester_prediction"`
}

// AverageGPA is the midpoint of the two model estimates.
func (r Result) AverageGPA() float64 {
	return (r.LinearRegressionGPA + r.RandomForestGPA) / 2
}

// Calculate runs the full pipeline. Callers must reject an empty course list
// before calling; on empty input both models degenerate to 0.
func Calculate(courses []Course) Result {
	f := ExtractFeatures(courses)

	var linear, forestGPA float64
	if f.CourseCount > 0 {
		linear = linearEstimate(f)
		forestGPA = ensembleEstimate(f)
	}

	cmp := Compare(courses, linear, forestGPA)
	avg := (linear + forestGPA) / 2
	trend := AnalyzeTrend(courses)

	return Result{
		LinearRegressionGPA:    linear,
		RandomForestGPA:        forestGPA,
		BetterModel:            cmp.BetterModel,
		Accuracy:               cmp.Accuracy,
		ConfidenceScore:        Round2(cmp.ConfidenceScore),
		AcademicStanding:       StandingFor(avg),
		Trend:                  trend,
		TrendAnalysis:          trend.Description(),
		NextSemesterPrediction: PredictNext(courses, avg),
	}
}

// Explanation exposes the intermediate values behind a prediction.
type Explanation struct {
	Features   Features          `json:"features"`
	Estimators []EstimatorOutput `json:"estimators"`
	Comparison Comparison        `json:"comparison"`
}

// Explain returns the feature vector, ensemble member outputs and model
// comparison for a course list.
func Explain(courses []Course) Explanation {
	linear := PredictLinear(courses)
	forestGPA := PredictEnsemble(courses)
	return Explanation{
		Features:   ExtractFeatures(courses),
		Estimators: ExplainEnsemble(courses),
		Comparison: Compare(courses, linear, forestGPA),
	}
}
