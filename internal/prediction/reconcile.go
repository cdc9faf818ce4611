package prediction

import "math"

const (
	baseAccuracy      = 95.0
	accuracyPerPoint  = 20.0
	minAccuracy       = 70.0
	maxAccuracy       = 99.0
	minConfidence     = 0.5
	complexityCutover = 1.5
)

// Comparison is the outcome of reconciling the two model estimates.
type Comparison struct {
	BetterModel     ModelKind `json:"better_model"`
	Accuracy        int       `json:"accuracy"`
	ConfidenceScore float64   `json:"confidence_score"`
	Complexity      float64   `json:"complexity"`
}

// Compare scores agreement between the linear and ensemble estimates and picks
// the model better suited to the record. The ensemble wins for noisy, large or
// unevenly loaded records.
func Compare(courses []Course, linearGPA, forestGPA float64) Comparison {
	diff := math.Abs(linearGPA - forestGPA)

	accuracy := math.Round(clamp(baseAccuracy-diff*accuracyPerPoint, minAccuracy, maxAccuracy))
	confidence := math.Max(minConfidence, 1-diff/2)

	f := ExtractFeatures(courses)
	complexity := math.Sqrt(f.GradeVariance) +
		float64(f.CourseCount)*0.1 +
		(1-f.CreditBalance)*0.5

	better := ModelLinear
	if complexity > complexityCutover {
		better = ModelRandomForest
	}

	return Comparison{
		BetterModel:     better,
		Accuracy:        int(accuracy),
		ConfidenceScore: confidence,
		Complexity:      complexity,
	}
}
