package prediction

import "math"

const (
	minGPA = 0.0
	maxGPA = 4.0
)

// ModelKind names one of the two GPA models.
type ModelKind string

const (
	ModelLinear       ModelKind = "linear"
	ModelRandomForest ModelKind = "random_forest"
)

func (m ModelKind) String() string {
	return string(m)
}

// PredictLinear estimates GPA as the credit-weighted mean grade point with a
// small bonus for an even credit load and a small penalty for volatile grades.
func PredictLinear(courses []Course) float64 {
	if len(courses) == 0 {
		return 0
	}
	return linearEstimate(ExtractFeatures(courses))
}

func linearEstimate(f Features) float64 {
	base := f.WeightedGPA()
	bonus := f.CreditBalance * 0.05
	penalty := (1 - f.GradeConsistency) * 0.03

	return Round2(clamp(base+bonus-penalty, minGPA, maxGPA))
}

// Estimator is one member of the ensemble: a fixed formula over Features.
type Estimator struct {
	Name     string
	Estimate func(Features) float64
}

// forest holds the five ensemble members in a fixed order.
var forest = []Estimator{
	{
		Name: "weighted_consistency",
		Estimate: func(f Features) float64 {
			return f.WeightedGPA() * (1 + f.GradeConsistency*0.1)
		},
	},
	{
		Name: "course_volume",
		Estimate: func(f Features) float64 {
			return f.AverageGrade * (1 + math.Min(0.2, float64(f.CourseCount)*0.02))
		},
	},
	{
		Name: "grade_ratio",
		Estimate: func(f Features) float64 {
			if f.CourseCount == 0 {
				return f.AverageGrade
			}
			ratio := float64(f.HighGradeCount-f.LowGradeCount) / float64(f.CourseCount)
			return f.AverageGrade + ratio*0.3
		},
	},
	{
		Name: "credit_balance",
		Estimate: func(f Features) float64 {
			return f.CreditBalance * f.AverageGrade * 1.1
		},
	},
	{
		Name: "consistency_bonus",
		Estimate: func(f Features) float64 {
			return f.AverageGrade + f.GradeConsistency*0.15
		},
	},
}

// Estimators returns the ensemble members. The slice is a copy.
func Estimators() []Estimator {
	out := make([]Estimator, len(forest))
	copy(out, forest)
	return out
}

// PredictEnsemble estimates GPA as the mean of the ensemble members.
func PredictEnsemble(courses []Course) float64 {
	if len(courses) == 0 {
		return 0
	}
	return ensembleEstimate(ExtractFeatures(courses))
}

func ensembleEstimate(f Features) float64 {
	var sum float64
	for _, e := range forest {
		sum += e.Estimate(f)
	}
	return Round2(clamp(sum/float64(len(forest)), minGPA, maxGPA))
}

// EstimatorOutput is the raw, unclamped value of one ensemble member.
type EstimatorOutput struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ExplainEnsemble returns each member's raw output for the course list.
// Returns nil for an empty list.
func ExplainEnsemble(courses []Course) []EstimatorOutput {
	if len(courses) == 0 {
		return nil
	}
	f := ExtractFeatures(courses)
	out := make([]EstimatorOutput, len(forest))
	for i, e := range forest {
		out[i] = EstimatorOutput{Name: e.Name, Value: e.Estimate(f)}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
