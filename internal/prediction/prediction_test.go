package prediction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func courses(credits []int, points []float64) []Course {
	out := make([]Course, len(points))
	for i := range points {
		out[i] = Course{Credits: credits[i%len(credits)], GradePoint: points[i]}
	}
	return out
}

func TestExtractFeatures_Empty(t *testing.T) {
	assert.Equal(t, Features{}, ExtractFeatures(nil))
	assert.Equal(t, Features{}, ExtractFeatures([]Course{}))
}

func TestExtractFeatures_TwoCourses(t *testing.T) {
	f := ExtractFeatures(courses([]int{3, 4}, []float64{4.0, 3.5}))

	assert.Equal(t, 7, f.TotalCredits)
	assert.InDelta(t, 26.0, f.TotalQualityPoints, 1e-9)
	assert.Equal(t, 2, f.CourseCount)
	assert.InDelta(t, 3.75, f.AverageGrade, 1e-9)
	assert.InDelta(t, 0.0625, f.GradeVariance, 1e-9)
	assert.InDelta(t, 0.875, f.GradeConsistency, 1e-9)
	assert.InDelta(t, 1-0.5/3.5, f.CreditBalance, 1e-9)
	assert.Equal(t, 1, f.HighGradeCount)
	assert.Equal(t, 0, f.LowGradeCount)
	assert.Equal(t, 1, f.SemesterCount)
}

func TestExtractFeatures_SemesterCount(t *testing.T) {
	tests := []struct {
		courses  int
		expected int
	}{
		{1, 1},
		{5, 1},
		{6, 2},
		{10, 2},
		{11, 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d courses", tt.courses), func(t *testing.T) {
			points := make([]float64, tt.courses)
			for i := range points {
				points[i] = 3.0
			}
			f := ExtractFeatures(courses([]int{3}, points))
			assert.Equal(t, tt.expected, f.SemesterCount)
		})
	}
}

func TestExtractFeatures_LowAndHighCounts(t *testing.T) {
	f := ExtractFeatures(courses([]int{3}, []float64{3.7, 4.0, 1.0, 0.0, 1.3, 3.5}))

	assert.Equal(t, 2, f.HighGradeCount)
	assert.Equal(t, 2, f.LowGradeCount)
}

func TestExtractFeatures_ConsistencyFloor(t *testing.T) {
	// standard deviation 2 puts consistency exactly at the floor
	f := ExtractFeatures(courses([]int{3}, []float64{0.0, 4.0}))
	assert.Equal(t, 0.0, f.GradeConsistency)
}

func TestPredictLinear(t *testing.T) {
	tests := []struct {
		name     string
		courses  []Course
		expected float64
	}{
		{
			name:     "empty",
			courses:  nil,
			expected: 0,
		},
		{
			name:     "two courses with uneven credits",
			courses:  courses([]int{3, 4}, []float64{4.0, 3.5}),
			expected: 3.75,
		},
		{
			name:     "perfect record is clamped",
			courses:  courses([]int{3}, []float64{4.0, 4.0, 4.0}),
			expected: 4.0,
		},
		{
			name:     "failing record keeps balance bonus",
			courses:  courses([]int{3}, []float64{0.0, 0.0}),
			expected: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PredictLinear(tt.courses), 1e-9)
		})
	}
}

func TestPredictEnsemble(t *testing.T) {
	tests := []struct {
		name     string
		courses  []Course
		expected float64
	}{
		{
			name:     "empty",
			courses:  nil,
			expected: 0,
		},
		{
			name:     "two courses with uneven credits",
			courses:  courses([]int{3, 4}, []float64{4.0, 3.5}),
			expected: 3.85,
		},
		{
			name:     "perfect record is clamped",
			courses:  courses([]int{3}, []float64{4.0, 4.0, 4.0, 4.0}),
			expected: 4.0,
		},
		{
			name:     "failing record is clamped at zero",
			courses:  courses([]int{3}, []float64{0.0, 0.0, 0.0}),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PredictEnsemble(tt.courses), 1e-9)
		})
	}
}

func TestExplainEnsemble(t *testing.T) {
	assert.Nil(t, ExplainEnsemble(nil))

	out := ExplainEnsemble(courses([]int{3, 4}, []float64{4.0, 3.5}))
	require.Len(t, out, 5)

	names := make([]string, len(out))
	for i, o := range out {
		names[i] = o.Name
	}
	assert.Equal(t, []string{
		"weighted_consistency",
		"course_volume",
		"grade_ratio",
		"credit_balance",
		"consistency_bonus",
	}, names)

	assert.InDelta(t, 26.0/7.0*1.0875, out[0].Value, 1e-9)
	assert.InDelta(t, 3.9, out[1].Value, 1e-9)
	assert.InDelta(t, 3.9, out[2].Value, 1e-9)
	assert.InDelta(t, (1-0.5/3.5)*3.75*1.1, out[3].Value, 1e-9)
	assert.InDelta(t, 3.88125, out[4].Value, 1e-9)
}

func TestEstimators_ReturnsCopy(t *testing.T) {
	est := Estimators()
	est[0].Name = "changed"

	assert.Equal(t, "weighted_consistency", Estimators()[0].Name)
}

func TestCompare_AgreementScores(t *testing.T) {
	c := courses([]int{3}, []float64{3.0, 3.0})

	cmp := Compare(c, 3.0, 3.0)
	assert.Equal(t, 95, cmp.Accuracy)
	assert.Equal(t, 1.0, cmp.ConfidenceScore)

	cmp = Compare(c, 0, 4.0)
	assert.Equal(t, 70, cmp.Accuracy)
	assert.Equal(t, 0.5, cmp.ConfidenceScore)
}

func TestCompare_Monotonic(t *testing.T) {
	c := courses([]int{3}, []float64{3.0, 3.5})

	prev := Compare(c, 3.0, 3.0)
	for step := 1; step <= 12; step++ {
		diff := float64(step) / 10
		cur := Compare(c, 3.0, 3.0+diff)

		assert.Less(t, cur.Accuracy, prev.Accuracy, "accuracy at diff %.1f", diff)
		if step < 10 {
			assert.Less(t, cur.ConfidenceScore, prev.ConfidenceScore, "confidence at diff %.1f", diff)
		} else {
			assert.InDelta(t, 0.5, cur.ConfidenceScore, 1e-9)
		}
		prev = cur
	}

	assert.Equal(t, 70, Compare(c, 0, 2.0).Accuracy)
}

func TestCompare_BetterModel(t *testing.T) {
	tests := []struct {
		name     string
		courses  []Course
		expected ModelKind
	}{
		{
			name:     "small consistent record favors linear",
			courses:  courses([]int{3}, []float64{3.5, 3.5, 3.7}),
			expected: ModelLinear,
		},
		{
			name:     "large record favors ensemble",
			courses:  courses([]int{3}, make([]float64, 16)),
			expected: ModelRandomForest,
		},
		{
			name:     "volatile uneven record favors ensemble",
			courses:  courses([]int{1, 6}, []float64{0.0, 4.0, 0.0, 4.0}),
			expected: ModelRandomForest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmp := Compare(tt.courses, PredictLinear(tt.courses), PredictEnsemble(tt.courses))
			assert.Equal(t, tt.expected, cmp.BetterModel)
		})
	}
}

func TestStandingFor(t *testing.T) {
	tests := []struct {
		gpa      float64
		expected Standing
	}{
		{4.0, StandingHonors},
		{3.8, StandingHonors},
		{3.79999, StandingVeryGood},
		{3.5, StandingVeryGood},
		{3.49, StandingGood},
		{3.0, StandingGood},
		{2.5, StandingSatisfactory},
		{2.0, StandingAcceptable},
		{1.99, StandingNeedsImprovement},
		{0.01, StandingNeedsImprovement},
		{0, StandingNoData},
		{-1, StandingNoData},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("gpa %v", tt.gpa), func(t *testing.T) {
			assert.Equal(t, tt.expected, StandingFor(tt.gpa))
		})
	}
}

func TestAnalyzeTrend(t *testing.T) {
	tests := []struct {
		name     string
		points   []float64
		expected Trend
	}{
		{"no courses", nil, TrendInsufficient},
		{"single course", []float64{3.0}, TrendInsufficient},
		{"improving", []float64{3.0, 3.0, 3.9, 3.9}, TrendImproving},
		{"stable", []float64{3.0, 3.0, 3.05, 3.05}, TrendStable},
		{"flat counts as slight decline", []float64{3.0, 3.0, 3.0, 3.0}, TrendSlightDecline},
		{"slight decline", []float64{3.5, 3.5, 3.45, 3.45}, TrendSlightDecline},
		{"declining", []float64{4.0, 4.0, 3.0, 3.0}, TrendDeclining},
		{"odd count puts middle course in first half", []float64{2.0, 2.0, 2.0, 4.0, 4.0}, TrendImproving},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnalyzeTrend(courses([]int{3}, tt.points)))
		})
	}
}

func TestAnalyzeTrend_UsesCallerOrder(t *testing.T) {
	forward := courses([]int{3}, []float64{2.0, 2.0, 4.0, 4.0})
	reversed := courses([]int{3}, []float64{4.0, 4.0, 2.0, 2.0})

	assert.Equal(t, TrendImproving, AnalyzeTrend(forward))
	assert.Equal(t, TrendDeclining, AnalyzeTrend(reversed))
}

func TestTrend_Description(t *testing.T) {
	assert.Contains(t, TrendImproving.Description(), "Improving")
	assert.Contains(t, TrendDeclining.Description(), "Declining")
	assert.Equal(t, "Insufficient data", TrendInsufficient.Description())
	assert.Equal(t, "unknown", Trend("unknown").Description())
}

func TestPredictNext(t *testing.T) {
	tests := []struct {
		name     string
		points   []float64
		current  float64
		expected float64
	}{
		{
			name:     "consistent record keeps gpa",
			points:   []float64{3.3, 3.3, 3.3},
			current:  3.3,
			expected: 3.3,
		},
		{
			name:     "moderate consistency nudges toward average",
			points:   []float64{2.8, 3.6},
			current:  3.0,
			expected: 3.01,
		},
		{
			name:     "volatile record regresses to neutral",
			points:   []float64{0.0, 4.0},
			current:  2.0,
			expected: 2.3,
		},
		{
			name:     "not clamped",
			points:   []float64{0.0, 4.0},
			current:  5.0,
			expected: 4.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictNext(courses([]int{3}, tt.points), tt.current)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestCalculate_LiteralCase(t *testing.T) {
	result := Calculate(courses([]int{3, 4}, []float64{4.0, 3.5}))

	assert.InDelta(t, 3.75, result.LinearRegressionGPA, 1e-9)
	assert.InDelta(t, 3.85, result.RandomForestGPA, 1e-9)
	assert.Equal(t, ModelLinear, result.BetterModel)
	assert.Equal(t, 93, result.Accuracy)
	assert.InDelta(t, 0.95, result.ConfidenceScore, 1e-9)
	assert.Equal(t, TrendDeclining, result.Trend)
	assert.Equal(t, TrendDeclining.Description(), result.TrendAnalysis)
	assert.InDelta(t, 3.8, result.NextSemesterPrediction, 1e-9)
}

func TestCalculate_DemoRecord(t *testing.T) {
	demo := []Course{
		{Credits: 3, GradePoint: 4.0, Semester: "Semester 1"},
		{Credits: 4, GradePoint: 3.5, Semester: "Semester 1"},
		{Credits: 3, GradePoint: 3.7, Semester: "Semester 2"},
		{Credits: 4, GradePoint: 4.0, Semester: "Semester 2"},
		{Credits: 3, GradePoint: 3.5, Semester: "Semester 3"},
	}

	result := Calculate(demo)

	assert.Equal(t, StandingFor(result.AverageGPA()), result.AcademicStanding)
	assert.GreaterOrEqual(t, result.LinearRegressionGPA, 3.5)
	assert.LessOrEqual(t, result.RandomForestGPA, 4.0)
	assert.Equal(t, TrendSlightDecline, result.Trend)
}

func TestCalculate_Deterministic(t *testing.T) {
	record := courses([]int{1, 3, 4, 2}, []float64{2.7, 3.0, 4.0, 1.7, 3.5, 0.0, 2.5, 3.7})

	first := Calculate(record)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Calculate(record))
	}
}

func TestCalculate_Bounds(t *testing.T) {
	records := [][]Course{
		courses([]int{3}, []float64{4.0}),
		courses([]int{3}, []float64{0.0}),
		courses([]int{1, 12}, []float64{4.0, 0.0, 4.0, 0.0, 4.0}),
		courses([]int{3, 4, 2}, []float64{3.7, 3.3, 2.0, 1.7, 1.0, 4.0, 2.7}),
		courses([]int{5}, make([]float64, 40)),
	}

	for i, record := range records {
		t.Run(fmt.Sprintf("record %d", i), func(t *testing.T) {
			r := Calculate(record)

			assert.GreaterOrEqual(t, r.LinearRegressionGPA, 0.0)
			assert.LessOrEqual(t, r.LinearRegressionGPA, 4.0)
			assert.GreaterOrEqual(t, r.RandomForestGPA, 0.0)
			assert.LessOrEqual(t, r.RandomForestGPA, 4.0)
			assert.GreaterOrEqual(t, r.Accuracy, 70)
			assert.LessOrEqual(t, r.Accuracy, 99)
			assert.GreaterOrEqual(t, r.ConfidenceScore, 0.5)
			assert.LessOrEqual(t, r.ConfidenceScore, 1.0)
			assert.False(t, r.NextSemesterPrediction != r.NextSemesterPrediction, "NaN projection")
		})
	}
}

func TestCalculate_EmptyDegeneratesToNoData(t *testing.T) {
	r := Calculate(nil)

	assert.Equal(t, 0.0, r.LinearRegressionGPA)
	assert.Equal(t, 0.0, r.RandomForestGPA)
	assert.Equal(t, StandingNoData, r.AcademicStanding)
	assert.Equal(t, TrendInsufficient, r.Trend)
}

func TestExplain(t *testing.T) {
	record := courses([]int{3, 4}, []float64{4.0, 3.5})

	exp := Explain(record)

	assert.Equal(t, ExtractFeatures(record), exp.Features)
	assert.Len(t, exp.Estimators, 5)
	assert.Equal(t, 93, exp.Comparison.Accuracy)
}

func TestGradeToPoint(t *testing.T) {
	tests := []struct {
		grade    string
		expected float64
	}{
		{"A+", 4.0},
		{"A", 4.0},
		{"A-", 3.7},
		{"B+", 3.5},
		{"B", 3.0},
		{"B-", 2.7},
		{"C+", 2.5},
		{"C", 2.0},
		{"C-", 1.7},
		{"D+", 1.3},
		{"D", 1.0},
		{"F", 0.0},
		{"E", 0.0},
		{"", 0.0},
		{"a", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.grade, func(t *testing.T) {
			assert.Equal(t, tt.expected, GradeToPoint(tt.grade))
		})
	}
}

func TestGradeScale(t *testing.T) {
	scale := GradeScale()

	require.Len(t, scale, 12)
	assert.Equal(t, "A+", scale[0].Letter)
	assert.Equal(t, "F", scale[len(scale)-1].Letter)
	for _, e := range scale {
		assert.True(t, IsKnownGrade(e.Letter))
		assert.Equal(t, GradeToPoint(e.Letter), e.Points)
	}
	assert.False(t, IsKnownGrade("Z"))
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{1.9849999999999999, 1.98},
		{0.125, 0.13},
		{-0.125, -0.13},
		{2.675, 2.67},
		{1.005, 1.0},
		{3.925, 3.92},
		{0.015, 0.01},
		{3.75, 3.75},
		{4.0, 4.0},
		{0, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.expected, Round2(tt.in))
		})
	}
}

func record(pairs ...[2]float64) []Course {
	out := make([]Course, len(pairs))
	for i, p := range pairs {
		out[i] = Course{Credits: int(p[0]), GradePoint: p[1]}
	}
	return out
}

// Values near a .xx5 boundary, where scaling by 100 in float64 before
// rounding picks the wrong neighbour.
func TestCalculate_RoundingBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		courses    []Course
		linear     float64
		forest     float64
		better     ModelKind
		accuracy   int
		confidence float64
		next       float64
	}{
		{"linear just below half", record([2]float64{6, 1.7}, [2]float64{1, 3.7}), 1.98, 2.27, ModelRandomForest, 89, 0.85, 2.39},
		{"single C", record([2]float64{5, 2.0}), 2.05, 2.12, ModelLinear, 94, 0.96, 2.08},
		{"mixed confidence", record([2]float64{4, 4}, [2]float64{2, 1}, [2]float64{5, 2.5}), 2.79, 2.5, ModelRandomForest, 89, 0.85, 2.75},
		{"uneven B", record([2]float64{1, 3}, [2]float64{3, 3}), 3.02, 2.84, ModelLinear, 91, 0.91, 2.93},
		{"uneven C-", record([2]float64{3, 1.7}, [2]float64{1, 1.7}), 1.72, 1.62, ModelLinear, 93, 0.95, 1.67},
		{"A and C", record([2]float64{3, 4}, [2]float64{4, 2}), 2.88, 3.03, ModelLinear, 92, 0.93, 2.97},
		{"single C-", record([2]float64{3, 1.7}), 1.75, 1.8, ModelLinear, 94, 0.97, 1.77},
		{"single F", record([2]float64{6, 0}), 0.05, 0, ModelLinear, 94, 0.97, 0.03},
		{"failing load", record([2]float64{1, 0}, [2]float64{3, 0}, [2]float64{6, 1}), 0.62, 0.33, ModelLinear, 89, 0.85, 0.34},
		{"alternating", record([2]float64{2, 1.3}, [2]float64{5, 3.5}, [2]float64{1, 1.3}, [2]float64{3, 3.5}), 2.91, 2.39, ModelRandomForest, 85, 0.74, 2.75},
		{"single C+", record([2]float64{6, 2.5}), 2.55, 2.64, ModelLinear, 93, 0.95, 2.59},
		{"spread", record([2]float64{5, 2}, [2]float64{6, 3.7}, [2]float64{4, 1}, [2]float64{1, 0}), 2.27, 1.72, ModelRandomForest, 84, 0.72, 2.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Calculate(tt.courses)

			assert.Equal(t, tt.linear, r.LinearRegressionGPA, "linear")
			assert.Equal(t, tt.forest, r.RandomForestGPA, "forest")
			assert.Equal(t, tt.better, r.BetterModel)
			assert.Equal(t, tt.accuracy, r.Accuracy)
			assert.Equal(t, tt.confidence, r.ConfidenceScore, "confidence")
			assert.Equal(t, tt.next, r.NextSemesterPrediction, "next")
		})
	}
}
