package prediction

// Standing is an academic standing label.
type Standing string

const (
	StandingHonors           Standing = "Excellent (Honors)"
	StandingVeryGood         Standing = "Very Good"
	StandingGood             Standing = "Good"
	StandingSatisfactory     Standing = "Satisfactory"
	StandingAcceptable       Standing = "Acceptable"
	StandingNeedsImprovement Standing = "Needs Improvement"
	StandingNoData           Standing = "No Data"
)

var standingLadder = []struct {
	min      float64
	standing Standing
}{
	{3.8, StandingHonors},
	{3.5, StandingVeryGood},
	{3.0, StandingGood},
	{2.5, StandingSatisfactory},
	{2.0, StandingAcceptable},
}

// StandingFor maps a GPA to its standing. Thresholds are inclusive and compared
// against the unrounded value.
func StandingFor(gpa float64) Standing {
	for _, step := range standingLadder {
		if gpa >= step.min {
			return step.standing
		}
	}
	if gpa > 0 {
		return StandingNeedsImprovement
	}
	return StandingNoData
}

// Trend classifies the change between the earlier and later halves of a record.
type Trend string

const (
	TrendImproving     Trend = "Improving"
	TrendStable        Trend = "Stable"
	TrendSlightDecline Trend = "Slight Decline"
	TrendDeclining     Trend = "Declining"
	TrendInsufficient  Trend = "Insufficient data"
)

var trendDescriptions = map[Trend]string{
	TrendImproving:     "📈 Improving - Strong upward trend",
	TrendStable:        "→ Stable - Consistent performance",
	TrendSlightDecline: "↘ Slight Decline - Minor challenges",
	TrendDeclining:     "↓ Declining - Needs attention",
	TrendInsufficient:  "Insufficient data",
}

// Description returns the label with its explanatory text.
func (t Trend) Description() string {
	if d, ok := trendDescriptions[t]; ok {
		return d
	}
	return string(t)
}

// AnalyzeTrend compares the mean grade point of the first ceil(n/2) courses
// with the rest. Courses are taken in the order given.
func AnalyzeTrend(courses []Course) Trend {
	n := len(courses)
	if n < 2 {
		return TrendInsufficient
	}

	mid := (n + 1) / 2
	firstAvg := meanGradePoint(courses[:mid])
	secondAvg := firstAvg
	if rest := courses[mid:]; len(rest) > 0 {
		secondAvg = meanGradePoint(rest)
	}

	diff := secondAvg - firstAvg
	switch {
	case diff > 0.1:
		return TrendImproving
	case diff > 0.02:
		return TrendStable
	case diff > -0.1:
		return TrendSlightDecline
	default:
		return TrendDeclining
	}
}

func meanGradePoint(courses []Course) float64 {
	if len(courses) == 0 {
		return 0
	}
	var sum float64
	for _, c := range courses {
		sum += c.GradePoint
	}
	return sum / float64(len(courses))
}

const neutralGPA = 3.0

// PredictNext projects next-period GPA from the current one. Consistent records
// keep their GPA; volatile ones regress toward a neutral 3.0. The result is
// rounded but not clamped.
func PredictNext(courses []Course, currentGPA float64) float64 {
	f := ExtractFeatures(courses)

	var next float64
	switch {
	case f.GradeConsistency > 0.85:
		next = currentGPA
	case f.GradeConsistency > 0.7:
		next = currentGPA + (f.AverageGrade-neutralGPA)*0.05
	default:
		next = currentGPA*0.7 + neutralGPA*0.3
	}
	return Round2(next)
}
