package scoring

import "github.com/chapterhub/chapterhub/app/models"

// Weights holds the per-activity point values of the performance score.
// EducationUnit is currently zero: education hours are tracked but do not
// contribute to the score. The weight stays configurable instead of being
// removed so the category can be re-enabled without code changes.
type Weights struct {
	Present            int
	Absent             int
	Late               int
	Substitute         int
	ReferralInternal   int
	ReferralExternal   int
	SuccessfulBusiness int
	Visitor            int
	OneToOne           int
	EducationUnit      int
}

// DefaultWeights returns the production scoring weights.
func DefaultWeights() Weights {
	return Weights{
		Present:            10,
		Absent:             -10,
		Late:               5,
		Substitute:         10,
		ReferralInternal:   10,
		ReferralExternal:   5,
		SuccessfulBusiness: 5,
		Visitor:            10,
		OneToOne:           10,
		EducationUnit:      0,
	}
}

const (
	// MinScore and MaxScore bound the performance score; the weighted sum is
	// clamped into this range on every recompute.
	MinScore = 0
	MaxScore = 100
)

// ClampScore forces a raw weighted sum into the valid score range.
func ClampScore(sum int) int {
	if sum < MinScore {
		return MinScore
	}
	if sum > MaxScore {
		return MaxScore
	}
	return sum
}

// ColorForScore bands a score into its performance color. PerformanceColor
// on a member must always equal ColorForScore of its PerformanceScore.
func ColorForScore(score int) string {
	switch {
	case score >= 70:
		return models.ColorGreen
	case score >= 50:
		return models.ColorYellow
	case score >= 30:
		return models.ColorRed
	default:
		return models.ColorGrey
	}
}
