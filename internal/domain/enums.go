package domain

type StressLevel string

const (
	StressLow    StressLevel = "low"
	StressMedium StressLevel = "medium"
	StressHigh   StressLevel = "high"
)

// Ordinal returns the encoded stress level used as a model feature
// (low=0, medium=1, high=2). Unknown levels encode as medium.
func (s StressLevel) Ordinal() float64 {
	switch s {
	case StressLow:
		return 0
	case StressHigh:
		return 2
	default:
		return 1
	}
}

type LearnerType string

const (
	LearnerFast         LearnerType = "fast_learner"
	LearnerNeedsSupport LearnerType = "needs_support"
	LearnerInconsistent LearnerType = "inconsistent"
	LearnerBalanced     LearnerType = "balanced"
)

type MasteryLevel string

const (
	MasteryNone    MasteryLevel = "not_mastered"
	MasteryPartial MasteryLevel = "partially_mastered"
	MasteryFull    MasteryLevel = "mastered"
)

type VelocityTrend string

const (
	VelocityFast           VelocityTrend = "fast_improvement"
	VelocitySteady         VelocityTrend = "steady_improvement"
	VelocityStable         VelocityTrend = "stable"
	VelocityNeedsAttention VelocityTrend = "needs_attention"
	VelocityUnknown        VelocityTrend = "insufficient_data"
)

// ValidStressLevels is the canonical set of accepted stress level strings.
var ValidStressLevels = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// ValidLearnerTypes is the canonical set of accepted learner type strings.
var ValidLearnerTypes = map[string]bool{
	"fast_learner": true, "needs_support": true,
	"inconsistent": true, "balanced": true,
}
