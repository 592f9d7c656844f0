package engine

import "github.com/alexanderramin/studyflow/internal/domain"

// MasteryScore blends a subject's standing into a single [0,1] signal:
// half current score, a pace proxy from difficulty, and the student's
// own confidence.
func MasteryScore(r domain.SubjectRecord) float64 {
	return 0.5*(r.Score/100) +
		0.3*(1.0/(1.0+r.Difficulty)) +
		0.2*r.Confidence
}

// MasteryLevelFor buckets a mastery score into its label.
func MasteryLevelFor(score float64) domain.MasteryLevel {
	switch {
	case score < 0.4:
		return domain.MasteryNone
	case score < 0.7:
		return domain.MasteryPartial
	default:
		return domain.MasteryFull
	}
}

// VelocityTrend fits a least-squares line through the score history
// (oldest first, 0–100 scale) and labels the slope.
func VelocityTrend(history []float64) domain.VelocityTrend {
	n := len(history)
	if n < 2 {
		return domain.VelocityUnknown
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range history {
		x := float64(i)
		sumX += x
		sumY += y / 100
		sumXY += x * y / 100
		sumX2 += x * x
	}
	fn := float64(n)
	denom := fn*sumX2 - sumX*sumX
	if denom == 0 {
		return domain.VelocityUnknown
	}
	slope := (fn*sumXY - sumX*sumY) / denom

	switch {
	case slope > 0.05:
		return domain.VelocityFast
	case slope > 0.02:
		return domain.VelocitySteady
	case slope > -0.02:
		return domain.VelocityStable
	default:
		return domain.VelocityNeedsAttention
	}
}

// SuggestActivities maps a mastery level to study activities.
func SuggestActivities(level domain.MasteryLevel) []string {
	switch level {
	case domain.MasteryNone:
		return []string{"Concept review", "Worked examples", "Easy practice"}
	case domain.MasteryPartial:
		return []string{"Mixed practice", "Timed questions"}
	default:
		return []string{"Challenge problems", "Peer explanation"}
	}
}
