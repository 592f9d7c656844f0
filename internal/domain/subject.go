package domain

import (
	"strings"
	"time"
)

type SubjectRecord struct {
	SubjectID string
	StudentID string
	Name      string

	// Current standing
	Score      float64 // 0–100
	Confidence float64 // 0–1

	// Static attributes
	Difficulty   float64 // ordered scale, 1 (easiest) to 5
	CreditWeight float64 // > 0
	Enrichment   bool    // advanced/enrichment-flagged subject

	// Exam proximity
	DaysToExam int // non-negative

	// Accuracy history, oldest first, for velocity trending.
	ScoreHistory []float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanonicalSubject normalizes a subject name into the shared key that
// peer outcomes are matched on across students.
func CanonicalSubject(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Remaining returns the gap to the target score, never negative.
func (r *SubjectRecord) Remaining(target float64) float64 {
	if r.Score >= target {
		return 0
	}
	return target - r.Score
}
