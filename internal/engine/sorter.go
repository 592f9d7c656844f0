package engine

import (
	"sort"

	"github.com/alexanderramin/studyflow/internal/contract"
)

// ScoredSubject pairs engineered features with the fused score
// breakdown and the explanation payload collected while scoring.
type ScoredSubject struct {
	Features SubjectFeatures
	Scores   contract.ScoreBreakdown
	Reasons  []contract.RecommendationReason
}

// CanonicalSort orders scored subjects by the deterministic canonical rules:
// 1. Hybrid score: higher first
// 2. Weak area: weak areas first
// 3. Priority score: higher first
// 4. Subject ID: lexical ascending
func CanonicalSort(subjects []ScoredSubject) {
	sort.SliceStable(subjects, func(i, j int) bool {
		a, b := subjects[i], subjects[j]

		if a.Scores.Hybrid != b.Scores.Hybrid {
			return a.Scores.Hybrid > b.Scores.Hybrid
		}
		if a.Features.WeakArea != b.Features.WeakArea {
			return a.Features.WeakArea
		}
		if a.Features.PriorityScore != b.Features.PriorityScore {
			return a.Features.PriorityScore > b.Features.PriorityScore
		}
		return a.Features.SubjectID < b.Features.SubjectID
	})
}
