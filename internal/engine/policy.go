package engine

import "github.com/alexanderramin/studyflow/internal/domain"

// PolicyParams tune fusion and allocation per learner type. The
// scenario policy is a pure lookup: no state, no subclassing.
type PolicyParams struct {
	// EfficiencyTrim scales study allocations downward for learners who
	// need less seat time (1.0 = no trim).
	EfficiencyTrim float64
	// EnrichmentBoost is added to the hybrid score of enrichment-flagged
	// subjects.
	EnrichmentBoost float64
	// WeakAreaWeight multiplies the hybrid score of weak-area subjects.
	WeakAreaWeight float64
	// VarianceSmoothing blends allocations toward a uniform split
	// (0 = fully proportional, 1 = fully uniform) to reduce the daily
	// spread for learners who need structure.
	VarianceSmoothing float64
	// Message is surfaced in the plan's policy messages.
	Message string
}

var policyTable = map[domain.LearnerType]PolicyParams{
	domain.LearnerFast: {
		EfficiencyTrim:    0.9,
		EnrichmentBoost:   0.05,
		WeakAreaWeight:    1.0,
		VarianceSmoothing: 0,
		Message:           "fast learner: trimmed allocations, enrichment subjects boosted",
	},
	domain.LearnerNeedsSupport: {
		EfficiencyTrim:    1.0,
		EnrichmentBoost:   0,
		WeakAreaWeight:    1.25,
		VarianceSmoothing: 0.3,
		Message:           "needs support: weak areas weighted up, allocations evened out",
	},
	domain.LearnerInconsistent: {
		EfficiencyTrim:    1.0,
		EnrichmentBoost:   0,
		WeakAreaWeight:    1.15,
		VarianceSmoothing: 0.4,
		Message:           "inconsistent: structured plan with reduced daily variance",
	},
	domain.LearnerBalanced: {
		EfficiencyTrim:    1.0,
		EnrichmentBoost:   0,
		WeakAreaWeight:    1.0,
		VarianceSmoothing: 0,
		Message:           "balanced learner: proportional allocation",
	},
}

// PolicyFor returns the scenario policy for a learner type. Unknown
// types fall back to the balanced policy.
func PolicyFor(lt domain.LearnerType) PolicyParams {
	if p, ok := policyTable[lt]; ok {
		return p
	}
	return policyTable[domain.LearnerBalanced]
}
