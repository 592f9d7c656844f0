package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
)

// allocationQuantum is the granularity of emitted allocations, in hours.
const allocationQuantum = 0.25

// revisionReserveFrac bounds how much of the capped capacity revision
// blocks may take.
const revisionReserveFrac = 0.25

// revisionMasteryCutoff marks subjects that get a reinforcement block.
const revisionMasteryCutoff = 0.5

// ScheduleInput bundles everything fusion needs. The three score maps
// are keyed by subject ID and must already share the [0,1] scale,
// except PredictedHours which is in raw hours and normalized here.
type ScheduleInput struct {
	Student        domain.StudentProfile
	Features       []SubjectFeatures
	PredictedHours map[string]float64
	Collaborative  map[string]float64
	Content        map[string]float64
	CapacityHours  float64
	HorizonDays    int
	Cfg            *config.Config
}

// ScheduleResult is the ranked, time-boxed allocation.
type ScheduleResult struct {
	Entries        []contract.ScheduleEntry
	CapFactor      float64
	CappedHours    float64
	AllocatedHours float64
	PolicyMessages []string
}

// BuildSchedule fuses the three component scores into one ranked
// allocation under the stress-derived cap. The computation is a pure
// function of its input: identical inputs yield identical schedules.
func BuildSchedule(in ScheduleInput) (*ScheduleResult, error) {
	if len(in.Features) == 0 {
		return nil, contract.NewPlanError(contract.ErrNoSubjects,
			"no enrolled subjects to schedule")
	}
	if in.CapacityHours <= 0 {
		return nil, contract.NewFieldError(contract.ErrInvalidCapacity, "daily_capacity_hours",
			fmt.Sprintf("daily capacity %.2f must be > 0", in.CapacityHours))
	}
	horizon := in.HorizonDays
	if horizon <= 0 {
		horizon = 1
	}

	policy := PolicyFor(in.Student.LearnerType)
	scored := fuseScores(in, policy)
	CanonicalSort(scored)

	capFactor := in.Cfg.CapFactor(string(in.Student.Stress))
	capped := in.CapacityHours * capFactor * float64(horizon)

	revisionSubjects, revisionTotal := planRevision(scored, in.Cfg.RevisionBlockHours, capped)
	studyHours, topUp := allocateStudy(scored, capped-revisionTotal, policy, in.Cfg.MinAllocationHours)

	entries := buildEntries(scored, studyHours, topUp, revisionSubjects, in.Cfg.RevisionBlockHours)

	allocated := 0.0
	for _, e := range entries {
		allocated += e.AllocatedHours
	}

	messages := []string{policy.Message}
	if capFactor < 1 {
		messages = append(messages, fmt.Sprintf(
			"%s stress: daily allocation capped at %.2fh (%.0f%% of capacity)",
			in.Student.Stress, capped, capFactor*100))
	}

	return &ScheduleResult{
		Entries:        entries,
		CapFactor:      capFactor,
		CappedHours:    capped,
		AllocatedHours: allocated,
		PolicyMessages: messages,
	}, nil
}

// fuseScores computes the policy-adjusted hybrid score and the
// explanation payload for every subject.
func fuseScores(in ScheduleInput, policy PolicyParams) []ScoredSubject {
	maxCredit := 0.0
	for _, f := range in.Features {
		if f.CreditWeight > maxCredit {
			maxCredit = f.CreditWeight
		}
	}

	scored := make([]ScoredSubject, 0, len(in.Features))
	for _, f := range in.Features {
		predicted := in.PredictedHours[f.SubjectID]
		mlNorm := clamp01(predicted / in.Cfg.MaxPlausibleHours)
		collab := in.Collaborative[f.SubjectID]
		content := in.Content[f.SubjectID]

		hybrid := in.Cfg.Fusion.ML*mlNorm +
			in.Cfg.Fusion.Collaborative*collab +
			in.Cfg.Fusion.Content*content

		var reasons []contract.RecommendationReason

		if f.WeakArea {
			before := hybrid
			hybrid *= policy.WeakAreaWeight
			delta := hybrid - before
			reasons = append(reasons, contract.RecommendationReason{
				Code:        contract.ReasonWeakArea,
				Message:     fmt.Sprintf("Score %.0f is below the passing threshold", f.Score),
				WeightDelta: &delta,
			})
			if policy.WeakAreaWeight > 1 {
				reasons = append(reasons, contract.RecommendationReason{
					Code:    contract.ReasonStructureFocus,
					Message: "Weak areas weighted up for structured study",
				})
			}
		}
		if f.Enrichment && policy.EnrichmentBoost > 0 {
			delta := policy.EnrichmentBoost
			hybrid += delta
			reasons = append(reasons, contract.RecommendationReason{
				Code:        contract.ReasonEnrichmentBoost,
				Message:     "Enrichment subject boosted for a fast learner",
				WeightDelta: &delta,
			})
		}
		if f.DaysToExam <= 7 {
			reasons = append(reasons, contract.RecommendationReason{
				Code:    contract.ReasonExamPressure,
				Message: formatExamMessage(f.DaysToExam),
			})
		}
		if collab > 0 {
			reasons = append(reasons, contract.RecommendationReason{
				Code:    contract.ReasonPeerSignal,
				Message: "Similar students improved with comparable study time",
			})
		} else {
			reasons = append(reasons, contract.RecommendationReason{
				Code:    contract.ReasonColdStart,
				Message: "No peer history for this subject, relying on attributes and model",
			})
		}
		if maxCredit > 0 && f.CreditWeight == maxCredit {
			reasons = append(reasons, contract.RecommendationReason{
				Code:    contract.ReasonHighStakes,
				Message: fmt.Sprintf("Highest credit weight (%.1f) among enrolled subjects", f.CreditWeight),
			})
		}

		scored = append(scored, ScoredSubject{
			Features: f,
			Scores: contract.ScoreBreakdown{
				MLPredictedHours: predicted,
				MLNorm:           mlNorm,
				Collaborative:    collab,
				Content:          content,
				Hybrid:           hybrid,
			},
			Reasons: reasons,
		})
	}
	return scored
}

// planRevision selects low-mastery subjects for a fixed reinforcement
// block, lowest mastery first, bounded by the revision reserve.
func planRevision(scored []ScoredSubject, blockHours, capped float64) (map[string]bool, float64) {
	selected := make(map[string]bool)
	if blockHours <= 0 {
		return selected, 0
	}
	maxBlocks := int(capped * revisionReserveFrac / blockHours)
	if maxBlocks == 0 {
		return selected, 0
	}

	candidates := make([]ScoredSubject, 0, len(scored))
	for _, s := range scored {
		if s.Features.Mastery < revisionMasteryCutoff {
			candidates = append(candidates, s)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Features.Mastery != candidates[j].Features.Mastery {
			return candidates[i].Features.Mastery < candidates[j].Features.Mastery
		}
		return candidates[i].Features.SubjectID < candidates[j].Features.SubjectID
	})

	for _, c := range candidates {
		if len(selected) >= maxBlocks {
			break
		}
		selected[c.Features.SubjectID] = true
	}
	return selected, float64(len(selected)) * blockHours
}

// allocateStudy distributes the study pool proportionally to hybrid
// scores, applies the policy trim and smoothing, then quantizes.
// The rounding remainder tops up the highest-ranked subject, so the
// total never exceeds the pool.
func allocateStudy(scored []ScoredSubject, pool float64, policy PolicyParams, floor float64) (map[string]float64, float64) {
	hours := make(map[string]float64, len(scored))
	if pool <= 0 {
		for _, s := range scored {
			hours[s.Features.SubjectID] = 0
		}
		return hours, 0
	}

	target := pool * policy.EfficiencyTrim
	n := float64(len(scored))

	sumHybrid := 0.0
	for _, s := range scored {
		sumHybrid += s.Scores.Hybrid
	}

	raw := make([]float64, len(scored))
	total := 0.0
	for i, s := range scored {
		share := 1 / n
		if sumHybrid > 0 {
			share = s.Scores.Hybrid / sumHybrid
		}
		h := target * share
		h = (1-policy.VarianceSmoothing)*h + policy.VarianceSmoothing*(target/n)
		if h < floor {
			h = floor
		}
		raw[i] = h
		total += h
	}
	// A positive floor can push past the target; rescale to stay inside.
	if total > target && total > 0 {
		for i := range raw {
			raw[i] *= target / total
		}
	}

	quantized := 0.0
	for i, s := range scored {
		q := math.Floor(raw[i]/allocationQuantum) * allocationQuantum
		hours[s.Features.SubjectID] = q
		quantized += q
	}

	// Redistribute the rounding remainder to the top-ranked subject.
	topUp := math.Floor((target-quantized)/allocationQuantum) * allocationQuantum
	if topUp > 0 && len(scored) > 0 {
		hours[scored[0].Features.SubjectID] += topUp
	} else {
		topUp = 0
	}
	return hours, topUp
}

// buildEntries emits study entries in rank order, then revision blocks
// for the selected subjects.
func buildEntries(
	scored []ScoredSubject,
	studyHours map[string]float64,
	topUp float64,
	revisionSubjects map[string]bool,
	blockHours float64,
) []contract.ScheduleEntry {
	entries := make([]contract.ScheduleEntry, 0, len(scored)+len(revisionSubjects))

	for i, s := range scored {
		reasons := make([]contract.RecommendationReason, len(s.Reasons))
		copy(reasons, s.Reasons)
		if i == 0 && topUp > 0 {
			delta := topUp
			reasons = append(reasons, contract.RecommendationReason{
				Code:        contract.ReasonRemainderTopUp,
				Message:     fmt.Sprintf("Received the %.2fh rounding remainder as top-ranked subject", topUp),
				WeightDelta: &delta,
			})
		}
		entries = append(entries, contract.ScheduleEntry{
			SubjectID:      s.Features.SubjectID,
			SubjectName:    s.Features.SubjectName,
			Kind:           contract.EntryStudy,
			Rank:           i + 1,
			AllocatedHours: studyHours[s.Features.SubjectID],
			WeakArea:       s.Features.WeakArea,
			Scores:         s.Scores,
			Mastery:        s.Features.Mastery,
			MasteryLevel:   s.Features.MasteryLevel,
			Velocity:       s.Features.Velocity,
			Activities:     SuggestActivities(s.Features.MasteryLevel),
			Reasons:        reasons,
		})
	}

	rank := len(scored)
	for _, s := range scored {
		if !revisionSubjects[s.Features.SubjectID] {
			continue
		}
		rank++
		entries = append(entries, contract.ScheduleEntry{
			SubjectID:      s.Features.SubjectID,
			SubjectName:    s.Features.SubjectName,
			Kind:           contract.EntryRevision,
			Rank:           rank,
			AllocatedHours: blockHours,
			WeakArea:       s.Features.WeakArea,
			Scores:         s.Scores,
			Mastery:        s.Features.Mastery,
			MasteryLevel:   s.Features.MasteryLevel,
			Velocity:       s.Features.Velocity,
			Activities:     []string{"Concept reinforcement", "Recall practice"},
			Reasons: []contract.RecommendationReason{{
				Code:    contract.ReasonRevisionBlock,
				Message: fmt.Sprintf("Mastery %.2f is below %.1f, short reinforcement block added", s.Features.Mastery, revisionMasteryCutoff),
			}},
		})
	}
	return entries
}

func formatExamMessage(days int) string {
	switch {
	case days == 0:
		return "Exam is today!"
	case days == 1:
		return "Exam tomorrow"
	default:
		return fmt.Sprintf("Exam in %d days", days)
	}
}
