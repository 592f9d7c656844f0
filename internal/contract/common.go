package contract

import "github.com/alexanderramin/studyflow/internal/domain"

type RecommendationReasonCode string

const (
	ReasonWeakArea        RecommendationReasonCode = "WEAK_AREA"
	ReasonExamPressure    RecommendationReasonCode = "EXAM_PRESSURE"
	ReasonPeerSignal      RecommendationReasonCode = "PEER_SIGNAL"
	ReasonColdStart       RecommendationReasonCode = "COLD_START"
	ReasonHighStakes      RecommendationReasonCode = "HIGH_STAKES"
	ReasonStressCap       RecommendationReasonCode = "STRESS_CAP"
	ReasonEnrichmentBoost RecommendationReasonCode = "ENRICHMENT_BOOST"
	ReasonStructureFocus  RecommendationReasonCode = "STRUCTURE_FOCUS"
	ReasonRevisionBlock   RecommendationReasonCode = "REVISION_BLOCK"
	ReasonRemainderTopUp  RecommendationReasonCode = "REMAINDER_TOP_UP"
)

type RecommendationReason struct {
	Code        RecommendationReasonCode
	Message     string
	WeightDelta *float64
}

// ScoreBreakdown carries the three raw component scores and the fused
// score for one subject. All components share the [0,1] scale; the raw
// ML prediction in hours is kept alongside for display.
type ScoreBreakdown struct {
	MLPredictedHours float64
	MLNorm           float64
	Collaborative    float64
	Content          float64
	Hybrid           float64
}

type EntryKind string

const (
	EntryStudy    EntryKind = "study"
	EntryRevision EntryKind = "revision"
)

type ScheduleEntry struct {
	SubjectID      string
	SubjectName    string
	Kind           EntryKind
	Rank           int
	AllocatedHours float64
	WeakArea       bool
	Scores         ScoreBreakdown
	Mastery        float64
	MasteryLevel   domain.MasteryLevel
	Velocity       domain.VelocityTrend
	Activities     []string
	Reasons        []RecommendationReason
}
