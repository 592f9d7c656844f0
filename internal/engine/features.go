package engine

import (
	"fmt"
	"math"

	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
)

// farHorizonDays marks an exam as "far off": a passing subject with an
// exam beyond this many days carries zero urgency.
const farHorizonDays = 14

// SubjectFeatures is the engineered per-subject view the scorers and
// the fusion step consume. Derived fields are pure functions of the
// record and the engine constants.
type SubjectFeatures struct {
	SubjectID   string
	SubjectName string

	// Raw inputs carried through for scoring and explanation.
	Score        float64
	Confidence   float64
	Difficulty   float64
	CreditWeight float64
	DaysToExam   int
	Enrichment   bool

	// Derived.
	StudyUrgency  float64
	PriorityScore float64
	WeakArea      bool
	Mastery       float64
	MasteryLevel  domain.MasteryLevel
	Velocity      domain.VelocityTrend
}

// BuildFeatures derives engineered features for every record. It fails
// with INVALID_INPUT on the first malformed record, naming the
// offending field.
func BuildFeatures(records []domain.SubjectRecord, cfg *config.Config) ([]SubjectFeatures, error) {
	features := make([]SubjectFeatures, 0, len(records))
	for _, r := range records {
		if err := validateRecord(r); err != nil {
			return nil, err
		}
		urgency := StudyUrgency(r.Score, r.DaysToExam, cfg.TargetScore, cfg.PassingThreshold)
		weak := r.Score < cfg.PassingThreshold
		mastery := MasteryScore(r)

		features = append(features, SubjectFeatures{
			SubjectID:     r.SubjectID,
			SubjectName:   r.Name,
			Score:         r.Score,
			Confidence:    r.Confidence,
			Difficulty:    r.Difficulty,
			CreditWeight:  r.CreditWeight,
			DaysToExam:    r.DaysToExam,
			Enrichment:    r.Enrichment,
			StudyUrgency:  urgency,
			PriorityScore: PriorityScore(urgency, r.CreditWeight, weak, cfg.WeakAreaBoost),
			WeakArea:      weak,
			Mastery:       mastery,
			MasteryLevel:  MasteryLevelFor(mastery),
			Velocity:      VelocityTrend(r.ScoreHistory),
		})
	}
	return features, nil
}

// StudyUrgency maps the performance gap and exam proximity into [0,1].
// It is monotonically non-increasing in score and non-decreasing as
// days_remaining shrinks toward 0. A passing subject whose exam is far
// off carries exactly zero urgency.
func StudyUrgency(score float64, daysToExam int, targetScore, passingThreshold float64) float64 {
	if score >= passingThreshold && daysToExam > farHorizonDays {
		return 0
	}
	gap := math.Max(0, targetScore-score)
	proximity := 1.0 / (1.0 + float64(daysToExam))
	return gap / 100 * proximity
}

// PriorityScore combines urgency with credit weight, boosting weak areas.
func PriorityScore(urgency, creditWeight float64, weakArea bool, weakBoost float64) float64 {
	p := urgency * math.Log1p(creditWeight)
	if weakArea {
		p *= weakBoost
	}
	return p
}

func validateRecord(r domain.SubjectRecord) error {
	if r.SubjectID == "" {
		return contract.NewFieldError(contract.ErrInvalidInput, "subject_id",
			"subject ID is required")
	}
	if r.DaysToExam < 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "days_remaining",
			fmt.Sprintf("subject %s: days remaining %d must not be negative", r.SubjectID, r.DaysToExam))
	}
	if r.Score < 0 || r.Score > 100 {
		return contract.NewFieldError(contract.ErrInvalidInput, "current_score",
			fmt.Sprintf("subject %s: score %.1f must be within [0,100]", r.SubjectID, r.Score))
	}
	if r.CreditWeight <= 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "credit_weight",
			fmt.Sprintf("subject %s: credit weight %.2f must be > 0", r.SubjectID, r.CreditWeight))
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return contract.NewFieldError(contract.ErrInvalidInput, "confidence",
			fmt.Sprintf("subject %s: confidence %.2f must be within [0,1]", r.SubjectID, r.Confidence))
	}
	if r.Difficulty < 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "difficulty",
			fmt.Sprintf("subject %s: difficulty %.1f must not be negative", r.SubjectID, r.Difficulty))
	}
	return nil
}
