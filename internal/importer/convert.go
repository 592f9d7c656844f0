package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// Roster holds converted domain objects ready for persistence.
type Roster struct {
	Students     []*domain.StudentProfile
	Subjects     []*domain.SubjectRecord
	PeerOutcomes []*domain.PeerOutcome
}

// Convert transforms a validated RosterSchema into domain objects.
// Call ValidateRosterSchema first; Convert assumes the schema is valid.
func Convert(schema *RosterSchema) *Roster {
	now := time.Now().UTC()

	refMap := make(map[string]string) // student ref -> UUID

	students := make([]*domain.StudentProfile, 0, len(schema.Students))
	for _, s := range schema.Students {
		realID := uuid.New().String()
		refMap[s.Ref] = realID

		// Defaults cascade: student field > roster defaults > hardcoded.
		learner := domain.CoalesceStr(s.LearnerType, defaultLearnerType(schema.Defaults), string(domain.LearnerBalanced))
		stress := domain.CoalesceStr(s.StressLevel, defaultStressLevel(schema.Defaults), string(domain.StressMedium))
		capacity := domain.Float64FromPtrWithDefault(2.0, s.DailyCapacity, defaultCapacity(schema.Defaults))

		students = append(students, &domain.StudentProfile{
			ID:            realID,
			Name:          s.Name,
			LearnerType:   domain.LearnerType(learner),
			Stress:        domain.StressLevel(stress),
			DailyCapacity: capacity,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	subjects := make([]*domain.SubjectRecord, 0, len(schema.Subjects))
	for _, sub := range schema.Subjects {
		confidence := domain.Float64FromPtrWithDefault(0.5, sub.Confidence, defaultConfidence(schema.Defaults))
		credit := domain.Float64FromPtrWithDefault(1.0, sub.CreditWeight, defaultCreditWeight(schema.Defaults))
		enrichment := domain.BoolFromPtrWithDefault(false, sub.Enrichment)

		subjects = append(subjects, &domain.SubjectRecord{
			SubjectID:    uuid.New().String(),
			StudentID:    refMap[sub.StudentRef],
			Name:         sub.Name,
			Score:        sub.CurrentScore,
			Confidence:   confidence,
			Difficulty:   sub.Difficulty,
			CreditWeight: credit,
			Enrichment:   enrichment,
			DaysToExam:   sub.DaysRemaining,
			ScoreHistory: sub.ScoreHistory,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	outcomes := make([]*domain.PeerOutcome, 0, len(schema.PeerOutcomes))
	for _, o := range schema.PeerOutcomes {
		confidence := domain.Float64FromPtrWithDefault(0.5, o.Confidence, defaultConfidence(schema.Defaults))
		stress := domain.CoalesceStr(o.StressLevel, defaultStressLevel(schema.Defaults), string(domain.StressMedium))

		outcomes = append(outcomes, &domain.PeerOutcome{
			PeerID:      o.PeerID,
			SubjectID:   canonicalSubject(o.Subject),
			Score:       o.CurrentScore,
			Confidence:  confidence,
			HoursPerDay: o.HoursPerDay,
			Improved:    o.Improved,
			Difficulty:  o.Difficulty,
			DaysToExam:  o.DaysRemaining,
			Stress:      domain.StressLevel(stress),
		})
	}

	return &Roster{Students: students, Subjects: subjects, PeerOutcomes: outcomes}
}

func canonicalSubject(name string) string {
	return domain.CanonicalSubject(name)
}

func defaultLearnerType(d *DefaultsImport) string {
	if d != nil {
		return d.LearnerType
	}
	return ""
}

func defaultStressLevel(d *DefaultsImport) string {
	if d != nil {
		return d.StressLevel
	}
	return ""
}

func defaultCapacity(d *DefaultsImport) *float64 {
	if d != nil {
		return d.DailyCapacity
	}
	return nil
}

func defaultConfidence(d *DefaultsImport) *float64 {
	if d != nil {
		return d.Confidence
	}
	return nil
}

func defaultCreditWeight(d *DefaultsImport) *float64 {
	if d != nil {
		return d.CreditWeight
	}
	return nil
}
