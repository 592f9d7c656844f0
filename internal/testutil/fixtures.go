package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// Student options
type StudentOption func(*domain.StudentProfile)

func WithLearnerType(lt domain.LearnerType) StudentOption {
	return func(s *domain.StudentProfile) {
		s.LearnerType = lt
	}
}

func WithStress(level domain.StressLevel) StudentOption {
	return func(s *domain.StudentProfile) {
		s.Stress = level
	}
}

func WithDailyCapacity(hours float64) StudentOption {
	return func(s *domain.StudentProfile) {
		s.DailyCapacity = hours
	}
}

func NewTestStudent(name string, opts ...StudentOption) *domain.StudentProfile {
	now := time.Now().UTC()
	s := &domain.StudentProfile{
		ID:            uuid.New().String(),
		Name:          name,
		LearnerType:   domain.LearnerBalanced,
		Stress:        domain.StressMedium,
		DailyCapacity: 2.0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subject options
type SubjectOption func(*domain.SubjectRecord)

func WithScore(score float64) SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.Score = score
	}
}

func WithConfidence(c float64) SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.Confidence = c
	}
}

func WithDifficulty(d float64) SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.Difficulty = d
	}
}

func WithCreditWeight(w float64) SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.CreditWeight = w
	}
}

func WithDaysToExam(days int) SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.DaysToExam = days
	}
}

func WithEnrichment() SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.Enrichment = true
	}
}

func WithScoreHistory(history ...float64) SubjectOption {
	return func(r *domain.SubjectRecord) {
		r.ScoreHistory = history
	}
}

func NewTestSubject(studentID, name string, opts ...SubjectOption) *domain.SubjectRecord {
	now := time.Now().UTC()
	r := &domain.SubjectRecord{
		SubjectID:    uuid.New().String(),
		StudentID:    studentID,
		Name:         name,
		Score:        70,
		Confidence:   0.5,
		Difficulty:   3,
		CreditWeight: 3,
		DaysToExam:   14,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTestOutcome builds a peer outcome for corpus fixtures.
func NewTestOutcome(peerID, subjectID string, score, confidence, hoursPerDay float64, improved bool) *domain.PeerOutcome {
	return &domain.PeerOutcome{
		PeerID:      peerID,
		SubjectID:   subjectID,
		Score:       score,
		Confidence:  confidence,
		HoursPerDay: hoursPerDay,
		Improved:    improved,
		Difficulty:  3,
		DaysToExam:  7,
		Stress:      domain.StressMedium,
	}
}
