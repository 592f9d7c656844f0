package domain

import (
	"fmt"
	"time"
)

type StudentProfile struct {
	ID            string
	Name          string
	LearnerType   LearnerType
	Stress        StressLevel
	DailyCapacity float64 // nominal study capacity in hours per day

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks that the profile carries usable planning inputs.
func (p *StudentProfile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("student ID is required")
	}
	if !ValidStressLevels[string(p.Stress)] {
		return fmt.Errorf("stress level %q must be one of low, medium, high", p.Stress)
	}
	if !ValidLearnerTypes[string(p.LearnerType)] {
		return fmt.Errorf("learner type %q must be one of fast_learner, needs_support, inconsistent, balanced", p.LearnerType)
	}
	if p.DailyCapacity <= 0 {
		return fmt.Errorf("daily capacity %.2f must be > 0 hours", p.DailyCapacity)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
func (p *StudentProfile) DisplayID() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
