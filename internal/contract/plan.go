package contract

import (
	"time"

	"github.com/alexanderramin/studyflow/internal/domain"
)

type PlanRequest struct {
	StudentID string
	// CapacityHours overrides the stored profile capacity when > 0.
	CapacityHours float64
	// HorizonDays is the planning horizon; defaults to 1.
	HorizonDays int
	// ModelVersion pins a specific trained model; empty uses the latest.
	ModelVersion string
	Explain      bool
}

func NewPlanRequest(studentID string) PlanRequest {
	return PlanRequest{
		StudentID:   studentID,
		HorizonDays: 1,
		Explain:     true,
	}
}

type PlanResponse struct {
	GeneratedAt    time.Time
	PlanID         string
	StudentID      string
	LearnerType    domain.LearnerType
	Stress         domain.StressLevel
	CapacityHours  float64
	CapFactor      float64
	CappedHours    float64
	AllocatedHours float64
	ModelVersion   string
	Entries        []ScheduleEntry
	PolicyMessages []string
}

type PlanErrorCode string

const (
	ErrInvalidInput     PlanErrorCode = "INVALID_INPUT"
	ErrInsufficientData PlanErrorCode = "INSUFFICIENT_DATA"
	ErrModelNotTrained  PlanErrorCode = "MODEL_NOT_TRAINED"
	ErrNoSubjects       PlanErrorCode = "NO_SUBJECTS"
	ErrInvalidCapacity  PlanErrorCode = "INVALID_CAPACITY"
	ErrStudentNotFound  PlanErrorCode = "STUDENT_NOT_FOUND"
	ErrInternalError    PlanErrorCode = "INTERNAL_ERROR"
)

// PlanError is the typed failure surface of the engine. Field names the
// offending input field when the failure is input-shaped.
type PlanError struct {
	Code    PlanErrorCode
	Field   string
	Message string
}

func (e *PlanError) Error() string {
	if e.Field != "" {
		return string(e.Code) + " (" + e.Field + "): " + e.Message
	}
	return string(e.Code) + ": " + e.Message
}

// NewPlanError builds a PlanError without an offending field.
func NewPlanError(code PlanErrorCode, message string) *PlanError {
	return &PlanError{Code: code, Message: message}
}

// NewFieldError builds a PlanError naming the offending field.
func NewFieldError(code PlanErrorCode, field, message string) *PlanError {
	return &PlanError{Code: code, Field: field, Message: message}
}
