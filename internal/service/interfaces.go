package service

import (
	"context"

	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
	"github.com/alexanderramin/studyflow/internal/importer"
)

type PlanService interface {
	Generate(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
}

type TrainService interface {
	Train(ctx context.Context, req contract.TrainRequest) (*contract.TrainResponse, error)
	ListModels(ctx context.Context) ([]*domain.ModelArtifact, error)
}

// ImportResult holds the outcome of a roster import.
type ImportResult struct {
	StudentCount int
	SubjectCount int
	OutcomeCount int
}

type RosterService interface {
	CreateStudent(ctx context.Context, s *domain.StudentProfile) error
	GetStudent(ctx context.Context, id string) (*domain.StudentProfile, error)
	ListStudents(ctx context.Context) ([]*domain.StudentProfile, error)
	UpdateStudent(ctx context.Context, s *domain.StudentProfile) error
	DeleteStudent(ctx context.Context, id string) error

	AddSubject(ctx context.Context, r *domain.SubjectRecord) error
	ListSubjects(ctx context.Context, studentID string) ([]*domain.SubjectRecord, error)
	UpdateSubject(ctx context.Context, r *domain.SubjectRecord) error
	DeleteSubject(ctx context.Context, id string) error

	RecordOutcome(ctx context.Context, o *domain.PeerOutcome) error

	ImportRoster(ctx context.Context, filePath string) (*ImportResult, error)
	ImportRosterFromSchema(ctx context.Context, schema *importer.RosterSchema) (*ImportResult, error)
}
