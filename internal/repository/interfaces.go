package repository

import (
	"context"

	"github.com/alexanderramin/studyflow/internal/domain"
)

type StudentRepo interface {
	Create(ctx context.Context, s *domain.StudentProfile) error
	GetByID(ctx context.Context, id string) (*domain.StudentProfile, error)
	List(ctx context.Context) ([]*domain.StudentProfile, error)
	Update(ctx context.Context, s *domain.StudentProfile) error
	Delete(ctx context.Context, id string) error
}

type SubjectRepo interface {
	Create(ctx context.Context, r *domain.SubjectRecord) error
	GetByID(ctx context.Context, id string) (*domain.SubjectRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.SubjectRecord, error)
	Update(ctx context.Context, r *domain.SubjectRecord) error
	Delete(ctx context.Context, id string) error
}

type PeerOutcomeRepo interface {
	Upsert(ctx context.Context, o *domain.PeerOutcome) error
	LoadCorpus(ctx context.Context) (*domain.PeerCorpus, error)
	DeleteByPeer(ctx context.Context, peerID string) error
	Count(ctx context.Context) (int, error)
}

type ModelRepo interface {
	Save(ctx context.Context, m *domain.ModelArtifact) error
	Latest(ctx context.Context) (*domain.ModelArtifact, error)
	GetByVersion(ctx context.Context, version string) (*domain.ModelArtifact, error)
	List(ctx context.Context) ([]*domain.ModelArtifact, error)
}
