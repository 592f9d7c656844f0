package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
	"github.com/alexanderramin/studyflow/internal/importer"
	"github.com/alexanderramin/studyflow/internal/repository"
)

type rosterService struct {
	students repository.StudentRepo
	subjects repository.SubjectRepo
	peers    repository.PeerOutcomeRepo
	observer UseCaseObserver
}

// NewRosterService wires student, subject, and peer-outcome management
// over the persistence layer.
func NewRosterService(
	students repository.StudentRepo,
	subjects repository.SubjectRepo,
	peers repository.PeerOutcomeRepo,
	observers ...UseCaseObserver,
) RosterService {
	return &rosterService{
		students: students,
		subjects: subjects,
		peers:    peers,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *rosterService) CreateStudent(ctx context.Context, student *domain.StudentProfile) error {
	if err := student.Validate(); err != nil {
		return contract.NewFieldError(contract.ErrInvalidInput, "student", err.Error())
	}
	return s.students.Create(ctx, student)
}

func (s *rosterService) GetStudent(ctx context.Context, id string) (*domain.StudentProfile, error) {
	return s.students.GetByID(ctx, id)
}

func (s *rosterService) ListStudents(ctx context.Context) ([]*domain.StudentProfile, error) {
	return s.students.List(ctx)
}

func (s *rosterService) UpdateStudent(ctx context.Context, student *domain.StudentProfile) error {
	if err := student.Validate(); err != nil {
		return contract.NewFieldError(contract.ErrInvalidInput, "student", err.Error())
	}
	student.UpdatedAt = time.Now().UTC()
	return s.students.Update(ctx, student)
}

func (s *rosterService) DeleteStudent(ctx context.Context, id string) error {
	return s.students.Delete(ctx, id)
}

func (s *rosterService) AddSubject(ctx context.Context, r *domain.SubjectRecord) error {
	if err := validateSubject(r); err != nil {
		return err
	}
	if err := s.ensureNotEnrolled(ctx, r); err != nil {
		return err
	}
	return s.subjects.Create(ctx, r)
}

func (s *rosterService) ListSubjects(ctx context.Context, studentID string) ([]*domain.SubjectRecord, error) {
	return s.subjects.ListByStudent(ctx, studentID)
}

func (s *rosterService) UpdateSubject(ctx context.Context, r *domain.SubjectRecord) error {
	if err := validateSubject(r); err != nil {
		return err
	}
	r.UpdatedAt = time.Now().UTC()
	return s.subjects.Update(ctx, r)
}

func (s *rosterService) DeleteSubject(ctx context.Context, id string) error {
	return s.subjects.Delete(ctx, id)
}

func (s *rosterService) RecordOutcome(ctx context.Context, o *domain.PeerOutcome) error {
	if o.PeerID == "" || o.SubjectID == "" {
		return contract.NewFieldError(contract.ErrInvalidInput, "peer_outcome",
			"peer ID and subject are required")
	}
	if o.HoursPerDay < 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "hours_per_day",
			fmt.Sprintf("hours per day %.2f must not be negative", o.HoursPerDay))
	}
	o.SubjectID = domain.CanonicalSubject(o.SubjectID)
	return s.peers.Upsert(ctx, o)
}

func (s *rosterService) ImportRoster(ctx context.Context, filePath string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"file": filePath}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "roster.import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	schema, err := importer.LoadRosterSchema(filePath)
	if err != nil {
		return nil, err
	}
	return s.importSchema(ctx, schema, fields)
}

func (s *rosterService) ImportRosterFromSchema(ctx context.Context, schema *importer.RosterSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema, map[string]any{})
}

func (s *rosterService) importSchema(ctx context.Context, schema *importer.RosterSchema, fields map[string]any) (*ImportResult, error) {
	if errs := importer.ValidateRosterSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	roster := importer.Convert(schema)
	for _, student := range roster.Students {
		if err := s.students.Create(ctx, student); err != nil {
			return nil, fmt.Errorf("importing student %s: %w", student.Name, err)
		}
	}
	for _, subject := range roster.Subjects {
		if err := s.subjects.Create(ctx, subject); err != nil {
			return nil, fmt.Errorf("importing subject %s: %w", subject.Name, err)
		}
	}
	for _, outcome := range roster.PeerOutcomes {
		if err := s.peers.Upsert(ctx, outcome); err != nil {
			return nil, fmt.Errorf("importing outcome for peer %s: %w", outcome.PeerID, err)
		}
	}

	fields["students"] = len(roster.Students)
	fields["subjects"] = len(roster.Subjects)
	fields["outcomes"] = len(roster.PeerOutcomes)
	return &ImportResult{
		StudentCount: len(roster.Students),
		SubjectCount: len(roster.Subjects),
		OutcomeCount: len(roster.PeerOutcomes),
	}, nil
}

// ensureNotEnrolled rejects a second enrollment in the same subject,
// compared by canonical name.
func (s *rosterService) ensureNotEnrolled(ctx context.Context, r *domain.SubjectRecord) error {
	existing, err := s.subjects.ListByStudent(ctx, r.StudentID)
	if err != nil {
		return err
	}
	canonical := domain.CanonicalSubject(r.Name)
	for _, e := range existing {
		if domain.CanonicalSubject(e.Name) == canonical {
			return contract.NewFieldError(contract.ErrInvalidInput, "name",
				fmt.Sprintf("student is already enrolled in %q", e.Name))
		}
	}
	return nil
}

func validateSubject(r *domain.SubjectRecord) error {
	if r.SubjectID == "" {
		return contract.NewFieldError(contract.ErrInvalidInput, "subject_id",
			"subject ID is required")
	}
	if r.StudentID == "" {
		return contract.NewFieldError(contract.ErrInvalidInput, "student_id",
			"student ID is required")
	}
	if r.Name == "" {
		return contract.NewFieldError(contract.ErrInvalidInput, "name",
			"subject name is required")
	}
	if r.Score < 0 || r.Score > 100 {
		return contract.NewFieldError(contract.ErrInvalidInput, "current_score",
			fmt.Sprintf("score %.1f must be within [0,100]", r.Score))
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return contract.NewFieldError(contract.ErrInvalidInput, "confidence",
			fmt.Sprintf("confidence %.2f must be within [0,1]", r.Confidence))
	}
	if r.CreditWeight <= 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "credit_weight",
			fmt.Sprintf("credit weight %.2f must be > 0", r.CreditWeight))
	}
	if r.Difficulty < 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "difficulty",
			fmt.Sprintf("difficulty %.1f must not be negative", r.Difficulty))
	}
	if r.DaysToExam < 0 {
		return contract.NewFieldError(contract.ErrInvalidInput, "days_remaining",
			fmt.Sprintf("days remaining %d must not be negative", r.DaysToExam))
	}
	return nil
}
