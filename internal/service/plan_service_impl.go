package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
	"github.com/alexanderramin/studyflow/internal/engine"
	"github.com/alexanderramin/studyflow/internal/repository"
)

type planService struct {
	students repository.StudentRepo
	subjects repository.SubjectRepo
	peers    repository.PeerOutcomeRepo
	models   repository.ModelRepo
	cfg      *config.Config
	observer UseCaseObserver
}

// NewPlanService wires the schedule generation use case over the
// persistence layer.
func NewPlanService(
	students repository.StudentRepo,
	subjects repository.SubjectRepo,
	peers repository.PeerOutcomeRepo,
	models repository.ModelRepo,
	cfg *config.Config,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		students: students,
		subjects: subjects,
		peers:    peers,
		models:   models,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Generate(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"student_id": req.StudentID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan.generate",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if req.StudentID == "" {
		return nil, contract.NewFieldError(contract.ErrInvalidInput, "student_id",
			"student ID is required")
	}

	student, err := s.students.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, contract.NewPlanError(contract.ErrStudentNotFound,
				"no student with ID "+req.StudentID)
		}
		return nil, err
	}

	records, err := s.subjects.ListByStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, contract.NewPlanError(contract.ErrNoSubjects,
			"student "+student.DisplayID()+" has no enrolled subjects")
	}

	capacity := student.DailyCapacity
	if req.CapacityHours > 0 {
		capacity = req.CapacityHours
	}
	if capacity <= 0 {
		return nil, contract.NewFieldError(contract.ErrInvalidCapacity, "daily_capacity_hours",
			"daily capacity must be > 0 hours")
	}

	subjects := make([]domain.SubjectRecord, len(records))
	for i, r := range records {
		subjects[i] = *r
	}

	features, err := engine.BuildFeatures(subjects, s.cfg)
	if err != nil {
		return nil, err
	}

	forest, modelVersion, err := loadForest(ctx, s.models, req.ModelVersion)
	if err != nil {
		return nil, err
	}
	fields["model_version"] = modelVersion

	predicted := make(map[string]float64, len(features))
	for _, f := range features {
		hours, err := forest.Predict(f, student.Stress)
		if err != nil {
			return nil, err
		}
		predicted[f.SubjectID] = hours
	}

	corpus, err := s.peers.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	collab := s.collaborativeByID(subjects, corpus)
	content := engine.ContentScores(subjects)

	result, err := engine.BuildSchedule(engine.ScheduleInput{
		Student:        *student,
		Features:       features,
		PredictedHours: predicted,
		Collaborative:  collab,
		Content:        content,
		CapacityHours:  capacity,
		HorizonDays:    req.HorizonDays,
		Cfg:            s.cfg,
	})
	if err != nil {
		return nil, err
	}

	entries := result.Entries
	if !req.Explain {
		entries = stripReasons(entries)
	}

	fields["entries"] = len(entries)
	return &contract.PlanResponse{
		GeneratedAt:    time.Now().UTC(),
		PlanID:         uuid.New().String(),
		StudentID:      student.ID,
		LearnerType:    student.LearnerType,
		Stress:         student.Stress,
		CapacityHours:  capacity,
		CapFactor:      result.CapFactor,
		CappedHours:    result.CappedHours,
		AllocatedHours: result.AllocatedHours,
		ModelVersion:   modelVersion,
		Entries:        entries,
		PolicyMessages: result.PolicyMessages,
	}, nil
}

// collaborativeByID scores peers against canonical subject names, then
// keys the result back by stored subject ID. Peer outcomes identify
// subjects by name while enrollment rows carry opaque IDs; the
// canonical name bridges the two.
func (s *planService) collaborativeByID(
	subjects []domain.SubjectRecord,
	corpus *domain.PeerCorpus,
) map[string]float64 {
	byName := make([]domain.SubjectRecord, len(subjects))
	for i, r := range subjects {
		byName[i] = r
		byName[i].SubjectID = domain.CanonicalSubject(r.Name)
	}
	nameScores := engine.CollaborativeScores(byName, corpus, s.cfg.TopK, s.cfg.MaxPlausibleHours)

	scores := make(map[string]float64, len(subjects))
	for _, r := range subjects {
		scores[r.SubjectID] = nameScores[domain.CanonicalSubject(r.Name)]
	}
	return scores
}

func stripReasons(entries []contract.ScheduleEntry) []contract.ScheduleEntry {
	out := make([]contract.ScheduleEntry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].Reasons = nil
	}
	return out
}
