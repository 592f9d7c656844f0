package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
	"github.com/alexanderramin/studyflow/internal/engine"
	"github.com/alexanderramin/studyflow/internal/repository"
)

type trainService struct {
	peers    repository.PeerOutcomeRepo
	models   repository.ModelRepo
	cfg      *config.Config
	observer UseCaseObserver
}

// NewTrainService wires model training over the peer corpus and the
// model store.
func NewTrainService(
	peers repository.PeerOutcomeRepo,
	models repository.ModelRepo,
	cfg *config.Config,
	observers ...UseCaseObserver,
) TrainService {
	return &trainService{
		peers:    peers,
		models:   models,
		cfg:      cfg,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *trainService) Train(ctx context.Context, req contract.TrainRequest) (resp *contract.TrainResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "model.train",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	corpus, err := s.peers.LoadCorpus(ctx)
	if err != nil {
		return nil, err
	}
	rows := trainingRows(corpus, s.cfg)
	fields["rows"] = len(rows)

	opts := engine.OptionsFromConfig(s.cfg)
	if req.MinRows > 0 {
		opts.MinRows = req.MinRows
	}
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	if req.Trees > 0 {
		opts.Trees = req.Trees
	}
	if req.MaxDepth > 0 {
		opts.MaxDepth = req.MaxDepth
	}

	forest, err := engine.TrainForest(rows, opts)
	if err != nil {
		return nil, err
	}
	payload, err := engine.EncodeForest(forest)
	if err != nil {
		return nil, err
	}

	artifact := &domain.ModelArtifact{
		Version:   uuid.New().String(),
		TrainedAt: time.Now().UTC(),
		RowCount:  len(rows),
		TreeCount: opts.Trees,
		Payload:   payload,
	}
	if err := s.models.Save(ctx, artifact); err != nil {
		return nil, err
	}

	fields["model_version"] = artifact.Version
	return &contract.TrainResponse{
		ModelVersion: artifact.Version,
		TrainedAt:    artifact.TrainedAt,
		Rows:         len(rows),
		Trees:        opts.Trees,
		Importance:   forest.Importance(),
	}, nil
}

func (s *trainService) ListModels(ctx context.Context) ([]*domain.ModelArtifact, error) {
	return s.models.List(ctx)
}

// trainingRows derives (features, hours) examples from outcomes where
// the invested hours actually paid off. Non-improved outcomes carry no
// signal about effective study time and are skipped.
func trainingRows(corpus *domain.PeerCorpus, cfg *config.Config) []engine.TrainingRow {
	if corpus.Empty() {
		return nil
	}
	rows := make([]engine.TrainingRow, 0, len(corpus.Outcomes))
	for _, o := range corpus.Outcomes {
		if !o.Improved {
			continue
		}
		rows = append(rows, engine.TrainingRow{
			CurrentScore: o.Score,
			DaysToExam:   float64(o.DaysToExam),
			StudyUrgency: engine.StudyUrgency(o.Score, o.DaysToExam, cfg.TargetScore, cfg.PassingThreshold),
			Stress:       o.Stress,
			Difficulty:   o.Difficulty,
			TargetHours:  o.HoursPerDay,
		})
	}
	return rows
}
