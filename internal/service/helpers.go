package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
	"github.com/alexanderramin/studyflow/internal/engine"
	"github.com/alexanderramin/studyflow/internal/repository"
)

// loadForest fetches and decodes a stored model. An empty version loads
// the latest artifact. A missing artifact surfaces as MODEL_NOT_TRAINED.
func loadForest(ctx context.Context, models repository.ModelRepo, version string) (*engine.Forest, string, error) {
	artifact, err := fetchArtifact(ctx, models, version)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", contract.NewPlanError(contract.ErrModelNotTrained,
				"no trained model available, run train first")
		}
		return nil, "", err
	}

	forest, err := engine.DecodeForest(artifact.Payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding model %s: %w", artifact.Version, err)
	}
	return forest, artifact.Version, nil
}

func fetchArtifact(ctx context.Context, models repository.ModelRepo, version string) (*domain.ModelArtifact, error) {
	if version == "" {
		return models.Latest(ctx)
	}
	return models.GetByVersion(ctx, version)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("roster validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
