package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/testutil"
)

func TestTrainService_Train_InsufficientData(t *testing.T) {
	h := newHarness(t)
	h.seedCorpus(t, "mathematics", 10)

	_, err := h.train.Train(context.Background(), contract.NewTrainRequest())

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrInsufficientData, planErr.Code)
}

func TestTrainService_Train_EmptyCorpus(t *testing.T) {
	h := newHarness(t)

	_, err := h.train.Train(context.Background(), contract.NewTrainRequest())

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrInsufficientData, planErr.Code)
}

func TestTrainService_Train_SkipsNonImprovedOutcomes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.seedCorpus(t, "mathematics", 35)
	for i := 0; i < 5; i++ {
		o := testutil.NewTestOutcome(fmt.Sprintf("slacker-%d", i), "physics", 45, 0.4, 0.1, false)
		require.NoError(t, h.peers.Upsert(ctx, o))
	}

	resp, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)
	assert.Equal(t, 35, resp.Rows)
}

func TestTrainService_Train_PersistsArtifact(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedCorpus(t, "mathematics", 40)

	resp, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ModelVersion)
	assert.Equal(t, 40, resp.Rows)
	assert.Equal(t, h.cfg.Forest.Trees, resp.Trees)

	sum := 0.0
	for _, v := range resp.Importance {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	artifact, err := h.models.GetByVersion(ctx, resp.ModelVersion)
	require.NoError(t, err)
	assert.Equal(t, 40, artifact.RowCount)
	assert.NotEmpty(t, artifact.Payload)
}

func TestTrainService_Train_RetrainKeepsHistory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedCorpus(t, "mathematics", 40)

	first, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)
	second, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ModelVersion, second.ModelVersion)

	models, err := h.train.ListModels(ctx)
	require.NoError(t, err)
	assert.Len(t, models, 2)
}

func TestTrainService_Train_RequestOverridesShape(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seedCorpus(t, "mathematics", 40)

	req := contract.NewTrainRequest()
	req.Trees = 10
	req.MaxDepth = 4
	resp, err := h.train.Train(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 10, resp.Trees)
}
