package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyflow/internal/contract"
)

func TestPlanService_Generate_RequiresStudentID(t *testing.T) {
	h := newHarness(t)

	_, err := h.plan.Generate(context.Background(), contract.PlanRequest{})

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrInvalidInput, planErr.Code)
	assert.Equal(t, "student_id", planErr.Field)
}

func TestPlanService_Generate_StudentNotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.plan.Generate(context.Background(), contract.NewPlanRequest("missing"))

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrStudentNotFound, planErr.Code)
}

func TestPlanService_Generate_NoSubjects(t *testing.T) {
	h := newHarness(t)
	student := h.seedStudent(t)

	_, err := h.plan.Generate(context.Background(), contract.NewPlanRequest(student.ID))

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrNoSubjects, planErr.Code)
}

func TestPlanService_Generate_ModelNotTrained(t *testing.T) {
	h := newHarness(t)
	student := h.seedStudent(t, "Mathematics")

	_, err := h.plan.Generate(context.Background(), contract.NewPlanRequest(student.ID))

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrModelNotTrained, planErr.Code)
}

func TestPlanService_Generate_UnknownModelVersion(t *testing.T) {
	h := newHarness(t)
	student := h.seedStudent(t, "Mathematics")
	h.seedCorpus(t, "mathematics", 40)
	_, err := h.train.Train(context.Background(), contract.NewTrainRequest())
	require.NoError(t, err)

	req := contract.NewPlanRequest(student.ID)
	req.ModelVersion = "no-such-version"
	_, err = h.plan.Generate(context.Background(), req)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrModelNotTrained, planErr.Code)
}

func TestPlanService_Generate_FullPipeline(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	student := h.seedStudent(t, "Mathematics", "Physics")
	h.seedCorpus(t, "mathematics", 40)
	h.seedCorpus(t, "physics", 10)

	trained, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)

	resp, err := h.plan.Generate(ctx, contract.NewPlanRequest(student.ID))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.PlanID)
	assert.Equal(t, student.ID, resp.StudentID)
	assert.Equal(t, trained.ModelVersion, resp.ModelVersion)
	assert.Equal(t, student.DailyCapacity, resp.CapacityHours)
	assert.InDelta(t, h.cfg.Caps.Medium, resp.CapFactor, 1e-9)
	assert.LessOrEqual(t, resp.AllocatedHours, resp.CappedHours+1e-9)
	require.NotEmpty(t, resp.Entries)

	// Study entries carry contiguous ranks and component scores.
	rank := 0
	for _, e := range resp.Entries {
		if e.Kind != contract.EntryStudy {
			continue
		}
		rank++
		assert.Equal(t, rank, e.Rank)
		assert.GreaterOrEqual(t, e.Scores.MLPredictedHours, 0.0)
		assert.NotEmpty(t, e.Reasons)
	}
	assert.Equal(t, 2, rank)
}

func TestPlanService_Generate_PeerSignalFlowsThroughNames(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	// Enrollment stores subjects under opaque IDs; peer outcomes are
	// keyed by canonical name. The peer signal must still land.
	student := h.seedStudent(t, "Mathematics")
	h.seedCorpus(t, "mathematics", 40)
	_, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)

	resp, err := h.plan.Generate(ctx, contract.NewPlanRequest(student.ID))
	require.NoError(t, err)

	require.Len(t, resp.Entries, 1)
	assert.Greater(t, resp.Entries[0].Scores.Collaborative, 0.0)
}

func TestPlanService_Generate_ColdStartSubjectScoresZeroCollaborative(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	student := h.seedStudent(t, "Mathematics", "Ancient Greek")
	h.seedCorpus(t, "mathematics", 40)
	_, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)

	resp, err := h.plan.Generate(ctx, contract.NewPlanRequest(student.ID))
	require.NoError(t, err)

	byName := make(map[string]float64)
	for _, e := range resp.Entries {
		if e.Kind == contract.EntryStudy {
			byName[e.SubjectName] = e.Scores.Collaborative
		}
	}
	assert.Greater(t, byName["Mathematics"], 0.0)
	assert.Zero(t, byName["Ancient Greek"])
}

func TestPlanService_Generate_CapacityOverride(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	student := h.seedStudent(t, "Mathematics")
	h.seedCorpus(t, "mathematics", 40)
	_, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)

	req := contract.NewPlanRequest(student.ID)
	req.CapacityHours = 5
	resp, err := h.plan.Generate(ctx, req)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, resp.CapacityHours, 1e-9)
	assert.InDelta(t, 5.0*h.cfg.Caps.Medium, resp.CappedHours, 1e-9)
}

func TestPlanService_Generate_ExplainFalseStripsReasons(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	student := h.seedStudent(t, "Mathematics")
	h.seedCorpus(t, "mathematics", 40)
	_, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)

	req := contract.NewPlanRequest(student.ID)
	req.Explain = false
	resp, err := h.plan.Generate(ctx, req)
	require.NoError(t, err)

	for _, e := range resp.Entries {
		assert.Nil(t, e.Reasons)
	}
}

func TestPlanService_Generate_PinnedModelVersion(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	student := h.seedStudent(t, "Mathematics")
	h.seedCorpus(t, "mathematics", 40)

	first, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)
	second, err := h.train.Train(ctx, contract.NewTrainRequest())
	require.NoError(t, err)
	require.NotEqual(t, first.ModelVersion, second.ModelVersion)

	req := contract.NewPlanRequest(student.ID)
	req.ModelVersion = first.ModelVersion
	resp, err := h.plan.Generate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ModelVersion, resp.ModelVersion)

	resp, err = h.plan.Generate(ctx, contract.NewPlanRequest(student.ID))
	require.NoError(t, err)
	assert.Equal(t, second.ModelVersion, resp.ModelVersion)
}
