package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
)

func testOptions() ForestOptions {
	return ForestOptions{
		Trees:       30,
		MaxDepth:    6,
		MinLeaf:     2,
		FeatureFrac: 0.6,
		Seed:        42,
		MinRows:     30,
	}
}

// syntheticRows builds a training set where low scores and near exams
// demand more hours, but high stress pushes recommended hours down —
// the non-monotonic shape the ensemble exists to capture.
func syntheticRows(n int, seed int64) []TrainingRow {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]TrainingRow, n)
	stresses := []domain.StressLevel{domain.StressLow, domain.StressMedium, domain.StressHigh}

	for i := range rows {
		score := rng.Float64() * 100
		days := rng.Intn(30)
		stress := stresses[rng.Intn(3)]
		difficulty := float64(rng.Intn(5) + 1)
		urgency := StudyUrgency(score, days, 75, 60)

		hours := 1.0 + 2.5*(1-score/100) + 0.5*urgency + 0.2*difficulty
		if stress == domain.StressHigh {
			hours *= 0.5
		}

		rows[i] = TrainingRow{
			CurrentScore: score,
			DaysToExam:   float64(days),
			StudyUrgency: urgency,
			Stress:       stress,
			Difficulty:   difficulty,
			TargetHours:  hours,
		}
	}
	return rows
}

func TestTrainForest_InsufficientData(t *testing.T) {
	_, err := TrainForest(syntheticRows(10, 1), testOptions())
	require.Error(t, err)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrInsufficientData, planErr.Code)
}

func TestForest_PredictBeforeTrain(t *testing.T) {
	var f *Forest
	_, err := f.Predict(SubjectFeatures{}, domain.StressLow)
	require.Error(t, err)

	var planErr *contract.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, contract.ErrModelNotTrained, planErr.Code)
}

func TestTrainForest_DeterministicForFixedSeed(t *testing.T) {
	rows := syntheticRows(80, 2)

	f1, err := TrainForest(rows, testOptions())
	require.NoError(t, err)
	f2, err := TrainForest(rows, testOptions())
	require.NoError(t, err)

	features := SubjectFeatures{Score: 45, DaysToExam: 5, StudyUrgency: 0.05, Difficulty: 4}
	p1, err := f1.Predict(features, domain.StressMedium)
	require.NoError(t, err)
	p2, err := f2.Predict(features, domain.StressMedium)
	require.NoError(t, err)

	assert.Equal(t, p1, p2, "same rows and seed must train identical forests")
}

func TestForest_PredictNeverNegative(t *testing.T) {
	// Train on all-zero targets; the mean of leaves is 0 and the clamp
	// keeps any numeric noise out of negative territory.
	rows := syntheticRows(60, 3)
	for i := range rows {
		rows[i].TargetHours = 0
	}
	f, err := TrainForest(rows, testOptions())
	require.NoError(t, err)

	pred, err := f.Predict(SubjectFeatures{Score: 10, DaysToExam: 1, StudyUrgency: 0.6, Difficulty: 5}, domain.StressHigh)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pred, 0.0)
}

func TestForest_CapturesStressReversal(t *testing.T) {
	f, err := TrainForest(syntheticRows(300, 4), testOptions())
	require.NoError(t, err)

	features := SubjectFeatures{Score: 40, DaysToExam: 5, StudyUrgency: 0.35 * (1.0 / 6.0), Difficulty: 3}

	lowStress, err := f.Predict(features, domain.StressLow)
	require.NoError(t, err)
	highStress, err := f.Predict(features, domain.StressHigh)
	require.NoError(t, err)

	assert.Less(t, highStress, lowStress,
		"high stress must reduce recommended hours, not raise them")
}

func TestForest_ImportanceNormalized(t *testing.T) {
	f, err := TrainForest(syntheticRows(100, 5), testOptions())
	require.NoError(t, err)

	importance := f.Importance()
	require.Len(t, importance, len(FeatureNames))

	total := 0.0
	for _, v := range importance {
		assert.GreaterOrEqual(t, v, 0.0)
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Greater(t, importance["current_score"], 0.0,
		"score drives the synthetic target and must carry importance")
}

func TestEncodeDecodeForest_IdenticalPredictions(t *testing.T) {
	f, err := TrainForest(syntheticRows(80, 6), testOptions())
	require.NoError(t, err)

	blob, err := EncodeForest(f)
	require.NoError(t, err)
	restored, err := DecodeForest(blob)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	for trial := 0; trial < 50; trial++ {
		features := SubjectFeatures{
			Score:        rng.Float64() * 100,
			DaysToExam:   rng.Intn(30),
			StudyUrgency: rng.Float64(),
			Difficulty:   float64(rng.Intn(5) + 1),
		}
		stress := []domain.StressLevel{domain.StressLow, domain.StressMedium, domain.StressHigh}[rng.Intn(3)]

		want, err := f.Predict(features, stress)
		require.NoError(t, err)
		got, err := restored.Predict(features, stress)
		require.NoError(t, err)
		assert.Equal(t, want, got,
			"trial %d: a reloaded blob must predict identically", trial)
	}
}

func TestDecodeForest_RejectsUnknownFormat(t *testing.T) {
	_, err := DecodeForest([]byte(`{"format": 99, "trees": [{"root": {"leaf": true}}]}`))
	assert.Error(t, err)
}

func TestEncodeForest_UntrainedFails(t *testing.T) {
	_, err := EncodeForest(nil)
	assert.Error(t, err)
}
