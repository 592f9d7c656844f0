package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/studyflow/internal/domain"
)

func TestMasteryScore_BlendsScoreDifficultyConfidence(t *testing.T) {
	r := domain.SubjectRecord{Score: 80, Difficulty: 3, Confidence: 0.9}
	// 0.5*0.8 + 0.3*(1/4) + 0.2*0.9
	assert.InDelta(t, 0.655, MasteryScore(r), 1e-9)
}

func TestMasteryLevelFor_Buckets(t *testing.T) {
	assert.Equal(t, domain.MasteryNone, MasteryLevelFor(0.39))
	assert.Equal(t, domain.MasteryPartial, MasteryLevelFor(0.4))
	assert.Equal(t, domain.MasteryPartial, MasteryLevelFor(0.69))
	assert.Equal(t, domain.MasteryFull, MasteryLevelFor(0.7))
}

func TestVelocityTrend_Labels(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    domain.VelocityTrend
	}{
		{"too short", []float64{80}, domain.VelocityUnknown},
		{"fast improvement", []float64{40, 50, 60, 70}, domain.VelocityFast},
		{"steady improvement", []float64{60, 63, 66, 69}, domain.VelocitySteady},
		{"stable", []float64{70, 70, 71, 70}, domain.VelocityStable},
		{"declining", []float64{80, 70, 60, 50}, domain.VelocityNeedsAttention},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VelocityTrend(tc.history))
		})
	}
}

func TestSuggestActivities_PerLevel(t *testing.T) {
	assert.Contains(t, SuggestActivities(domain.MasteryNone), "Concept review")
	assert.Contains(t, SuggestActivities(domain.MasteryPartial), "Mixed practice")
	assert.Contains(t, SuggestActivities(domain.MasteryFull), "Challenge problems")
}
