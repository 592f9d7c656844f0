package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/studyflow/internal/domain"
)

func TestContentScores_HardestHighestWeightScoresOne(t *testing.T) {
	records := []domain.SubjectRecord{
		{SubjectID: "math", Difficulty: 5, CreditWeight: 6},
		{SubjectID: "art", Difficulty: 2, CreditWeight: 3},
	}

	scores := ContentScores(records)
	assert.InDelta(t, 1.0, scores["math"], 1e-9,
		"subject with max difficulty and max weight scores 1.0")
	assert.InDelta(t, 0.5*(2.0/5)+0.5*(3.0/6), scores["art"], 1e-9)
}

// TestContentScores_ColdStartCoverage property-tests the cold-start
// guarantee: the score is positive whenever difficulty > 0 or
// credit_weight > 0, independent of any peer or model state.
func TestContentScores_ColdStartCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 300; trial++ {
		n := rng.Intn(6) + 1
		records := make([]domain.SubjectRecord, n)
		for i := range records {
			records[i] = domain.SubjectRecord{
				SubjectID:    "s-" + string(rune('a'+i)),
				Difficulty:   float64(rng.Intn(6)),
				CreditWeight: rng.Float64() * 6,
			}
		}

		scores := ContentScores(records)
		for _, r := range records {
			assert.GreaterOrEqual(t, scores[r.SubjectID], 0.0)
			assert.LessOrEqual(t, scores[r.SubjectID], 1.0)
			if r.Difficulty > 0 || r.CreditWeight > 0 {
				assert.Greater(t, scores[r.SubjectID], 0.0,
					"trial %d subject %s: positive attributes must yield a positive score", trial, r.SubjectID)
			}
		}
	}
}

func TestContentScores_AllZeroAttributes(t *testing.T) {
	records := []domain.SubjectRecord{{SubjectID: "x"}}
	scores := ContentScores(records)
	assert.Zero(t, scores["x"])
}

func TestContentScores_SingleSubjectDifficultyOnly(t *testing.T) {
	records := []domain.SubjectRecord{{SubjectID: "x", Difficulty: 1}}
	scores := ContentScores(records)
	assert.InDelta(t, 0.5, scores["x"], 1e-9)
}
