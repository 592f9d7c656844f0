package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/studyflow/internal/domain"
)

func TestPolicyFor_KnownTypes(t *testing.T) {
	fast := PolicyFor(domain.LearnerFast)
	assert.Equal(t, 0.9, fast.EfficiencyTrim)
	assert.Equal(t, 0.05, fast.EnrichmentBoost)
	assert.Equal(t, 1.0, fast.WeakAreaWeight)

	support := PolicyFor(domain.LearnerNeedsSupport)
	assert.Equal(t, 1.25, support.WeakAreaWeight)
	assert.Equal(t, 0.3, support.VarianceSmoothing)

	inconsistent := PolicyFor(domain.LearnerInconsistent)
	assert.Equal(t, 0.4, inconsistent.VarianceSmoothing)

	balanced := PolicyFor(domain.LearnerBalanced)
	assert.Equal(t, 1.0, balanced.EfficiencyTrim)
	assert.Zero(t, balanced.VarianceSmoothing)
}

func TestPolicyFor_UnknownFallsBackToBalanced(t *testing.T) {
	got := PolicyFor(domain.LearnerType("night_owl"))
	assert.Equal(t, PolicyFor(domain.LearnerBalanced), got)
}

func TestPolicyTable_EveryPolicyHasMessage(t *testing.T) {
	for lt, p := range policyTable {
		assert.NotEmpty(t, p.Message, "learner type %s", lt)
	}
}
