package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyflow/internal/domain"
)

func TestConvert_MapsStudentsAndSubjects(t *testing.T) {
	schema := validSchema()
	require.Empty(t, ValidateRosterSchema(schema))

	roster := Convert(schema)
	require.Len(t, roster.Students, 1)
	require.Len(t, roster.Subjects, 2)
	require.Len(t, roster.PeerOutcomes, 1)

	dana := roster.Students[0]
	assert.NotEmpty(t, dana.ID)
	assert.Equal(t, "Dana", dana.Name)
	assert.Equal(t, domain.LearnerFast, dana.LearnerType)
	assert.Equal(t, domain.StressLow, dana.Stress)
	assert.Equal(t, 6.0, dana.DailyCapacity)
	assert.NoError(t, dana.Validate())

	for _, sub := range roster.Subjects {
		assert.NotEmpty(t, sub.SubjectID)
		assert.Equal(t, dana.ID, sub.StudentID, "subject refs must resolve to the generated student ID")
	}
}

func TestConvert_DefaultsCascade(t *testing.T) {
	schema := &RosterSchema{
		Defaults: &DefaultsImport{
			LearnerType:   "needs_support",
			StressLevel:   "high",
			DailyCapacity: floatPtr(3),
			Confidence:    floatPtr(0.7),
			CreditWeight:  floatPtr(2),
		},
		Students: []StudentImport{{Ref: "kim", Name: "Kim"}},
		Subjects: []SubjectImport{
			{Ref: "kim-bio", StudentRef: "kim", Name: "Biology", CurrentScore: 65, Difficulty: 2, DaysRemaining: 8},
		},
	}
	require.Empty(t, ValidateRosterSchema(schema))

	roster := Convert(schema)
	kim := roster.Students[0]
	assert.Equal(t, domain.LearnerNeedsSupport, kim.LearnerType)
	assert.Equal(t, domain.StressHigh, kim.Stress)
	assert.Equal(t, 3.0, kim.DailyCapacity)

	bio := roster.Subjects[0]
	assert.Equal(t, 0.7, bio.Confidence)
	assert.Equal(t, 2.0, bio.CreditWeight)
	assert.False(t, bio.Enrichment)
}

func TestConvert_HardcodedFallbacks(t *testing.T) {
	schema := &RosterSchema{
		Students: []StudentImport{{Ref: "kim", Name: "Kim"}},
		Subjects: []SubjectImport{
			{Ref: "kim-bio", StudentRef: "kim", Name: "Biology", CurrentScore: 65, Difficulty: 2, DaysRemaining: 8},
		},
	}
	roster := Convert(schema)

	assert.Equal(t, domain.LearnerBalanced, roster.Students[0].LearnerType)
	assert.Equal(t, domain.StressMedium, roster.Students[0].Stress)
	assert.Equal(t, 2.0, roster.Students[0].DailyCapacity)
	assert.Equal(t, 0.5, roster.Subjects[0].Confidence)
	assert.Equal(t, 1.0, roster.Subjects[0].CreditWeight)
}

func TestConvert_CanonicalizesPeerSubjects(t *testing.T) {
	schema := validSchema()
	schema.PeerOutcomes[0].Subject = "  Mathematics "

	roster := Convert(schema)
	require.Len(t, roster.PeerOutcomes, 1)
	assert.Equal(t, "mathematics", roster.PeerOutcomes[0].SubjectID)
}

func TestLoadRosterSchema_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	payload := `{
		"students": [{"ref": "dana", "name": "Dana", "learner_type": "balanced"}],
		"subjects": [{"ref": "dana-math", "student_ref": "dana", "name": "Math",
			"current_score": 72, "difficulty": 3, "days_remaining": 12, "score_history": [60, 66, 72]}],
		"peer_outcomes": [{"peer_id": "p1", "subject": "Math", "current_score": 70, "hours_per_day": 1.5, "improved": true}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	schema, err := LoadRosterSchema(path)
	require.NoError(t, err)
	require.Empty(t, ValidateRosterSchema(schema))

	roster := Convert(schema)
	require.Len(t, roster.Subjects, 1)
	assert.Equal(t, []float64{60, 66, 72}, roster.Subjects[0].ScoreHistory)
}

func TestLoadRosterSchema_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"students": [`), 0644))

	_, err := LoadRosterSchema(path)
	assert.Error(t, err)
}

func TestLoadRosterSchema_MissingFile(t *testing.T) {
	_, err := LoadRosterSchema(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
