package importer

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// RosterSchema is the top-level JSON structure for roster import: the
// students to plan for, their enrolled subjects, and the historical
// peer corpus the collaborative scorer learns from.
type RosterSchema struct {
	Defaults     *DefaultsImport     `json:"defaults,omitempty"`
	Students     []StudentImport     `json:"students"`
	Subjects     []SubjectImport     `json:"subjects"`
	PeerOutcomes []PeerOutcomeImport `json:"peer_outcomes,omitempty"`
}

// DefaultsImport defines roster-wide defaults that cascade to students
// and subjects.
type DefaultsImport struct {
	LearnerType   string   `json:"learner_type,omitempty"`
	StressLevel   string   `json:"stress_level,omitempty"`
	DailyCapacity *float64 `json:"daily_capacity_hours,omitempty"`
	Confidence    *float64 `json:"confidence,omitempty"`
	CreditWeight  *float64 `json:"credit_weight,omitempty"`
}

// StudentImport defines one student in the import file.
type StudentImport struct {
	Ref           string   `json:"ref"`
	Name          string   `json:"name"`
	LearnerType   string   `json:"learner_type,omitempty"`
	StressLevel   string   `json:"stress_level,omitempty"`
	DailyCapacity *float64 `json:"daily_capacity_hours,omitempty"`
}

// SubjectImport defines one enrolled subject in the import file.
// Subject identity for peer matching is the subject name, not the ref.
type SubjectImport struct {
	Ref           string    `json:"ref"`
	StudentRef    string    `json:"student_ref"`
	Name          string    `json:"name"`
	CurrentScore  float64   `json:"current_score"`
	Confidence    *float64  `json:"confidence,omitempty"`
	Difficulty    float64   `json:"difficulty"`
	CreditWeight  *float64  `json:"credit_weight,omitempty"`
	Enrichment    *bool     `json:"enrichment,omitempty"`
	DaysRemaining int       `json:"days_remaining"`
	ScoreHistory  []float64 `json:"score_history,omitempty"`
}

// PeerOutcomeImport defines one historical peer outcome. The subject
// key is the canonical subject name shared across students. The
// contextual fields feed model training.
type PeerOutcomeImport struct {
	PeerID        string   `json:"peer_id"`
	Subject       string   `json:"subject"`
	CurrentScore  float64  `json:"current_score"`
	Confidence    *float64 `json:"confidence,omitempty"`
	HoursPerDay   float64  `json:"hours_per_day"`
	Improved      bool     `json:"improved"`
	Difficulty    float64  `json:"difficulty,omitempty"`
	DaysRemaining int      `json:"days_remaining,omitempty"`
	StressLevel   string   `json:"stress_level,omitempty"`
}

// LoadRosterSchema reads and parses a roster import JSON file.
func LoadRosterSchema(path string) (*RosterSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema RosterSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}
	return &schema, nil
}
