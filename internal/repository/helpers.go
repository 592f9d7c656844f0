package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// ErrNotFound is returned when a lookup matches no row. Callers map it
// to their own error taxonomy.
var ErrNotFound = errors.New("not found")

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// encodeHistory serializes a score history for the score_history column.
func encodeHistory(history []float64) (string, error) {
	if history == nil {
		history = []float64{}
	}
	b, err := json.Marshal(history)
	if err != nil {
		return "", fmt.Errorf("encoding score history: %w", err)
	}
	return string(b), nil
}

// decodeHistory parses a score_history column value.
func decodeHistory(raw string) ([]float64, error) {
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	var history []float64
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("decoding score history: %w", err)
	}
	return history, nil
}
