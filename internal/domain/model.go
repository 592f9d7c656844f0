package domain

import "time"

// ModelArtifact is one trained, serialized prediction model. Artifacts
// are immutable once saved; retraining stores a new version and readers
// pick the latest.
type ModelArtifact struct {
	Version   string
	TrainedAt time.Time
	RowCount  int
	TreeCount int
	Payload   []byte
}
