package contract

import "time"

type TrainRequest struct {
	// MinRows is the minimum viable training set size. Defaults to 30.
	MinRows int
	// Seed fixes the sampling RNG so retraining is reproducible.
	Seed int64
	// Trees and MaxDepth override the configured ensemble shape when > 0.
	Trees    int
	MaxDepth int
}

func NewTrainRequest() TrainRequest {
	return TrainRequest{MinRows: 30, Seed: 42}
}

type TrainResponse struct {
	ModelVersion string
	TrainedAt    time.Time
	Rows         int
	Trees        int
	// Importance maps feature names to summed variance reduction,
	// normalized to sum to 1.
	Importance map[string]float64
}
