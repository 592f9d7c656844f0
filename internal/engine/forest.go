package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/goccy/go-json"

	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/contract"
	"github.com/alexanderramin/studyflow/internal/domain"
)

// Model feature vector layout. Order is part of the persisted format.
const (
	featCurrentScore = iota
	featDaysToExam
	featStudyUrgency
	featStressLevel
	featDifficulty
	numFeatures
)

// FeatureNames names the model features, indexed by feature position.
var FeatureNames = []string{
	"current_score",
	"days_remaining",
	"study_urgency",
	"stress_level",
	"difficulty",
}

// TrainingRow is one (features, optimal hours) example.
type TrainingRow struct {
	CurrentScore float64
	DaysToExam   float64
	StudyUrgency float64
	Stress       domain.StressLevel
	Difficulty   float64
	TargetHours  float64
}

func (r TrainingRow) vector() []float64 {
	return []float64{
		r.CurrentScore,
		r.DaysToExam,
		r.StudyUrgency,
		r.Stress.Ordinal(),
		r.Difficulty,
	}
}

// ForestOptions shapes training. Zero-valued fields fall back to the
// configured defaults via OptionsFromConfig.
type ForestOptions struct {
	Trees       int
	MaxDepth    int
	MinLeaf     int
	FeatureFrac float64
	Seed        int64
	MinRows     int
}

// OptionsFromConfig maps the configured forest shape into options.
func OptionsFromConfig(cfg *config.Config) ForestOptions {
	return ForestOptions{
		Trees:       cfg.Forest.Trees,
		MaxDepth:    cfg.Forest.MaxDepth,
		MinLeaf:     cfg.Forest.MinLeaf,
		FeatureFrac: cfg.Forest.FeatureFrac,
		Seed:        42,
		MinRows:     30,
	}
}

// Forest is a trained bootstrap-aggregated regression-tree ensemble.
// A trained forest is immutable: retraining produces a new handle and
// any number of concurrent Predict calls may share one instance.
type Forest struct {
	trees      []*regressionTree
	importance []float64
	seed       int64
}

// TrainForest fits the ensemble. Each tree sees a bootstrap sample of
// the rows and considers a random feature subset at every split, so the
// ensemble can represent non-monotonic mappings (very high stress
// lowering recommended hours). Training is deterministic for a fixed
// seed. Fails with INSUFFICIENT_DATA below opts.MinRows rows.
func TrainForest(rows []TrainingRow, opts ForestOptions) (*Forest, error) {
	minRows := opts.MinRows
	if minRows <= 0 {
		minRows = 30
	}
	if len(rows) < minRows {
		return nil, contract.NewPlanError(contract.ErrInsufficientData,
			fmt.Sprintf("training set has %d rows, need at least %d", len(rows), minRows))
	}
	if opts.Trees <= 0 || opts.MaxDepth <= 0 || opts.MinLeaf <= 0 {
		return nil, contract.NewFieldError(contract.ErrInvalidInput, "forest",
			"trees, max depth, and min leaf must all be > 0")
	}

	xs := make([][]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = r.vector()
		ys[i] = r.TargetHours
	}

	featPerNode := int(math.Ceil(opts.FeatureFrac * numFeatures))
	if featPerNode < 1 {
		featPerNode = 1
	}
	if featPerNode > numFeatures {
		featPerNode = numFeatures
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	importance := make([]float64, numFeatures)
	trees := make([]*regressionTree, 0, opts.Trees)

	for t := 0; t < opts.Trees; t++ {
		sample := make([]int, len(rows))
		for i := range sample {
			sample[i] = rng.Intn(len(rows))
		}
		grower := &treeGrower{
			xs:          xs,
			ys:          ys,
			maxDepth:    opts.MaxDepth,
			minLeaf:     opts.MinLeaf,
			featPerNode: featPerNode,
			rng:         rng,
			importance:  importance,
		}
		trees = append(trees, &regressionTree{Root: grower.grow(sample, 0)})
	}

	return &Forest{trees: trees, importance: importance, seed: opts.Seed}, nil
}

// errModelNotTrained is returned by Predict on an untrained handle.
var errModelNotTrained = contract.NewPlanError(contract.ErrModelNotTrained,
	"predict called before train: no trained model available")

// Predict returns the mean prediction of all trees, clamped at zero.
// Deterministic for a fixed trained forest.
func (f *Forest) Predict(features SubjectFeatures, stress domain.StressLevel) (float64, error) {
	if f == nil || len(f.trees) == 0 {
		return 0, errModelNotTrained
	}
	x := []float64{
		features.Score,
		float64(features.DaysToExam),
		features.StudyUrgency,
		stress.Ordinal(),
		features.Difficulty,
	}
	sum := 0.0
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return math.Max(0, sum/float64(len(f.trees))), nil
}

// Importance returns per-feature summed variance reduction, normalized
// to sum to 1 (all zeros when no split ever improved).
func (f *Forest) Importance() map[string]float64 {
	out := make(map[string]float64, numFeatures)
	if f == nil {
		return out
	}
	total := 0.0
	for _, v := range f.importance {
		total += v
	}
	for i, name := range FeatureNames {
		if total > 0 {
			out[name] = f.importance[i] / total
		} else {
			out[name] = 0
		}
	}
	return out
}

// forestBlob is the persisted layout of a trained forest. The format is
// versioned so a stored model either loads bit-compatible or is
// rejected; the same blob loaded twice yields identical predictions.
type forestBlob struct {
	Format     int               `json:"format"`
	Seed       int64             `json:"seed"`
	Importance []float64         `json:"importance"`
	Trees      []*regressionTree `json:"trees"`
}

const forestBlobFormat = 1

// EncodeForest serializes a trained forest into an opaque blob.
func EncodeForest(f *Forest) ([]byte, error) {
	if f == nil || len(f.trees) == 0 {
		return nil, errModelNotTrained
	}
	return json.Marshal(forestBlob{
		Format:     forestBlobFormat,
		Seed:       f.seed,
		Importance: f.importance,
		Trees:      f.trees,
	})
}

// DecodeForest restores a forest from an EncodeForest blob.
func DecodeForest(data []byte) (*Forest, error) {
	var blob forestBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("decoding model blob: %w", err)
	}
	if blob.Format != forestBlobFormat {
		return nil, fmt.Errorf("unsupported model blob format %d", blob.Format)
	}
	if len(blob.Trees) == 0 {
		return nil, errModelNotTrained
	}
	importance := blob.Importance
	if len(importance) != numFeatures {
		importance = make([]float64, numFeatures)
	}
	return &Forest{trees: blob.Trees, importance: importance, seed: blob.Seed}, nil
}
