package engine

import (
	"math"
	"math/rand"
	"sort"
)

// treeNode is one node of a regression tree. Leaves carry the mean
// target of the samples that reached them.
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Value     float64   `json:"value,omitempty"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
}

type regressionTree struct {
	Root *treeNode `json:"root"`
}

// treeGrower holds shared state while growing a single tree.
type treeGrower struct {
	xs          [][]float64
	ys          []float64
	maxDepth    int
	minLeaf     int
	featPerNode int
	rng         *rand.Rand
	// importance accumulates weighted variance reduction per feature,
	// shared across all trees of the forest.
	importance []float64
}

func (g *treeGrower) grow(idx []int, depth int) *treeNode {
	if depth >= g.maxDepth || len(idx) < 2*g.minLeaf {
		return &treeNode{Leaf: true, Value: meanTarget(g.ys, idx)}
	}

	feature, threshold, gain, ok := g.bestSplit(idx)
	if !ok {
		return &treeNode{Leaf: true, Value: meanTarget(g.ys, idx)}
	}
	g.importance[feature] += gain

	var left, right []int
	for _, i := range idx {
		if g.xs[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

// bestSplit scans a random feature subset for the split with the
// largest sum-of-squared-error reduction.
func (g *treeGrower) bestSplit(idx []int) (feature int, threshold, gain float64, ok bool) {
	parentSSE := sseTarget(g.ys, idx)
	bestGain := 0.0

	for _, f := range g.sampleFeatures() {
		values := make([]float64, 0, len(idx))
		for _, i := range idx {
			values = append(values, g.xs[i][f])
		}
		sort.Float64s(values)

		for v := 1; v < len(values); v++ {
			if values[v] == values[v-1] {
				continue
			}
			th := (values[v] + values[v-1]) / 2

			var left, right []int
			for _, i := range idx {
				if g.xs[i][f] <= th {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) < g.minLeaf || len(right) < g.minLeaf {
				continue
			}

			split := sseTarget(g.ys, left) + sseTarget(g.ys, right)
			if improvement := parentSSE - split; improvement > bestGain {
				bestGain = improvement
				feature = f
				threshold = th
				ok = true
			}
		}
	}
	return feature, threshold, bestGain, ok
}

// sampleFeatures draws the per-split random feature subset, sorted for
// deterministic iteration.
func (g *treeGrower) sampleFeatures() []int {
	total := len(g.xs[0])
	perm := g.rng.Perm(total)
	picked := perm[:g.featPerNode]
	sort.Ints(picked)
	return picked
}

func (t *regressionTree) predict(x []float64) float64 {
	node := t.Root
	for node != nil && !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	if node == nil {
		return 0
	}
	return node.Value
}

func meanTarget(ys []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += ys[i]
	}
	return sum / float64(len(idx))
}

func sseTarget(ys []float64, idx []int) float64 {
	m := meanTarget(ys, idx)
	sse := 0.0
	for _, i := range idx {
		d := ys[i] - m
		sse += d * d
	}
	return sse
}

// clamp01 confines v to [0,1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
