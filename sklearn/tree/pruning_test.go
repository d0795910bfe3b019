package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// handTree builds
//
//	        0 (R=1.0)
//	      /          \
//	  1 (R=0.2)     4 (R=0.2)
//	  /     \       /     \
//	 2       3     5       6
//
// where nodes 1 and 4 have the same effective alpha.
func handTree() *Tree {
	leaf := func(id int, value, errorRate float64) Node {
		n := newLeaf(value, errorRate, 1, nil)
		n.ID = id
		return n
	}
	decision := func(id, left, right int, value, errorRate float64) Node {
		return Node{ID: id, Feature: 0, Threshold: float64(id), Left: left, Right: right, Value: value, ErrorRate: errorRate}
	}
	return &Tree{
		Nodes: []Node{
			decision(0, 1, 4, 0, 1.0),
			decision(1, 2, 3, 0, 0.2),
			leaf(2, 0, 0),
			leaf(3, 1, 0),
			decision(4, 5, 6, 1, 0.2),
			leaf(5, 1, 0),
			leaf(6, 0, 0),
		},
		FeatureNames: []string{"x"},
		Regression:   true,
	}
}

func TestSubtreeError(t *testing.T) {
	tr := handTree()
	tr.Nodes[5].ErrorRate = 0.05

	total, leaves := tr.SubtreeError(0)
	assert.InDelta(t, 0.05, total, 1e-12)
	assert.Equal(t, 4, leaves)

	total, leaves = tr.SubtreeError(4)
	assert.InDelta(t, 0.05, total, 1e-12)
	assert.Equal(t, 2, leaves)

	total, leaves = tr.SubtreeError(2)
	assert.Equal(t, 0.0, total)
	assert.Equal(t, 1, leaves)
}

func TestFindWeakest_LaterVisitedWinsTies(t *testing.T) {
	tr := handTree()

	id, alpha, ok := tr.FindWeakest()
	require.True(t, ok)
	assert.Equal(t, 4, id)
	assert.InDelta(t, 0.2, alpha, 1e-12)
	assert.InDelta(t, 1.0/3, tr.EffectiveAlpha(0), 1e-12)

	// make node 1 strictly weaker
	tr.Nodes[1].ErrorRate = 0.1
	id, _, _ = tr.FindWeakest()
	assert.Equal(t, 1, id)
}

func TestFindWeakest_ComparesBeforeClamping(t *testing.T) {
	tr := handTree()
	// node 1 sits just below zero through rounding, node 4 exactly at zero
	tr.Nodes[1].ErrorRate = 0.3
	tr.Nodes[2].ErrorRate = 0.1
	tr.Nodes[3].ErrorRate = 0.2
	tr.Nodes[4].ErrorRate = 0.5
	tr.Nodes[5].ErrorRate = 0.25
	tr.Nodes[6].ErrorRate = 0.25
	require.Less(t, tr.effectiveAlpha(1), 0.0)

	id, alpha, ok := tr.FindWeakest()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, 0.0, alpha)
	assert.Equal(t, 0.0, tr.EffectiveAlpha(1))
	assert.Equal(t, 0.0, tr.EffectiveAlpha(4))
}

func TestPrune_ByIdentity(t *testing.T) {
	tr := handTree()
	before := append([]Node(nil), tr.Nodes...)

	require.NoError(t, tr.Prune(4))

	n := tr.Node(4)
	assert.True(t, n.Leaf)
	assert.Equal(t, -1, n.Left)
	assert.Equal(t, -1, n.Right)
	assert.Equal(t, 1.0, n.Value)
	assert.Equal(t, 0.2, n.ErrorRate)
	for _, id := range []int{0, 1, 2, 3} {
		assert.Equal(t, before[id], tr.Nodes[id], "node %d changed", id)
	}

	total, leaves := tr.SubtreeError(tr.Root)
	assert.InDelta(t, 0.2, total, 1e-12)
	assert.Equal(t, 3, leaves)

	snap := tr.Snapshot()
	assert.Len(t, snap.Nodes, 5)
	assert.Equal(t, 0, snap.Root)
	assert.NoError(t, snap.Check())
	for i, n := range snap.Nodes {
		assert.Equal(t, i, n.ID)
	}

	assert.Error(t, tr.Prune(4), "pruning a leaf")
	assert.Error(t, tr.Prune(-1))
	assert.Error(t, tr.Prune(len(tr.Nodes)))
}

func TestClone_IsIndependent(t *testing.T) {
	tr := handTree()
	tr.Nodes[2].Distribution = []float64{1, 0}

	c := tr.Clone()
	require.NoError(t, c.Prune(0))
	c.Nodes[2].Distribution[0] = 0.5

	assert.False(t, tr.IsLeaf())
	assert.Equal(t, 1.0, tr.Nodes[2].Distribution[0])
}

func TestCostComplexityPruningPath_Regression(t *testing.T) {
	d := mustDataset(t, [][]float64{{1}, {2}, {3}, {4}}, []float64{1, 2, 3, 10})

	path, err := CostComplexityPruningPath(d, DefaultConfig(true))
	require.NoError(t, err)

	require.Equal(t, 4, path.Len())
	assert.Equal(t, 3, path.Steps())
	assert.InDeltaSlice(t, []float64{0, 0.125, 0.375, 12}, path.Alphas, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0.125, 0.5, 12.5}, path.TotalErrors, 1e-12)
	assert.Equal(t, []int{4, 3, 2, 1}, path.Leaves)
}

func TestCostComplexityPruningPath_Properties(t *testing.T) {
	tests := []struct {
		name       string
		seed       int64
		n          int
		regression bool
		maxDepth   int
	}{
		{"classification", 1, 120, false, 100},
		{"classification shallow", 2, 90, false, 4},
		{"regression", 3, 70, true, 100},
		{"regression shallow", 4, 50, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig(tt.regression)
			config.MaxDepth = tt.maxDepth
			d := synthetic(t, tt.n, tt.seed, tt.regression)

			path, err := CostComplexityPruningPath(d, config)
			require.NoError(t, err)

			full := grown(t, d, config)
			assert.Equal(t, 0.0, path.Alphas[0])
			assert.Equal(t, full.TotalError(), path.TotalErrors[0])
			assert.Equal(t, full.NLeaves(), path.Leaves[0])
			assert.LessOrEqual(t, path.Steps(), full.NLeaves()-1, "each pruning removes at least one leaf")
			assert.Equal(t, 1, path.Leaves[path.Len()-1])

			for i := 1; i < path.Len(); i++ {
				assert.GreaterOrEqual(t, path.Alphas[i], 0.0)
				assert.GreaterOrEqual(t, path.TotalErrors[i], path.TotalErrors[i-1]-1e-12,
					"total error decreased at step %d", i)
				assert.Less(t, path.Leaves[i], path.Leaves[i-1])
			}
		})
	}
}

func TestCostComplexityPruningPath_SingleLeaf(t *testing.T) {
	d := mustDataset(t, [][]float64{{1}, {2}}, []float64{3, 3})

	path, err := CostComplexityPruningPath(d, DefaultConfig(false))
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, path.Alphas)
	assert.Equal(t, []float64{0}, path.TotalErrors)
	assert.Equal(t, 0, path.Steps())
}

func TestCostComplexityPruningPath_InvalidInput(t *testing.T) {
	_, err := CostComplexityPruningPath(nil, DefaultConfig(false))
	requireInvalidInput(t, err)

	_, err = CostComplexityPruningPath(&Dataset{
		FeatureNames: []string{"x"},
		Columns:      [][]float64{{1, 2, 3}},
		Labels:       []float64{0, 1, 0, 1},
	}, DefaultConfig(false))
	requireInvalidInput(t, err)
}
