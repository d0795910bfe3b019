package tree

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
)

func outlierData(t *testing.T) *Dataset {
	return mustDataset(t, [][]float64{{1}, {2}, {3}, {4}}, []float64{1, 2, 3, 10})
}

func TestFit_IdenticalLabelsGiveSingleLeaf(t *testing.T) {
	for _, regression := range []bool{false, true} {
		d := mustDataset(t, [][]float64{{1, 9}, {2, 8}, {3, 7}}, []float64{4, 4, 4})

		m, err := Fit(d, DefaultConfig(regression))
		require.NoError(t, err)

		require.True(t, m.Tree.IsLeaf())
		root := m.Tree.Node(m.Tree.Root)
		assert.Equal(t, 4.0, root.Value)
		assert.Equal(t, 0.0, root.ErrorRate)
	}
}

func TestFit_RegularizationSelectsTree(t *testing.T) {
	rows := [][]float64{{1}, {2}, {3}, {4}}
	tests := []struct {
		name   string
		config func(*Config)
		want   []float64
		leaves int
	}{
		{"no regularization keeps exact means", nil, []float64{1, 2, 3, 10}, 4},
		{"alpha prunes the cheapest split", func(c *Config) { c.CCPAlpha = 0.2 }, []float64{1.5, 1.5, 3, 10}, 3},
		{"huge alpha never scores the root leaf", func(c *Config) { c.CCPAlpha = 1e9 }, []float64{2, 2, 2, 10}, 2},
		{"huge alpha with single leaf scoring", func(c *Config) {
			c.CCPAlpha = 1e9
			c.ScoreSingleLeaf = true
		}, []float64{4, 4, 4, 4}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig(true)
			if tt.config != nil {
				tt.config(&config)
			}
			m, err := Fit(outlierData(t), config)
			require.NoError(t, err)

			got, err := m.Predict(rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.leaves, m.Tree.NLeaves())
		})
	}
}

func TestFit_ChampionMinimizesRegularizedError(t *testing.T) {
	d := synthetic(t, 150, 11, false)
	prevLeaves := math.MaxInt

	for _, alpha := range []float64{0, 0.001, 0.005, 0.01, 0.03, 0.1} {
		config := DefaultConfig(false)
		config.CCPAlpha = alpha

		m, err := Fit(d, config)
		require.NoError(t, err)
		require.NotNil(t, m.Path)

		path, err := CostComplexityPruningPath(d, config)
		require.NoError(t, err)
		assert.Equal(t, path, m.Path)

		best := math.Inf(1)
		for i := 0; i < path.Len()-1; i++ {
			best = math.Min(best, path.TotalErrors[i]+alpha*float64(path.Leaves[i]))
		}
		total, leaves := m.Tree.SubtreeError(m.Tree.Root)
		assert.InDelta(t, best, total+alpha*float64(leaves), 1e-12, "alpha %v", alpha)

		assert.LessOrEqual(t, leaves, prevLeaves, "alpha %v grew the tree", alpha)
		prevLeaves = leaves
		assert.NoError(t, m.Tree.Check())
	}
}

func TestFit_SnapshotIsCompact(t *testing.T) {
	config := DefaultConfig(true)
	config.CCPAlpha = 0.2
	m, err := Fit(outlierData(t), config)
	require.NoError(t, err)

	assert.Len(t, m.Tree.Nodes, m.Tree.NNodes())
	assert.Equal(t, 0, m.Tree.Root)
}

func TestFit_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"negative depth", Config{MaxDepth: -1}},
		{"negative alpha", Config{MaxDepth: 3, CCPAlpha: -0.1}},
		{"NaN alpha", Config{MaxDepth: 3, CCPAlpha: math.NaN(), Regression: true}},
		{"negative min samples", Config{MaxDepth: 3, MinSamples: -2}},
		{"criterion for the other task", Config{MaxDepth: 3, Criterion: "mse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(outlierData(t), tt.config)
			var validationErr *errors.ValidationError
			assert.True(t, errors.As(err, &validationErr), "got %v", err)
		})
	}
}

func TestFit_LogsSelection(t *testing.T) {
	provider, _ := log.NewTestLoggerProvider(log.LevelDebug)
	log.SetProvider(provider)
	defer log.SetProvider(log.NewZerologProvider(os.Stderr, log.LevelWarn))

	_, err := Fit(outlierData(t), DefaultConfig(true))
	require.NoError(t, err)

	logger := provider.Logger()
	assert.True(t, logger.ContainsMessage("Full tree grown"))
	assert.True(t, logger.ContainsMessage("Tree selected"))
	assert.True(t, logger.ContainsField(log.ComponentKey, "tree.selector"))
	assert.True(t, logger.ContainsField(log.LeavesKey, 4.0))
}
