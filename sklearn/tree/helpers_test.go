package tree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }
func inf() float64 { return math.Inf(1) }

// mustDataset builds a dataset from row-major features.
func mustDataset(t *testing.T, rows [][]float64, labels []float64) *Dataset {
	t.Helper()
	cols := make([][]float64, len(rows[0]))
	for j := range cols {
		cols[j] = make([]float64, len(rows))
		for i, row := range rows {
			cols[j][i] = row[j]
		}
	}
	d, err := NewDataset(nil, cols, labels)
	require.NoError(t, err)
	return d
}

// synthetic returns a noisy two-feature problem. Feature x0 has distinct
// values so growth never stops on a constant feature.
func synthetic(t *testing.T, n int, seed int64, regression bool) *Dataset {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	labels := make([]float64, n)
	for i := range rows {
		x0 := float64(i) + rng.Float64()*0.5
		x1 := float64(rng.Intn(5))
		rows[i] = []float64{x0, x1}
		if regression {
			labels[i] = 0.3*x0 + 2*x1 + rng.NormFloat64()
			continue
		}
		class := 0.0
		if x0/float64(n)*4+x1 > 4 {
			class = 1
		}
		if x1 == 4 {
			class = 2
		}
		if rng.Float64() < 0.15 {
			class = float64(rng.Intn(3))
		}
		labels[i] = class
	}
	return mustDataset(t, rows, labels)
}

// rowsOf returns the dataset rows in FeatureNames order.
func rowsOf(d *Dataset) [][]float64 {
	rows := make([][]float64, d.NSamples())
	for i := range rows {
		rows[i] = make([]float64, d.NFeatures())
		for j, col := range d.Columns {
			rows[i][j] = col[i]
		}
	}
	return rows
}

func grown(t *testing.T, d *Dataset, config Config) *Tree {
	t.Helper()
	full, err := growFull(d, config, "test")
	require.NoError(t, err)
	return full
}
