package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

func TestCriterionImpurity(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		labels    []float64
		want      float64
	}{
		{"gini pure", Gini{}, []float64{1, 1, 1}, 0},
		{"gini balanced binary", Gini{}, []float64{0, 0, 1, 1}, 0.5},
		{"gini three classes", Gini{}, []float64{0, 1, 2}, 1 - 3.0/9},
		{"entropy pure", Entropy{}, []float64{4, 4}, 0},
		{"entropy balanced binary", Entropy{}, []float64{0, 1, 0, 1}, 1},
		{"entropy four classes", Entropy{}, []float64{0, 1, 2, 3}, 2},
		{"mse constant", MSE{}, []float64{3, 3, 3}, 0},
		{"mse", MSE{}, []float64{1, 2, 3, 10}, 12.5},
		{"empty", Gini{}, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.criterion.Impurity(tt.labels)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestCriterionLeafValue(t *testing.T) {
	tests := []struct {
		name      string
		criterion Criterion
		labels    []float64
		want      float64
	}{
		{"mode majority", Gini{}, []float64{2, 1, 2}, 2},
		{"mode tie picks lowest class", Gini{}, []float64{2, 1, 2, 1}, 1},
		{"mode tie independent of order", Entropy{}, []float64{5, 5, 3, 3, 9}, 3},
		{"mean", MSE{}, []float64{1, 2, 3, 10}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criterion.LeafValue(tt.labels))
		})
	}
}

func TestCriterionByName(t *testing.T) {
	tests := []struct {
		name       string
		regression bool
		want       string
		wantErr    bool
	}{
		{"gini", false, "gini", false},
		{"entropy", false, "entropy", false},
		{"mse", true, "mse", false},
		{"squared_error", true, "mse", false},
		{"mse", false, "", true},
		{"gini", true, "", true},
		{"log_loss", false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := criterionByName(tt.name, tt.regression)
			if tt.wantErr {
				var validationErr *errors.ValidationError
				assert.True(t, errors.As(err, &validationErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}
}

func TestClassCounts(t *testing.T) {
	classes, counts := classCounts([]float64{3, 1, 3, 2, 3})
	assert.Equal(t, []float64{1, 2, 3}, classes)
	assert.Equal(t, []int{1, 1, 3}, counts)

	assert.True(t, isPure([]float64{7}))
	assert.False(t, isPure([]float64{7, 7, math.Nextafter(7, 8)}))
}
