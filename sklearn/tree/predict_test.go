package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// unusedFeatureModel splits only on x0; x1 is constant.
func unusedFeatureModel(t *testing.T) *Model {
	t.Helper()
	d := mustDataset(t, [][]float64{{1, 5}, {2, 5}, {3, 5}, {4, 5}}, []float64{1, 2, 3, 10})
	m, err := Fit(d, DefaultConfig(true))
	require.NoError(t, err)
	require.Equal(t, []int{0}, m.Tree.UsedFeatures())
	return m
}

func TestPredictNamed(t *testing.T) {
	m := unusedFeatureModel(t)

	t.Run("extra and unused keys are ignored", func(t *testing.T) {
		got, err := m.PredictNamed([]map[string]float64{
			{"x0": 1},
			{"x0": 4, "x1": -100, "other": 3},
		})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 10}, got)
	})

	t.Run("missing used feature reports name and row", func(t *testing.T) {
		_, err := m.PredictNamed([]map[string]float64{
			{"x0": 1},
			{"x0": 2},
			{"x1": 5},
		})
		var schemaErr *errors.SchemaError
		require.True(t, errors.As(err, &schemaErr), "got %v", err)
		assert.Equal(t, "x0", schemaErr.Feature)
		assert.Equal(t, 2, schemaErr.Row)
	})

	t.Run("no rows", func(t *testing.T) {
		got, err := m.PredictNamed(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestPredict_WrongWidth(t *testing.T) {
	m := unusedFeatureModel(t)

	_, err := m.Predict([][]float64{{1, 5}, {2}})
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr), "got %v", err)
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)
}

func TestPredict_LargeBatchMatchesRowByRow(t *testing.T) {
	d := synthetic(t, 200, 5, true)
	m, err := Fit(d, DefaultConfig(true))
	require.NoError(t, err)

	base := rowsOf(d)
	var rows [][]float64
	for len(rows) <= 3*parallelThreshold {
		rows = append(rows, base...)
	}

	got, err := m.Predict(rows)
	require.NoError(t, err)
	require.Len(t, got, len(rows))
	for i, row := range rows {
		assert.Equal(t, m.Tree.PredictRow(row), got[i], "row %d", i)
	}
}

func TestPredict_LeafValuesOnTrainingData(t *testing.T) {
	d := synthetic(t, 120, 9, false)
	m, err := Fit(d, DefaultConfig(false))
	require.NoError(t, err)

	got, err := m.Predict(rowsOf(d))
	require.NoError(t, err)
	for i, v := range got {
		assert.Contains(t, m.Tree.Classes, v, "row %d predicted an unseen class", i)
	}
}

func TestTree_Label(t *testing.T) {
	prev := errors.SetWarningHandler(func(error) {})
	defer errors.SetWarningHandler(prev)

	d, err := FromRecords(
		[]string{"x", "species"},
		[][]string{{"1", "setosa"}, {"2", "setosa"}, {"3", "virginica"}, {"4", "virginica"}},
		"species", false,
	)
	require.NoError(t, err)
	m, err := Fit(d, DefaultConfig(false))
	require.NoError(t, err)

	got, err := m.Predict([][]float64{{1}, {4}})
	require.NoError(t, err)
	assert.Equal(t, "setosa", m.Tree.Label(got[0]))
	assert.Equal(t, "virginica", m.Tree.Label(got[1]))

	assert.Equal(t, "", m.Tree.Label(0.5))
	assert.Equal(t, "", m.Tree.Label(2))
	assert.Equal(t, "", m.Tree.Label(-1))

	numeric := unusedFeatureModel(t)
	assert.Equal(t, "", numeric.Tree.Label(1))
}
