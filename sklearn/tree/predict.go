package tree

import (
	"github.com/YuminosukeSato/cartree/core/parallel"
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// rows above this count are predicted concurrently
const parallelThreshold = 1000

// leafFor walks row down from the root and returns the leaf it lands in.
func (t *Tree) leafFor(row []float64) *Node {
	n := &t.Nodes[t.Root]
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = &t.Nodes[n.Left]
		} else {
			n = &t.Nodes[n.Right]
		}
	}
	return n
}

// PredictRow returns the prediction for one row whose values follow
// FeatureNames order.
func (t *Tree) PredictRow(row []float64) float64 {
	return t.leafFor(row).Value
}

// Predict predicts every row. Each row must have one value per feature.
func (m *Model) Predict(rows [][]float64) ([]float64, error) {
	nFeatures := len(m.Tree.FeatureNames)
	for _, row := range rows {
		if len(row) != nFeatures {
			return nil, errors.NewDimensionError("Model.Predict", nFeatures, len(row), 1)
		}
	}

	out := make([]float64, len(rows))
	parallel.ParallelizeWithThreshold(len(rows), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			out[i] = m.Tree.PredictRow(rows[i])
		}
	})
	return out, nil
}

// PredictNamed predicts rows keyed by feature name. A row missing any
// feature the tree splits on fails with a SchemaError; other keys are
// ignored.
func (m *Model) PredictNamed(rows []map[string]float64) ([]float64, error) {
	used := m.Tree.UsedFeatures()
	dense := make([][]float64, len(rows))
	for i, named := range rows {
		row := make([]float64, len(m.Tree.FeatureNames))
		for _, f := range used {
			name := m.Tree.FeatureNames[f]
			v, ok := named[name]
			if !ok {
				return nil, errors.NewSchemaError(name, i)
			}
			row[f] = v
		}
		dense[i] = row
	}
	return m.Predict(dense)
}

// Label returns the class name of a classification prediction when the
// training labels were strings, and "" otherwise.
func (t *Tree) Label(value float64) string {
	i := int(value)
	if float64(i) != value || i < 0 || i >= len(t.ClassNames) {
		return ""
	}
	return t.ClassNames[i]
}
