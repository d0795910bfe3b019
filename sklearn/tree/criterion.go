package tree

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// Criterion scores the label heterogeneity of a sample set and gives the
// value a leaf over that set predicts. Impurity is non-negative and lower is
// purer.
type Criterion interface {
	Name() string
	Impurity(labels []float64) float64
	LeafValue(labels []float64) float64
}

// Gini impurity 1 - Σ p_c² over the class proportions.
type Gini struct{}

func (Gini) Name() string { return "gini" }

func (Gini) Impurity(labels []float64) float64 {
	if len(labels) == 0 {
		return 0
	}
	_, counts := classCounts(labels)
	n := float64(len(labels))
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / n
		sum += p * p
	}
	return 1 - sum
}

func (Gini) LeafValue(labels []float64) float64 { return mode(labels) }

// Entropy is the Shannon entropy in bits of the class proportions.
type Entropy struct{}

func (Entropy) Name() string { return "entropy" }

func (Entropy) Impurity(labels []float64) float64 {
	if len(labels) == 0 {
		return 0
	}
	_, counts := classCounts(labels)
	n := float64(len(labels))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

func (Entropy) LeafValue(labels []float64) float64 { return mode(labels) }

// MSE is the mean squared deviation of the labels from their mean.
type MSE struct{}

func (MSE) Name() string { return "mse" }

func (MSE) Impurity(labels []float64) float64 {
	if len(labels) == 0 {
		return 0
	}
	m := stat.Mean(labels, nil)
	sum := 0.0
	for _, v := range labels {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(labels))
}

func (MSE) LeafValue(labels []float64) float64 { return stat.Mean(labels, nil) }

// criterionByName resolves a criterion name for the given task.
func criterionByName(name string, regression bool) (Criterion, error) {
	switch {
	case regression && (name == "mse" || name == "squared_error"):
		return MSE{}, nil
	case !regression && name == "gini":
		return Gini{}, nil
	case !regression && name == "entropy":
		return Entropy{}, nil
	}
	if regression {
		return nil, errors.NewValidationError("criterion", "regression supports only 'mse'", name)
	}
	return nil, errors.NewValidationError("criterion", "classification supports 'gini' or 'entropy'", name)
}

// classCounts returns the distinct class values in ascending order with
// their counts.
func classCounts(labels []float64) ([]float64, []int) {
	counts := make(map[float64]int)
	for _, v := range labels {
		counts[v]++
	}
	classes := make([]float64, 0, len(counts))
	for v := range counts {
		classes = append(classes, v)
	}
	sort.Float64s(classes)
	out := make([]int, len(classes))
	for i, v := range classes {
		out[i] = counts[v]
	}
	return classes, out
}

// mode returns the most frequent label. Ties go to the lowest class value.
func mode(labels []float64) float64 {
	classes, counts := classCounts(labels)
	best := 0
	for i := 1; i < len(counts); i++ {
		if counts[i] > counts[best] {
			best = i
		}
	}
	return classes[best]
}

// isPure reports whether every label is identical.
func isPure(labels []float64) bool {
	for _, v := range labels[1:] {
		if v != labels[0] {
			return false
		}
	}
	return true
}
