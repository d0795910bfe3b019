package tree

import (
	"math"
	"sort"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// split is a candidate (feature, threshold) and its weighted impurity.
type split struct {
	feature   int
	threshold float64
	cost      float64
}

// splitter searches every midpoint between consecutive distinct values of
// every feature.
type splitter struct {
	data      *Dataset
	criterion Criterion
}

// bestSplit returns the candidate minimizing p_l·J(left) + p_r·J(right).
//
// Candidates are enumerated by feature column order, then ascending
// threshold, and a candidate replaces the current best when its cost is
// less than or equal to it, so the last of several equal candidates wins.
// A NoSplitAvailableError is returned when every feature is constant over
// idx.
func (s *splitter) bestSplit(idx []int) (split, error) {
	n := len(idx)
	best := split{feature: -1, cost: math.Inf(1)}

	sorted := make([]int, n)
	labels := make([]float64, n)
	for f, col := range s.data.Columns {
		copy(sorted, idx)
		sort.SliceStable(sorted, func(a, b int) bool { return col[sorted[a]] < col[sorted[b]] })
		for i, r := range sorted {
			labels[i] = s.data.Labels[r]
		}

		for k := 1; k < n; k++ {
			lo, hi := col[sorted[k-1]], col[sorted[k]]
			if lo == hi {
				continue
			}
			threshold := midpoint(lo, hi)
			// rounding can put the midpoint on hi for adjacent floats
			if !(threshold < hi) {
				continue
			}
			pl := float64(k) / float64(n)
			pr := float64(n-k) / float64(n)
			cost := pl*s.criterion.Impurity(labels[:k]) + pr*s.criterion.Impurity(labels[k:])
			if cost <= best.cost {
				best = split{feature: f, threshold: threshold, cost: cost}
			}
		}
	}

	if best.feature < 0 {
		return best, errors.NewNoSplitAvailableError(n)
	}
	return best, nil
}

// midpoint returns (lo+hi)/2, halving first when the sum overflows.
func midpoint(lo, hi float64) float64 {
	if m := (lo + hi) / 2; !math.IsInf(m, 0) {
		return m
	}
	return lo/2 + hi/2
}

// partition splits idx by x[feature] <= threshold, keeping row order.
func (s *splitter) partition(idx []int, sp split) (left, right []int) {
	col := s.data.Columns[sp.feature]
	for _, r := range idx {
		if col[r] <= sp.threshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return left, right
}
