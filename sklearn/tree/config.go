package tree

import (
	"math"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// Config controls growth, pruning and model selection for one fit call.
type Config struct {
	// MaxDepth bounds recursion. A node at depth MaxDepth becomes a leaf.
	MaxDepth int
	// MinSamples is the smallest sample count that may still be split.
	// Nodes with fewer samples become leaves.
	MinSamples int
	// CCPAlpha weighs the leaf count in the regularized error
	// R(T) + CCPAlpha·|leaves(T)| minimized by model selection.
	CCPAlpha float64
	// Regression selects MSE with mean leaves instead of class impurity
	// with mode leaves.
	Regression bool
	// Criterion is "gini" or "entropy" for classification and "mse" for
	// regression. Empty means the default of the task.
	Criterion string
	// ScoreSingleLeaf lets model selection also score the tree once it has
	// been pruned down to its root. By default that final state is never
	// scored, so a single leaf is only chosen when growth produced one.
	ScoreSingleLeaf bool
}

// DefaultConfig returns the defaults: depth 100, two samples to split, no
// regularization.
func DefaultConfig(regression bool) Config {
	c := Config{
		MaxDepth:   100,
		MinSamples: 2,
		Regression: regression,
	}
	c.Criterion = c.criterionName()
	return c
}

func (c Config) criterionName() string {
	if c.Criterion != "" {
		return c.Criterion
	}
	if c.Regression {
		return "mse"
	}
	return "gini"
}

// Validate rejects negative bounds and criteria that do not match the task.
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return errors.NewValidationError("max_depth", "must be non-negative", c.MaxDepth)
	}
	if c.MinSamples < 0 {
		return errors.NewValidationError("min_samples_split", "must be non-negative", c.MinSamples)
	}
	if c.CCPAlpha < 0 || math.IsNaN(c.CCPAlpha) {
		return errors.NewValidationError("ccp_alpha", "must be a non-negative number", c.CCPAlpha)
	}
	_, err := c.criterion()
	return err
}

func (c Config) criterion() (Criterion, error) {
	return criterionByName(c.criterionName(), c.Regression)
}
