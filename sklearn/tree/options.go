package tree

// Option configures a DecisionTreeClassifier or DecisionTreeRegressor.
type Option func(*estimator)

// WithCriterion sets the impurity criterion ("gini", "entropy" or "mse").
func WithCriterion(criterion string) Option {
	return func(e *estimator) {
		e.config.Criterion = criterion
	}
}

// WithMaxDepth sets the maximum depth of the grown tree.
func WithMaxDepth(depth int) Option {
	return func(e *estimator) {
		e.config.MaxDepth = depth
	}
}

// WithMinSamplesSplit sets the minimum number of samples a node needs to be split.
func WithMinSamplesSplit(n int) Option {
	return func(e *estimator) {
		e.config.MinSamples = n
	}
}

// WithCCPAlpha sets the cost-complexity regularization strength.
func WithCCPAlpha(alpha float64) Option {
	return func(e *estimator) {
		e.config.CCPAlpha = alpha
	}
}

// WithScoreSingleLeaf makes model selection also score the fully pruned tree.
func WithScoreSingleLeaf(score bool) Option {
	return func(e *estimator) {
		e.config.ScoreSingleLeaf = score
	}
}

// WithFeatureNames names the columns of X. Names appear in exported trees and
// are the keys PredictNamed looks up.
func WithFeatureNames(names ...string) Option {
	return func(e *estimator) {
		e.featureNames = names
	}
}
