// Package log defines standard attribute keys for tree training and inference.
//
// The keys follow a hierarchical naming convention (e.g. "model.name",
// "data.samples", "tree.depth") so log lines from different estimators can be
// filtered and aggregated the same way.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "DecisionTreeClassifier", "DecisionTreeRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "pruning_path"
	OperationKey = "ml.operation"

	// ComponentKey identifies which component is logging.
	// Examples: "tree.builder", "tree.pruner", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// ClassesKey indicates the number of distinct classes seen by a classifier.
	ClassesKey = "data.classes"

	// SourceKey names where the data was read from (file path, "stdin").
	SourceKey = "data.source"
)

// Tree structure and pruning
const (
	// DepthKey is the depth of a grown or selected tree.
	DepthKey = "tree.depth"

	// LeavesKey is the number of leaves of a grown or selected tree.
	LeavesKey = "tree.leaves"

	// NodesKey is the number of reachable nodes in a tree.
	NodesKey = "tree.nodes"

	// AlphaKey is a cost-complexity regularization strength.
	AlphaKey = "pruning.alpha"

	// StepsKey is the number of weakest-link prunings performed.
	StepsKey = "pruning.steps"

	// TotalErrorKey is the summed leaf error rate of a tree.
	TotalErrorKey = "pruning.total_error"

	// CriterionKey is the impurity criterion in use ("gini", "entropy", "mse").
	CriterionKey = "tree.criterion"
)

// Performance Metrics
const (
	// DurationMsKey records operation duration in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy.
	AccuracyKey = "metrics.accuracy"

	// R2ScoreKey records the coefficient of determination for regression.
	R2ScoreKey = "metrics.r2_score"

	// PredsKey records the number of predictions produced.
	PredsKey = "preds.count"
)

// Error Context
const (
	// ErrorTypeKey identifies the Go type of the error.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains the stack trace extracted from cockroachdb/errors.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute value constants for common operations.
const (
	OperationFit         = "fit"
	OperationPredict     = "predict"
	OperationScore       = "score"
	OperationPruningPath = "pruning_path"

	PhaseTraining  = "training"
	PhaseInference = "inference"
)
