// Package cartree provides CART decision trees with minimal cost-complexity
// pruning for Go, designed for backend services that train and serve small
// interpretable models.
//
// cartree offers a scikit-learn-like API, so data scientists and engineers
// familiar with DecisionTreeClassifier and ccp_alpha in Python can use the
// same vocabulary in Go.
//
// # Features
//
//   - Exhaustive threshold search with gini, entropy or mse impurity
//   - Weakest-link pruning path and model selection by ccp_alpha
//   - Prediction by column position or by feature name
//   - Structured logging (zerolog) and typed errors (cockroachdb/errors)
//   - gob and JSON persistence, pruning-path charts (gonum/plot)
//
// # Installation
//
//	go get github.com/YuminosukeSato/cartree
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/cartree/sklearn/tree"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
//	    y := mat.NewDense(4, 1, []float64{1, 2, 3, 10})
//
//	    model := tree.NewDecisionTreeRegressor(tree.WithCCPAlpha(0.2))
//	    if err := model.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    predictions, err := model.Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println("Predictions:", mat.Col(nil, 0, predictions)) // [1.5 1.5 3 10]
//	}
//
// # Packages
//
//   - sklearn/tree: Dataset, Fit, CostComplexityPruningPath and the
//     DecisionTreeClassifier / DecisionTreeRegressor estimators
//   - metrics: Evaluation metrics (accuracy, MSE, RMSE, MAE, R²)
//   - core/model: Estimator interfaces, fitted state and gob/JSON persistence
//   - core/parallel: Parallel processing utilities
//   - pkg/errors, pkg/log: Error types and structured logging
//   - cmd/cartree: Command line tool (fit, predict, evaluate, path)
//
// # Performance
//
// Batches of more than 1000 rows are predicted in parallel across CPU cores.
// Fitting is single threaded and deterministic.
package cartree
