package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/metrics"
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

const regressorName = "DecisionTreeRegressor"

var _ model.Regressor = (*DecisionTreeRegressor)(nil)
var _ model.TreeEstimator = (*DecisionTreeRegressor)(nil)

// DecisionTreeRegressor is a CART regressor with minimal cost-complexity
// pruning. Leaves predict the mean of their training labels.
type DecisionTreeRegressor struct {
	estimator
}

// NewDecisionTreeRegressor creates a regressor. Defaults: criterion "mse",
// max depth 100, min samples split 2, ccp alpha 0.
func NewDecisionTreeRegressor(opts ...Option) *DecisionTreeRegressor {
	return &DecisionTreeRegressor{estimator: newEstimator(regressorName, true, opts)}
}

// Fit grows, prunes and selects the tree for X, y.
func (r *DecisionTreeRegressor) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "DecisionTreeRegressor.Fit")
	r.config.Regression = true
	return r.fit(X, y)
}

// Predict returns the predicted value of every row as an n×1 matrix.
func (r *DecisionTreeRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	return r.predict(X)
}

// Score returns the coefficient of determination R² on X, y.
func (r *DecisionTreeRegressor) Score(X, y mat.Matrix) (float64, error) {
	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	n, _ := y.Dims()
	if m, _ := pred.Dims(); m != n {
		return 0, errors.NewDimensionError("DecisionTreeRegressor.Score", m, n, 0)
	}
	return metrics.R2Score(mat.NewVecDense(n, mat.Col(nil, 0, y)), mat.NewVecDense(n, mat.Col(nil, 0, pred)))
}

// GobEncode implements gob.GobEncoder for core/model.SaveModel.
func (r *DecisionTreeRegressor) GobEncode() ([]byte, error) { return r.gobEncode() }

// GobDecode implements gob.GobDecoder for core/model.LoadModel.
func (r *DecisionTreeRegressor) GobDecode(data []byte) error {
	return r.gobDecode(data, regressorName)
}
