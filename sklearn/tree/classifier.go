package tree

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/metrics"
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

const classifierName = "DecisionTreeClassifier"

var _ model.Classifier = (*DecisionTreeClassifier)(nil)
var _ model.TreeEstimator = (*DecisionTreeClassifier)(nil)

// DecisionTreeClassifier is a CART classifier with minimal cost-complexity
// pruning. Labels are class values in a single column; leaves predict the
// most frequent class, the lowest class value on ties.
type DecisionTreeClassifier struct {
	estimator
}

// NewDecisionTreeClassifier creates a classifier. Defaults: criterion
// "gini", max depth 100, min samples split 2, ccp alpha 0.
func NewDecisionTreeClassifier(opts ...Option) *DecisionTreeClassifier {
	return &DecisionTreeClassifier{estimator: newEstimator(classifierName, false, opts)}
}

// Fit grows, prunes and selects the tree for X, y.
func (c *DecisionTreeClassifier) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "DecisionTreeClassifier.Fit")
	c.config.Regression = false
	return c.fit(X, y)
}

// Predict returns the predicted class of every row as an n×1 matrix.
func (c *DecisionTreeClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	return c.predict(X)
}

// PredictProba returns the class distribution of the leaf each row lands in.
// Columns follow Classes().
func (c *DecisionTreeClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	rows, err := c.rows(X, "PredictProba")
	if err != nil {
		return nil, err
	}
	t := c.fitted.Tree
	proba := mat.NewDense(len(rows), len(t.Classes), nil)
	for i, row := range rows {
		proba.SetRow(i, t.leafFor(row).Distribution)
	}
	return proba, nil
}

// Score returns the accuracy on X, y.
func (c *DecisionTreeClassifier) Score(X, y mat.Matrix) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// Classes returns the class values seen during Fit in ascending order.
func (c *DecisionTreeClassifier) Classes() []float64 {
	if t := c.Tree(); t != nil {
		return append([]float64(nil), t.Classes...)
	}
	return nil
}

// NClasses returns the number of classes seen during Fit.
func (c *DecisionTreeClassifier) NClasses() int {
	return len(c.Classes())
}

// GobEncode implements gob.GobEncoder for core/model.SaveModel.
func (c *DecisionTreeClassifier) GobEncode() ([]byte, error) { return c.gobEncode() }

// GobDecode implements gob.GobDecoder for core/model.LoadModel.
func (c *DecisionTreeClassifier) GobDecode(data []byte) error {
	return c.gobDecode(data, classifierName)
}
