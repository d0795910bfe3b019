package tree

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
)

// estimator holds what DecisionTreeClassifier and DecisionTreeRegressor
// share: configuration, fitted state and the selected tree.
type estimator struct {
	name         string
	config       Config
	featureNames []string

	state  *model.StateManager
	fitted *Model
}

func newEstimator(name string, regression bool, opts []Option) estimator {
	e := estimator{
		name:   name,
		config: DefaultConfig(regression),
		state:  model.NewStateManager(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func (e *estimator) fit(X, y mat.Matrix) error {
	logger := log.GetLoggerWithName("tree.estimator").With(log.ModelNameKey, e.name)
	start := time.Now()

	data, err := FromMatrix(X, y, e.featureNames)
	if err != nil {
		return err
	}
	m, err := Fit(data, e.config)
	if err != nil {
		return err
	}

	e.fitted = m
	e.state.SetFitted(data.NFeatures(), data.NSamples())
	logger.Info("Training completed",
		log.OperationKey, log.OperationFit,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, data.NSamples(),
		log.FeaturesKey, data.NFeatures(),
		log.LeavesKey, m.Tree.NLeaves(),
		log.DepthKey, m.Tree.Depth(),
		log.DurationMsKey, time.Since(start),
	)
	return nil
}

// rows checks the fitted state and the width of X and returns its rows.
func (e *estimator) rows(X mat.Matrix, method string) ([][]float64, error) {
	if err := e.state.RequireFitted(e.name, method); err != nil {
		return nil, err
	}
	r, c := X.Dims()
	if err := e.state.RequireFeatures(e.name+"."+method, c); err != nil {
		return nil, err
	}
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows, nil
}

func (e *estimator) predict(X mat.Matrix) (mat.Matrix, error) {
	rows, err := e.rows(X, "Predict")
	if err != nil {
		return nil, err
	}
	preds, err := e.fitted.Predict(rows)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(preds), 1, preds), nil
}

// PredictNamed predicts rows keyed by feature name.
func (e *estimator) PredictNamed(rows []map[string]float64) ([]float64, error) {
	if err := e.state.RequireFitted(e.name, "PredictNamed"); err != nil {
		return nil, err
	}
	return e.fitted.PredictNamed(rows)
}

// CostComplexityPruningPath returns the pruning path of the full tree grown
// on X, y with the estimator's configuration. It does not fit the estimator.
func (e *estimator) CostComplexityPruningPath(X, y mat.Matrix) (*PruningPath, error) {
	data, err := FromMatrix(X, y, e.featureNames)
	if err != nil {
		return nil, err
	}
	return CostComplexityPruningPath(data, e.config)
}

// IsFitted reports whether Fit has succeeded.
func (e *estimator) IsFitted() bool { return e.state.IsFitted() }

// Tree returns the selected tree, or nil before Fit.
func (e *estimator) Tree() *Tree {
	if e.fitted == nil {
		return nil
	}
	return e.fitted.Tree
}

// Model returns the fitted model, or nil before Fit.
func (e *estimator) Model() *Model { return e.fitted }

// GetDepth returns the depth of the selected tree, 0 before Fit.
func (e *estimator) GetDepth() int {
	if t := e.Tree(); t != nil {
		return t.Depth()
	}
	return 0
}

// GetNLeaves returns the leaf count of the selected tree, 0 before Fit.
func (e *estimator) GetNLeaves() int {
	if t := e.Tree(); t != nil {
		return t.NLeaves()
	}
	return 0
}

// GetFeatureImportances returns the impurity decrease credited to each
// feature, normalized to sum to 1. A decision node t on feature f adds
// ErrorRate(t) - ErrorRate(left) - ErrorRate(right) to f. A tree with no
// decision node yields all zeros.
func (e *estimator) GetFeatureImportances() []float64 {
	t := e.Tree()
	if t == nil {
		return nil
	}
	imp := make([]float64, len(t.FeatureNames))
	t.walk(t.Root, func(id, _ int) {
		n := &t.Nodes[id]
		if n.Leaf {
			return
		}
		imp[n.Feature] += n.ErrorRate - t.Nodes[n.Left].ErrorRate - t.Nodes[n.Right].ErrorRate
	})
	if sum := floats.Sum(imp); sum > 0 {
		floats.Scale(1/sum, imp)
	} else {
		errors.Warn(errors.NewUndefinedMetricWarning("feature_importances", "tree has no impurity decrease", 0))
	}
	return imp
}

// GetParams returns the hyperparameters with scikit-learn names.
func (e *estimator) GetParams() map[string]interface{} {
	return paramsOf(e.config)
}

// SetParams updates hyperparameters by scikit-learn name. Unknown names and
// values of the wrong type are rejected without changing anything.
func (e *estimator) SetParams(params map[string]interface{}) error {
	next := e.config
	for key, value := range params {
		var err error
		switch key {
		case "criterion":
			next.Criterion, err = asString(key, value)
		case "max_depth":
			next.MaxDepth, err = asInt(key, value)
		case "min_samples_split":
			next.MinSamples, err = asInt(key, value)
		case "ccp_alpha":
			next.CCPAlpha, err = asFloat(key, value)
		case "score_single_leaf":
			b, ok := value.(bool)
			if !ok {
				err = errors.NewValidationError(key, "must be a bool", value)
			}
			next.ScoreSingleLeaf = b
		default:
			err = errors.NewValidationError(key, "unknown parameter", value)
		}
		if err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	e.config = next
	return nil
}

func paramsOf(c Config) map[string]interface{} {
	return map[string]interface{}{
		"criterion":         c.criterionName(),
		"max_depth":         c.MaxDepth,
		"min_samples_split": c.MinSamples,
		"ccp_alpha":         c.CCPAlpha,
		"score_single_leaf": c.ScoreSingleLeaf,
	}
}

func asString(key string, v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.NewValidationError(key, "must be a string", v)
	}
	return s, nil
}

func asInt(key string, v interface{}) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if x == float64(int(x)) {
			return int(x), nil
		}
	}
	return 0, errors.NewValidationError(key, "must be an integer", v)
}

func asFloat(key string, v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	}
	return 0, errors.NewValidationError(key, "must be a number", v)
}

// gobEstimator is the encoded form used by core/model.SaveModel.
type gobEstimator struct {
	Name         string
	Config       Config
	FeatureNames []string
	State        model.ModelState
	Fitted       *Model
}

func (e *estimator) gobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(gobEstimator{
		Name:         e.name,
		Config:       e.config,
		FeatureNames: e.featureNames,
		State:        e.state.GetState(),
		Fitted:       e.fitted,
	})
	return buf.Bytes(), err
}

func (e *estimator) gobDecode(data []byte, want string) error {
	var g gobEstimator
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	if g.Name != want {
		return errors.NewValueError("GobDecode", fmt.Sprintf("encoded model is a %s, not a %s", g.Name, want))
	}
	if g.Fitted != nil {
		if err := g.Fitted.Tree.Check(); err != nil {
			return err
		}
	}
	e.name = g.Name
	e.config = g.Config
	e.featureNames = g.FeatureNames
	if e.state == nil {
		e.state = model.NewStateManager()
	}
	e.state.SetState(g.State)
	e.fitted = g.Fitted
	return nil
}
