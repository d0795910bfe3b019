package tree

import (
	"encoding/json"
	"io"

	"github.com/YuminosukeSato/cartree/core/model"
	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// ExportJSON writes m as a model envelope whose payload is the node arena
// and configuration.
func ExportJSON(w io.Writer, m *Model) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "failed to encode tree")
	}
	env := &model.ModelEnvelope{
		ModelType:       modelType(m.Config),
		Version:         model.EnvelopeVersion,
		Hyperparameters: paramsOf(m.Config),
		Metadata: map[string]interface{}{
			"depth":    m.Tree.Depth(),
			"n_leaves": m.Tree.NLeaves(),
		},
		IsFitted: true,
		Payload:  payload,
	}
	data, err := env.ToJSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode model envelope")
	}
	_, err = w.Write(data)
	return err
}

// ImportJSON reads a model written by ExportJSON and checks the tree
// structure before returning it.
func ImportJSON(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read model")
	}
	var env model.ModelEnvelope
	if err := env.FromJSON(data); err != nil {
		return nil, err
	}
	if env.ModelType != classifierName && env.ModelType != regressorName {
		return nil, errors.NewValidationError("model_type", "not a decision tree", env.ModelType)
	}

	var m Model
	if err := json.Unmarshal(env.Payload, &m); err != nil {
		return nil, errors.NewModelError("ImportJSON", "malformed tree payload", err)
	}
	if m.Tree == nil {
		return nil, errors.NewValidationError("tree", "payload has no tree", nil)
	}
	if err := m.Tree.Check(); err != nil {
		return nil, err
	}
	return &m, nil
}

func modelType(c Config) string {
	if c.Regression {
		return regressorName
	}
	return classifierName
}
