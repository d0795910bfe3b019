package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/metrics"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"github.com/YuminosukeSato/cartree/sklearn/tree"
)

func fitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Grow, prune and select a tree from a CSV file",
		Long:  `Grow a full tree on the data, walk its cost-complexity pruning path and write the tree minimizing total error + ccp-alpha * leaves as JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			data, err := trainingSet(cmd, v)
			if err != nil {
				return err
			}
			m, err := tree.Fit(data, treeConfig(v))
			if err != nil {
				return err
			}

			score, err := trainingScore(m, data)
			if err != nil {
				return err
			}
			logger().Info("Model fitted",
				log.OperationKey, log.OperationFit,
				log.SourceKey, source(v.GetString("data")),
				log.SamplesKey, data.NSamples(),
				log.FeaturesKey, data.NFeatures(),
				log.AlphaKey, m.Config.CCPAlpha,
				log.LeavesKey, m.Tree.NLeaves(),
				log.DepthKey, m.Tree.Depth(),
				scoreKey(m), score,
				log.DurationMsKey, time.Since(start),
			)

			return writeModel(cmd, v.GetString("out"), m)
		},
	}
	addTreeFlags(cmd)
	cmd.Flags().StringP("out", "o", "", "path to which the model is written as JSON (defaults to STDOUT)")
	return cmd
}

// trainingScore is the accuracy (classification) or R² (regression) of m on
// the data it was fitted on.
func trainingScore(m *tree.Model, data *tree.Dataset) (float64, error) {
	rows := make([][]float64, data.NSamples())
	for i := range rows {
		rows[i] = make([]float64, data.NFeatures())
		for j, col := range data.Columns {
			rows[i][j] = col[i]
		}
	}
	pred, err := m.Predict(rows)
	if err != nil {
		return 0, err
	}
	return score(m, data.Labels, pred)
}

func score(m *tree.Model, labels, pred []float64) (float64, error) {
	yTrue := mat.NewVecDense(len(labels), labels)
	yPred := mat.NewVecDense(len(pred), pred)
	if m.Config.Regression {
		return metrics.R2Score(yTrue, yPred)
	}
	return metrics.Accuracy(yTrue, yPred)
}

func scoreKey(m *tree.Model) string {
	if m.Config.Regression {
		return log.R2ScoreKey
	}
	return log.AccuracyKey
}

// createFile opens the --out file; tests replace it.
var createFile = func(path string) (io.WriteCloser, error) { return os.Create(path) }

// writeModel writes m as JSON to path, or to stdout when path is "" or "-".
// A failed close is reported like a failed write.
func writeModel(cmd *cobra.Command, path string, m *tree.Model) (err error) {
	if path == "" || path == "-" {
		return tree.ExportJSON(cmd.OutOrStdout(), m)
	}
	f, err := createFile(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return tree.ExportJSON(f, m)
}

func source(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
