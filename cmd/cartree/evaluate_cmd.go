package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/metrics"
	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/pkg/log"
	"github.com/YuminosukeSato/cartree/sklearn/tree"
)

func evaluateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a fitted tree against labelled CSV data",
		Long:  `Predict every row of a labelled CSV file and print the accuracy and error rate (classification) or R², MSE, RMSE and MAE (regression) of the model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadModel(v.GetString("model"))
			if err != nil {
				return err
			}
			target := v.GetString("target")
			if target == "" {
				return errors.NewValidationError("target", "is required", target)
			}
			header, rows, err := readCSV(cmd, v.GetString("data"))
			if err != nil {
				return err
			}
			labels, err := targetLabels(m.Tree, header, rows, target)
			if err != nil {
				return err
			}
			preds, err := m.PredictNamed(namedRows(header, rows, target))
			if err != nil {
				return err
			}
			report, err := evaluation(m, labels, preds)
			if err != nil {
				return err
			}

			logger().Info("Model evaluated",
				log.OperationKey, log.OperationScore,
				log.SourceKey, source(v.GetString("data")),
				log.SamplesKey, len(rows),
				scoreKey(m), report[0].value,
			)
			out := cmd.OutOrStdout()
			for _, r := range report {
				if _, err = fmt.Fprintf(out, "%s: %g\n", r.name, r.value); err != nil {
					break
				}
			}
			return err
		},
	}
	cmd.Flags().StringP("model", "m", "", "path to a model written by fit (required)")
	cmd.Flags().StringP("data", "i", "", "path to a CSV file with a header line (defaults to STDIN)")
	cmd.Flags().StringP("target", "t", "", "name of the column holding the true labels (required)")
	return cmd
}

type metric struct {
	name  string
	value float64
}

// evaluation returns the score of m first (accuracy or r2), then the error
// measures of the task.
func evaluation(m *tree.Model, labels, preds []float64) ([]metric, error) {
	s, err := score(m, labels, preds)
	if err != nil {
		return nil, err
	}
	yTrue := mat.NewVecDense(len(labels), labels)
	yPred := mat.NewVecDense(len(preds), preds)

	if !m.Config.Regression {
		rate, err := metrics.ClassificationError(yTrue, yPred)
		if err != nil {
			return nil, err
		}
		return []metric{{"accuracy", s}, {"error rate", rate}}, nil
	}

	report := []metric{{"r2", s}}
	for _, f := range []struct {
		name string
		fn   func(yTrue, yPred *mat.VecDense) (float64, error)
	}{
		{"mse", metrics.MSE},
		{"rmse", metrics.RMSE},
		{"mae", metrics.MAE},
	} {
		v, err := f.fn(yTrue, yPred)
		if err != nil {
			return nil, err
		}
		report = append(report, metric{f.name, v})
	}
	return report, nil
}

// targetLabels reads the target column. Class names the model was trained
// on are mapped back to their class index.
func targetLabels(t *tree.Tree, header []string, rows [][]string, target string) ([]float64, error) {
	const op = "evaluate"
	col := -1
	for j, h := range header {
		if h == target {
			col = j
		}
	}
	if col < 0 {
		return nil, errors.NewInvalidInputError(op, fmt.Sprintf("target column '%s' not found", target), nil)
	}

	index := make(map[string]float64, len(t.ClassNames))
	for i, name := range t.ClassNames {
		index[name] = float64(i)
	}
	labels := make([]float64, len(rows))
	for i, row := range rows {
		if col >= len(row) {
			return nil, errors.NewInvalidInputError(op, fmt.Sprintf("row %d has %d fields", i, len(row)), nil)
		}
		cell := strings.TrimSpace(row[col])
		if c, ok := index[cell]; ok {
			labels[i] = c
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.NewInvalidInputError(op, fmt.Sprintf("row %d: unknown label '%s'", i, cell), err)
		}
		labels[i] = v
	}
	return labels, nil
}
