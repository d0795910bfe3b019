package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/cartree/pkg/errors"
	"github.com/YuminosukeSato/cartree/sklearn/tree"
)

// readCSV reads a header line and the records below it from path, or from
// the command's stdin when path is "" or "-".
func readCSV(cmd *cobra.Command, path string) ([]string, [][]string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening %s", path)
		}
		defer f.Close()
		r = f
	}

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading CSV %s", path)
	}
	if len(records) == 0 {
		return nil, nil, errors.NewInvalidInputError("readCSV", "no header line", errors.ErrEmptyData)
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return header, records[1:], nil
}

// namedRows turns records into feature maps for PredictNamed. Cells that are
// not numbers are left out, so a tree that needs them reports a SchemaError.
func namedRows(header []string, rows [][]string, skip string) []map[string]float64 {
	out := make([]map[string]float64, len(rows))
	for i, row := range rows {
		named := make(map[string]float64, len(header))
		for j, name := range header {
			if name == skip || j >= len(row) {
				continue
			}
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64); err == nil {
				named[name] = v
			}
		}
		out[i] = named
	}
	return out
}

// addTreeFlags registers the growth and selection flags shared by fit and path.
func addTreeFlags(cmd *cobra.Command) {
	d := tree.DefaultConfig(false)
	cmd.Flags().StringP("data", "i", "", "path to a CSV file with a header line (defaults to STDIN)")
	cmd.Flags().StringP("target", "t", "", "name of the column to predict (required)")
	cmd.Flags().Bool("regression", false, "grow a regression tree instead of a classification tree")
	cmd.Flags().String("criterion", "", "impurity criterion: gini or entropy for classification, mse for regression")
	cmd.Flags().Int("max-depth", d.MaxDepth, "maximum depth of the grown tree")
	cmd.Flags().Int("min-samples", d.MinSamples, "minimum number of samples a node needs to be split")
	cmd.Flags().Float64("ccp-alpha", d.CCPAlpha, "cost-complexity regularization strength")
	cmd.Flags().Bool("score-single-leaf", false, "let model selection pick the fully pruned single leaf")
}

func treeConfig(v *viper.Viper) tree.Config {
	c := tree.DefaultConfig(v.GetBool("regression"))
	if criterion := v.GetString("criterion"); criterion != "" {
		c.Criterion = criterion
	}
	c.MaxDepth = v.GetInt("max-depth")
	c.MinSamples = v.GetInt("min-samples")
	c.CCPAlpha = v.GetFloat64("ccp-alpha")
	c.ScoreSingleLeaf = v.GetBool("score-single-leaf")
	return c
}

// trainingSet reads the CSV named by --data and splits off the --target column.
func trainingSet(cmd *cobra.Command, v *viper.Viper) (*tree.Dataset, error) {
	target := v.GetString("target")
	if target == "" {
		return nil, errors.NewValidationError("target", "is required", target)
	}
	header, rows, err := readCSV(cmd, v.GetString("data"))
	if err != nil {
		return nil, err
	}
	return tree.FromRecords(header, rows, target, v.GetBool("regression"))
}

// loadModel reads a model written by fit.
func loadModel(path string) (*tree.Model, error) {
	if path == "" {
		return nil, errors.NewValidationError("model", "is required", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening model %s", path)
	}
	defer f.Close()
	return tree.ImportJSON(f)
}
