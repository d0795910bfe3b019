package tree

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// Dataset is the immutable training input of one fit call: feature columns
// in a fixed order plus a parallel label vector.
//
// Classification labels are class values encoded as float64. When the
// labels were strings, LabelNames maps the encoded value i back to its name.
type Dataset struct {
	FeatureNames []string
	Columns      [][]float64
	Labels       []float64
	LabelNames   []string
}

// NewDataset builds a Dataset from named columns and labels and validates it.
// A nil names slice gets the defaults "x0", "x1", ...
func NewDataset(names []string, columns [][]float64, labels []float64) (*Dataset, error) {
	if names == nil {
		names = defaultFeatureNames(len(columns))
	}
	d := &Dataset{FeatureNames: names, Columns: columns, Labels: labels}
	if err := d.Validate("NewDataset"); err != nil {
		return nil, err
	}
	return d, nil
}

// FromMatrix converts an n×m feature matrix and an n×1 label matrix.
func FromMatrix(X, y mat.Matrix, names []string) (*Dataset, error) {
	rows, cols := X.Dims()
	yRows, yCols := y.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewInvalidInputError("FromMatrix", "feature matrix is empty", errors.ErrEmptyData)
	}
	if yCols != 1 {
		return nil, errors.NewInvalidInputError("FromMatrix",
			fmt.Sprintf("labels must be a column vector, got %d columns", yCols), nil)
	}
	if yRows != rows {
		return nil, errors.NewInvalidInputError("FromMatrix",
			fmt.Sprintf("%d feature rows but %d labels", rows, yRows), nil)
	}
	if err := errors.CheckMatrix("features", X, rows, cols); err != nil {
		return nil, errors.NewInvalidInputError("FromMatrix", "feature matrix holds NaN or Inf", err)
	}

	columns := make([][]float64, cols)
	for j := range columns {
		columns[j] = mat.Col(nil, j, X)
	}
	return NewDataset(names, columns, mat.Col(nil, 0, y))
}

// FromRecords converts string records (CSV style) into a Dataset. header
// names the columns and target selects the label column.
//
// Feature cells must parse as numbers. A target column that is not numeric
// is only accepted for classification: its distinct values are sorted and
// encoded as 0, 1, ... with the names kept in LabelNames.
func FromRecords(header []string, rows [][]string, target string, regression bool) (*Dataset, error) {
	const op = "FromRecords"
	if len(rows) == 0 {
		return nil, errors.NewInvalidInputError(op, "no data rows", errors.ErrEmptyData)
	}
	targetIdx := -1
	for i, h := range header {
		if h == target {
			targetIdx = i
		}
	}
	if targetIdx < 0 {
		return nil, errors.NewInvalidInputError(op, fmt.Sprintf("target column '%s' not found", target), nil)
	}
	if len(header) < 2 {
		return nil, errors.NewInvalidInputError(op, "no feature columns", nil)
	}

	var names []string
	var columns [][]float64
	for j, name := range header {
		if j == targetIdx {
			continue
		}
		col, err := parseColumn(rows, j)
		if err != nil {
			return nil, errors.NewInvalidInputError(op, fmt.Sprintf("feature column '%s' is not numeric", name), err)
		}
		names = append(names, name)
		columns = append(columns, col)
	}

	d := &Dataset{FeatureNames: names, Columns: columns}
	labels, err := parseColumn(rows, targetIdx)
	switch {
	case err == nil:
		d.Labels = labels
	case regression:
		return nil, errors.NewInvalidInputError(op, fmt.Sprintf("target column '%s' is not numeric", target), err)
	default:
		d.Labels, d.LabelNames, err = encodeLabels(rows, targetIdx)
		if err != nil {
			return nil, errors.NewInvalidInputError(op, fmt.Sprintf("target column '%s'", target), err)
		}
		errors.Warn(errors.NewDataConversionWarning("string", "float64",
			fmt.Sprintf("target column '%s' encoded as %d class indices", target, len(d.LabelNames))))
	}

	if err := d.Validate(op); err != nil {
		return nil, err
	}
	return d, nil
}

func parseColumn(rows [][]string, j int) ([]float64, error) {
	col := make([]float64, len(rows))
	for i, row := range rows {
		if j >= len(row) {
			return nil, errors.Newf("row %d has %d fields", i, len(row))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		col[i] = v
	}
	return col, nil
}

func encodeLabels(rows [][]string, j int) ([]float64, []string, error) {
	raw := make([]string, len(rows))
	seen := make(map[string]bool)
	for i, row := range rows {
		if j >= len(row) {
			return nil, nil, errors.Newf("row %d has %d fields", i, len(row))
		}
		raw[i] = strings.TrimSpace(row[j])
		seen[raw[i]] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	index := make(map[string]float64, len(names))
	for i, name := range names {
		index[name] = float64(i)
	}
	labels := make([]float64, len(raw))
	for i, name := range raw {
		labels[i] = index[name]
	}
	return labels, names, nil
}

// Validate reports an InvalidInputError when the dataset is empty, ragged or
// holds NaN/Inf values.
func (d *Dataset) Validate(op string) error {
	n := len(d.Labels)
	if n == 0 || len(d.Columns) == 0 {
		return errors.NewInvalidInputError(op, "dataset is empty", errors.ErrEmptyData)
	}
	if len(d.FeatureNames) != len(d.Columns) {
		return errors.NewInvalidInputError(op,
			fmt.Sprintf("%d feature names for %d columns", len(d.FeatureNames), len(d.Columns)), nil)
	}
	for j, col := range d.Columns {
		if len(col) != n {
			return errors.NewInvalidInputError(op,
				fmt.Sprintf("feature '%s' has %d rows but there are %d labels", d.FeatureNames[j], len(col), n), nil)
		}
		if err := errors.CheckNumericalStability(d.FeatureNames[j], col); err != nil {
			return errors.NewInvalidInputError(op, fmt.Sprintf("feature '%s'", d.FeatureNames[j]), err)
		}
	}
	if err := errors.CheckNumericalStability("labels", d.Labels); err != nil {
		return errors.NewInvalidInputError(op, "labels", err)
	}
	return nil
}

// NSamples returns the number of rows.
func (d *Dataset) NSamples() int { return len(d.Labels) }

// NFeatures returns the number of feature columns.
func (d *Dataset) NFeatures() int { return len(d.Columns) }

// labelsAt gathers the labels of the given rows.
func (d *Dataset) labelsAt(idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = d.Labels[r]
	}
	return out
}

func defaultFeatureNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("x%d", i)
	}
	return names
}
