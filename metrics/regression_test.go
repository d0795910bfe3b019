package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// 外れ値を含む学習データと、ccp_alpha=0.2 で選ばれた木の予測
var (
	outlierTruth = []float64{1, 2, 3, 10}
	prunedPreds  = []float64{1.5, 1.5, 3, 10}
)

func vec(values ...float64) *mat.VecDense {
	return mat.NewVecDense(len(values), values)
}

func TestErrorMeasures(t *testing.T) {
	tests := []struct {
		name  string
		yPred []float64
		mse   float64
		rmse  float64
		mae   float64
	}{
		{
			name:  "full tree reproduces the labels",
			yPred: outlierTruth,
		},
		{
			name:  "pruned tree merges the first two leaves",
			yPred: prunedPreds,
			mse:   0.125, // (0.25 + 0.25) / 4
			rmse:  math.Sqrt(0.125),
			mae:   0.25, // (0.5 + 0.5) / 4
		},
		{
			name:  "single leaf predicts the mean",
			yPred: []float64{4, 4, 4, 4},
			mse:   12.5, // (9 + 4 + 1 + 36) / 4
			rmse:  math.Sqrt(12.5),
			mae:   3, // (3 + 2 + 1 + 6) / 4
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue, yPred := vec(outlierTruth...), vec(tt.yPred...)

			measures := []struct {
				name string
				fn   func(yTrue, yPred *mat.VecDense) (float64, error)
				want float64
			}{
				{"MSE", MSE, tt.mse},
				{"RMSE", RMSE, tt.rmse},
				{"MAE", MAE, tt.mae},
			}
			for _, m := range measures {
				got, err := m.fn(yTrue, yPred)
				if err != nil {
					t.Fatalf("%s() error = %v", m.name, err)
				}
				if math.Abs(got-m.want) > 1e-12 {
					t.Errorf("%s() = %v, want %v", m.name, got, m.want)
				}
			}
		})
	}
}

func TestErrorMeasures_InvalidInput(t *testing.T) {
	funcs := map[string]func(yTrue, yPred *mat.VecDense) (float64, error){
		"MSE":     MSE,
		"RMSE":    RMSE,
		"MAE":     MAE,
		"R2Score": R2Score,
	}

	for name, fn := range funcs {
		t.Run(name, func(t *testing.T) {
			_, err := fn(vec(1, 2, 3), vec(1, 2))
			var dimErr *errors.DimensionError
			if !errors.As(err, &dimErr) {
				t.Fatalf("expected DimensionError, got %v", err)
			}
			if dimErr.Expected != 3 || dimErr.Got != 2 || dimErr.Axis != 0 {
				t.Errorf("unexpected dimensions %+v", dimErr)
			}

			for _, empty := range []*mat.VecDense{nil, {}} {
				_, err = fn(empty, empty)
				var valueErr *errors.ValueError
				if !errors.As(err, &valueErr) {
					t.Errorf("expected ValueError for empty input, got %v", err)
				}
			}
		})
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name     string
		yTrue    []float64
		yPred    []float64
		want     float64
		warnings int
	}{
		{
			name:  "full tree",
			yTrue: outlierTruth,
			yPred: outlierTruth,
			want:  1,
		},
		{
			name:  "pruned tree",
			yTrue: outlierTruth,
			yPred: prunedPreds,
			want:  0.99, // 1 - 0.5/50
		},
		{
			name:  "single leaf at the mean",
			yTrue: outlierTruth,
			yPred: []float64{4, 4, 4, 4},
			want:  0,
		},
		{
			name:  "worse than the mean",
			yTrue: []float64{1, 2, 3, 4},
			yPred: []float64{4, 3, 2, 1},
			want:  -3, // 1 - 20/5
		},
		{
			name:  "constant truth predicted exactly",
			yTrue: []float64{3, 3, 3},
			yPred: []float64{3, 3, 3},
			want:  1,
		},
		{
			name:     "constant truth predicted wrongly",
			yTrue:    []float64{3, 3, 3},
			yPred:    []float64{2, 3, 4},
			want:     0,
			warnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warned []error
			prev := errors.SetWarningHandler(func(w error) { warned = append(warned, w) })
			defer errors.SetWarningHandler(prev)

			got, err := R2Score(vec(tt.yTrue...), vec(tt.yPred...))
			if err != nil {
				t.Fatalf("R2Score() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
			if len(warned) != tt.warnings {
				t.Fatalf("got %d warnings, want %d", len(warned), tt.warnings)
			}
			if tt.warnings > 0 {
				var undefined *errors.UndefinedMetricWarning
				if !errors.As(warned[0], &undefined) || undefined.Metric != "R2Score" {
					t.Errorf("expected UndefinedMetricWarning for R2Score, got %v", warned[0])
				}
			}
		})
	}
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
