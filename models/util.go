package models

import (
	"fmt"
	"math"

	mat_ "github.com/aouyang1/go-aqi/mat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// fitValidate checks the training inputs and returns the feature columns and the target
func fitValidate(x, y mat.Matrix) ([][]float64, []float64, error) {
	if x == nil {
		return nil, nil, ErrNoTrainingMatrix
	}
	if y == nil {
		return nil, nil, ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if ym != m {
		return nil, nil, fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}
	if m == 0 {
		return nil, nil, ErrNoObservations
	}
	return mat_.Columns(x), mat_.Vector(y), nil
}

func scoreValidate(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoDesignMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}

	m, _ := x.Dims()
	ym, _ := y.Dims()
	if m != ym {
		return fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}
	return nil
}

// rSquared computes the coefficient of determination. A constant target has no variance to
// explain so the score is NaN.
func rSquared(predicted, actual []float64) float64 {
	if len(actual) == 0 {
		return math.NaN()
	}
	mean := stat.Mean(actual, nil)

	var ssTot, ssRes float64
	for i, a := range actual {
		ssTot += (a - mean) * (a - mean)
		ssRes += (a - predicted[i]) * (a - predicted[i])
	}
	if ssTot == 0 {
		return math.NaN()
	}
	return 1 - ssRes/ssTot
}

// normalize scales the values to sum to 1. All zero input is left as is.
func normalize(vals []float64) []float64 {
	total := floats.Sum(vals)
	if total == 0 {
		return vals
	}
	floats.Scale(1/total, vals)
	return vals
}
