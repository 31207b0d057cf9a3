package forecast

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-aqi/feature"
	"gonum.org/v1/gonum/mat"
)

// designMatrix builds the model input of a partition reporting any absent feature as a missing
// column
func designMatrix(set *feature.Set, features []feature.Feature, partition string) (*mat.Dense, error) {
	x, err := set.Matrix(features)
	if errors.Is(err, feature.ErrUnknownFeature) {
		return nil, fmt.Errorf("%w, %s %w: %w", ErrFit, partition, ErrMissingColumn, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w, %s, %w", ErrFit, partition, err)
	}
	return x, nil
}

// columnMatrix wraps a non empty label slice as a single column matrix
func columnMatrix(y []float64) *mat.Dense {
	return mat.NewDense(len(y), 1, y)
}
