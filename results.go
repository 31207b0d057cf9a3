package aqi

import "time"

// Results holds the test partition predictions of a fit
type Results struct {
	T         []time.Time `json:"time"`
	Actual    []float64   `json:"actual"`
	Predicted []float64   `json:"predicted"`
	Residual  []float64   `json:"residual"`
}

func newResults(t []time.Time, actual, predicted []float64) *Results {
	r := &Results{
		T:         make([]time.Time, len(t)),
		Actual:    make([]float64, len(actual)),
		Predicted: make([]float64, len(predicted)),
		Residual:  make([]float64, len(actual)),
	}
	copy(r.T, t)
	copy(r.Actual, actual)
	copy(r.Predicted, predicted)
	for i := range r.Residual {
		r.Residual[i] = actual[i] - predicted[i]
	}
	return r
}
