package timedataset

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNoData             = errors.New("no data")
	ErrNonMonotonic       = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
)

// TimeDataset is a single observed series such as the daily AQI. Time points are
// non-decreasing since a daily table may hold more than one observation per day.
type TimeDataset struct {
	T []time.Time
	Y []float64
}

// NewUnivariateDataset validates and copies the time and value slices
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf("got %d time points and %d values, %w", len(t), len(y), ErrDatasetLenMismatch)
	}
	for i := 1; i < len(t); i++ {
		if t[i].Before(t[i-1]) {
			return nil, fmt.Errorf("%s follows %s at %d, %w",
				t[i].Format(time.DateOnly), t[i-1].Format(time.DateOnly), i, ErrNonMonotonic)
		}
	}
	return (&TimeDataset{T: t, Y: y}).Copy(), nil
}

// Len returns the number of observations
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.Y)
}

func (td *TimeDataset) Copy() *TimeDataset {
	if td == nil {
		return nil
	}
	return &TimeDataset{
		T: append([]time.Time{}, td.T...),
		Y: append([]float64{}, td.Y...),
	}
}

// DropNan returns a copy of the dataset without the points where the value is NaN
func (td *TimeDataset) DropNan() *TimeDataset {
	if td == nil {
		return nil
	}

	res := &TimeDataset{
		T: make([]time.Time, 0, len(td.T)),
		Y: make([]float64, 0, len(td.Y)),
	}
	for i, y := range td.Y {
		if math.IsNaN(y) {
			continue
		}
		res.T = append(res.T, td.T[i])
		res.Y = append(res.Y, y)
	}
	return res
}
