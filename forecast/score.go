package forecast

import (
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/stat"
)

var ErrResLenMismatch = errors.New("predicted and actual have different lengths")

// Scores tracks the evaluation scores of the test partition
type Scores struct {
	RMSE float64 `json:"root_mean_squared_error"`
	MAE  float64 `json:"mean_absolute_error"`
	R2   float64 `json:"r_squared"`
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_absolute_percent_error"`
}

// NewScores calculates the scores given the predicted and actual input slice values
func NewScores(predicted, actual []float64) (*Scores, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean squared error, %w", err)
	}
	mae, err := MAE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute error, %w", err)
	}
	mape, err := MAPE(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute mean absolute percent error, %w", err)
	}
	rs, err := RSquared(predicted, actual)
	if err != nil {
		return nil, fmt.Errorf("unable to compute r-squared, %w", err)
	}

	return &Scores{
		RMSE: math.Sqrt(mse),
		MAE:  mae,
		R2:   rs,
		MSE:  mse,
		MAPE: mape,
	}, nil
}

// MarshalJSON writes undefined scores such as the r-squared of a constant series as null
func (s Scores) MarshalJSON() ([]byte, error) {
	nullable := func(v float64) *float64 {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		RMSE *float64 `json:"root_mean_squared_error"`
		MAE  *float64 `json:"mean_absolute_error"`
		R2   *float64 `json:"r_squared"`
		MSE  *float64 `json:"mean_squared_error"`
		MAPE *float64 `json:"mean_absolute_percent_error"`
	}{
		RMSE: nullable(s.RMSE),
		MAE:  nullable(s.MAE),
		R2:   nullable(s.R2),
		MSE:  nullable(s.MSE),
		MAPE: nullable(s.MAPE),
	})
}

// UnmarshalJSON reads null scores back as NaN
func (s *Scores) UnmarshalJSON(data []byte) error {
	var nullable struct {
		RMSE *float64 `json:"root_mean_squared_error"`
		MAE  *float64 `json:"mean_absolute_error"`
		R2   *float64 `json:"r_squared"`
		MSE  *float64 `json:"mean_squared_error"`
		MAPE *float64 `json:"mean_absolute_percent_error"`
	}
	if err := json.Unmarshal(data, &nullable); err != nil {
		return err
	}
	value := func(v *float64) float64 {
		if v == nil {
			return math.NaN()
		}
		return *v
	}
	s.RMSE = value(nullable.RMSE)
	s.MAE = value(nullable.MAE)
	s.R2 = value(nullable.R2)
	s.MSE = value(nullable.MSE)
	s.MAPE = value(nullable.MAPE)
	return nil
}

// pairs returns the predicted and actual values where neither is NaN
func pairs(predicted, actual []float64) ([]float64, []float64, error) {
	if len(predicted) != len(actual) {
		return nil, nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}

	predictCopy := make([]float64, 0, len(predicted))
	actualCopy := make([]float64, 0, len(actual))
	for i := 0; i < len(predicted); i++ {
		if math.IsNaN(actual[i]) || math.IsNaN(predicted[i]) {
			continue
		}
		predictCopy = append(predictCopy, predicted[i])
		actualCopy = append(actualCopy, actual[i])
	}
	return predictCopy, actualCopy, nil
}

// MSE computes the mean squared error, mean((y-yhat)^2). A score of 0 means a perfect match
// with no errors. NaN pairs are skipped and no remaining pairs results in NaN.
func MSE(predicted, actual []float64) (float64, error) {
	predicted, actual, err := pairs(predicted, actual)
	if err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}

	mse := 0.0
	for i := 0; i < len(actual); i++ {
		mse += math.Pow(actual[i]-predicted[i], 2.0)
	}
	return mse / float64(len(actual)), nil
}

// RMSE computes the root mean squared error in the units of the series
func RMSE(predicted, actual []float64) (float64, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error, mean(abs(y-yhat))
func MAE(predicted, actual []float64) (float64, error) {
	predicted, actual, err := pairs(predicted, actual)
	if err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}

	mae := 0.0
	for i := 0; i < len(actual); i++ {
		mae += math.Abs(actual[i] - predicted[i])
	}
	return mae / float64(len(actual)), nil
}

// MAPE calculates the mean absolute percent error, mean(abs((y-yhat)/y)). Actual values of 0
// are skipped.
func MAPE(predicted, actual []float64) (float64, error) {
	predicted, actual, err := pairs(predicted, actual)
	if err != nil {
		return 0, err
	}

	var mape float64
	var n int
	for i := 0; i < len(actual); i++ {
		if actual[i] == 0 {
			continue
		}
		mape += math.Abs((actual[i] - predicted[i]) / actual[i])
		n++
	}
	if n == 0 {
		return math.NaN(), nil
	}
	return mape / float64(n), nil
}

// RSquared computes the coefficient of determination where 1.0 means a perfect fit and 0 is no
// better than predicting the mean. A constant actual series has no variance to explain and
// results in NaN.
func RSquared(predicted, actual []float64) (float64, error) {
	predicted, actual, err := pairs(predicted, actual)
	if err != nil {
		return 0, err
	}
	if len(actual) == 0 {
		return math.NaN(), nil
	}

	mean := stat.Mean(actual, nil)
	var ssTot, ssRes float64
	for i := 0; i < len(actual); i++ {
		ssTot += math.Pow(actual[i]-mean, 2.0)
		ssRes += math.Pow(actual[i]-predicted[i], 2.0)
	}
	if ssTot == 0 {
		return math.NaN(), nil
	}
	return 1 - ssRes/ssTot, nil
}
