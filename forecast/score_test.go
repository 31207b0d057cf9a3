package forecast

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScores(t *testing.T) {
	nan := math.NaN()
	testData := map[string]struct {
		predicted []float64
		actual    []float64
		expected  *Scores
		err       error
	}{
		"perfect": {
			predicted: []float64{1, 2, 3, 4},
			actual:    []float64{1, 2, 3, 4},
			expected:  &Scores{RMSE: 0, MAE: 0, R2: 1, MSE: 0, MAPE: 0},
		},
		"constant offset": {
			predicted: []float64{2, 3, 4, 5},
			actual:    []float64{1, 2, 3, 4},
			expected:  &Scores{RMSE: 1, MAE: 1, R2: 0.2, MSE: 1, MAPE: (1 + 0.5 + 1.0/3.0 + 0.25) / 4},
		},
		"mean prediction": {
			predicted: []float64{2.5, 2.5, 2.5, 2.5},
			actual:    []float64{1, 2, 3, 4},
			expected:  &Scores{RMSE: math.Sqrt(1.25), MAE: 1, R2: 0, MSE: 1.25, MAPE: (1.5 + 0.25 + 0.5/3.0 + 0.375) / 4},
		},
		"nan pairs skipped": {
			predicted: []float64{1, nan, 3, 4},
			actual:    []float64{1, 2, nan, 4},
			expected:  &Scores{RMSE: 0, MAE: 0, R2: 1, MSE: 0, MAPE: 0},
		},
		"zero actual skipped in mape": {
			predicted: []float64{1, 4},
			actual:    []float64{0, 2},
			expected:  &Scores{RMSE: math.Sqrt(2.5), MAE: 1.5, R2: -1.5, MSE: 2.5, MAPE: 1},
		},
		"length mismatch": {
			predicted: []float64{1, 2},
			actual:    []float64{1},
			err:       ErrResLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := NewScores(td.predicted, td.actual)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.InDelta(t, td.expected.RMSE, res.RMSE, 1e-9, "rmse")
			assert.InDelta(t, td.expected.MAE, res.MAE, 1e-9, "mae")
			assert.InDelta(t, td.expected.R2, res.R2, 1e-9, "r2")
			assert.InDelta(t, td.expected.MSE, res.MSE, 1e-9, "mse")
			assert.InDelta(t, td.expected.MAPE, res.MAPE, 1e-9, "mape")
		})
	}
}

func TestRSquaredConstantActual(t *testing.T) {
	r2, err := RSquared([]float64{5, 5, 5}, []float64{5, 5, 5})
	require.Nil(t, err)
	assert.True(t, math.IsNaN(r2))

	r2, err = RSquared([]float64{4, 5, 6}, []float64{5, 5, 5})
	require.Nil(t, err)
	assert.True(t, math.IsNaN(r2))
}

func TestScoresNoObservations(t *testing.T) {
	res, err := NewScores([]float64{}, []float64{})
	require.Nil(t, err)
	assert.True(t, math.IsNaN(res.RMSE))
	assert.True(t, math.IsNaN(res.MAE))
	assert.True(t, math.IsNaN(res.R2))
	assert.True(t, math.IsNaN(res.MAPE))
}

func TestRMSE(t *testing.T) {
	rmse, err := RMSE([]float64{0, 0}, []float64{3, 4})
	require.Nil(t, err)
	assert.InDelta(t, math.Sqrt(12.5), rmse, 1e-9)

	_, err = RMSE([]float64{0}, nil)
	assert.ErrorIs(t, err, ErrResLenMismatch)
}

func TestScoresJSON(t *testing.T) {
	scores := &Scores{RMSE: 1.5, MAE: 1, R2: math.NaN(), MSE: 2.25, MAPE: 0.1}

	out, err := json.Marshal(scores)
	require.Nil(t, err)
	assert.JSONEq(t, `{
		"root_mean_squared_error": 1.5,
		"mean_absolute_error": 1,
		"r_squared": null,
		"mean_squared_error": 2.25,
		"mean_absolute_percent_error": 0.1
	}`, string(out))

	var res Scores
	require.Nil(t, json.Unmarshal(out, &res))
	assert.Equal(t, 1.5, res.RMSE)
	assert.True(t, math.IsNaN(res.R2))
}
