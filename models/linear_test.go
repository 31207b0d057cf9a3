package models

import (
	"math"
	"testing"

	mat_ "github.com/aouyang1/go-aqi/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLinearOptionsValidate(t *testing.T) {
	opt, err := (*LinearOptions)(nil).Validate()
	require.Nil(t, err)
	assert.Equal(t, NewDefaultLinearOptions(), opt)

	opt, err = (&LinearOptions{}).Validate()
	require.Nil(t, err)
	assert.False(t, opt.FitIntercept)
}

func TestLinearRegression(t *testing.T) {
	tol := 1e-6
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *LinearOptions
		intercept float64
		coef      []float64
	}{
		"intercept": {
			x: [][]float64{
				{0, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			opt:       NewDefaultLinearOptions(),
			intercept: 2,
			coef:      []float64{3, 4},
		},
		"no intercept": {
			x: [][]float64{
				{1, 0},
				{3, 5},
				{9, 20},
				{12, 6},
				{15, 10},
			},
			y:         []float64{3, 29, 107, 60, 85},
			opt:       &LinearOptions{FitIntercept: false},
			intercept: 0,
			coef:      []float64{3, 4},
		},
		"constant feature": {
			x: [][]float64{
				{1, 2022},
				{2, 2022},
				{3, 2022},
				{4, 2022},
			},
			y:         []float64{65, 90, 115, 140},
			opt:       nil,
			intercept: 40,
			coef:      []float64{25, 0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := mat_.NewDenseFromArray(td.x)
			require.Nil(t, err)
			y := mat.NewDense(len(td.y), 1, td.y)

			model, err := NewLinearRegression(td.opt)
			require.Nil(t, err)
			testModel(t, model, x, y, td.y, tol)

			assert.InDelta(t, td.intercept, model.Intercept(), tol)
			assert.InDeltaSlice(t, td.coef, model.Coef(), tol)
		})
	}
}

func TestLinearRegressionErrors(t *testing.T) {
	model, err := NewLinearRegression(nil)
	require.Nil(t, err)

	x, err := mat_.NewDenseFromArray([][]float64{{1, 2}, {3, 5}})
	require.Nil(t, err)

	_, err = model.Predict(x)
	assert.ErrorIs(t, err, ErrNotFitted)

	assert.ErrorIs(t, model.Fit(nil, mat.NewDense(2, 1, nil)), ErrNoTrainingMatrix)
	assert.ErrorIs(t, model.Fit(x, nil), ErrNoTargetMatrix)
	assert.ErrorIs(t, model.Fit(x, mat.NewDense(3, 1, nil)), ErrTargetLenMismatch)

	wide, err := mat_.NewDenseFromArray([][]float64{{1, 2, 3}, {2, 1, 5}})
	require.Nil(t, err)
	assert.ErrorIs(t, model.Fit(wide, mat.NewDense(2, 1, []float64{1, 2})), ErrUnderdetermined)

	tall, err := mat_.NewDenseFromArray([][]float64{{1, 2}, {3, 5}, {4, 1}})
	require.Nil(t, err)
	require.Nil(t, model.Fit(tall, mat.NewDense(3, 1, []float64{1, 2, 3})))
	_, err = model.Predict(mat.NewDense(1, 3, nil))
	assert.ErrorIs(t, err, ErrFeatureLenMismatch)

	var nilModel *LinearRegression
	assert.True(t, math.IsNaN(nilModel.Intercept()))
	assert.Nil(t, nilModel.Coef())
}

func TestLinearRegressionMonthlyPattern(t *testing.T) {
	x, y, target := generateMonthlyData(2022, 2023, 25)

	model, err := NewLinearRegression(nil)
	require.Nil(t, err)
	testModel(t, model, x, y, target, 1e-6)
	assert.InDeltaSlice(t, []float64{25, 0}, model.Coef(), 1e-6)
}
