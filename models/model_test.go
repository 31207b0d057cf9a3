package models

import (
	"testing"

	mat_ "github.com/aouyang1/go-aqi/mat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, expected []float64, tol float64) {
	err := model.Fit(x, y)
	require.Nil(t, err)

	res, err := model.Predict(x)
	require.Nil(t, err)
	assert.InDeltaSlice(t, expected, res, tol)

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol)
}

// generateMonthlyData returns a month and year feature for each day of the years along with a
// target that only depends on the month
func generateMonthlyData(startYear, endYear int, slope float64) (mat.Matrix, mat.Matrix, []float64) {
	var data [][]float64
	var target []float64
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			for day := 1; day <= 28; day++ {
				data = append(data, []float64{float64(month), float64(year)})
				target = append(target, slope*float64(month))
			}
		}
	}

	x, err := mat_.NewDenseFromArray(data)
	if err != nil {
		panic(err)
	}
	return x, mat.NewDense(len(target), 1, target), target
}

func generateBenchData(nObs, nFeat int) (mat.Matrix, mat.Matrix, error) {
	data := make([][]float64, nObs)
	for i := 0; i < nObs; i++ {
		data[i] = make([]float64, nFeat)
		for j := 0; j < nFeat; j++ {
			data[i][j] = float64((i*(j+3) + j) % (12 * (j + 1)))
		}
	}

	data2 := make([]float64, 0, nObs)
	for i := 0; i < cap(data2); i++ {
		data2 = append(data2, float64(i%97))
	}

	x, err := mat_.NewDenseFromArray(data)
	if err != nil {
		return nil, nil, err
	}

	y := mat.NewDense(nObs, 1, data2)
	return x, y, nil
}
