package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrUnderdetermined = errors.New("fewer observations than coefficients")

// LinearOptions represents input options to fit an ordinary least squares regression
type LinearOptions struct {
	FitIntercept bool `json:"fit_intercept"`
}

func NewDefaultLinearOptions() *LinearOptions {
	return &LinearOptions{
		FitIntercept: true,
	}
}

func (o *LinearOptions) Validate() (*LinearOptions, error) {
	if o == nil {
		o = NewDefaultLinearOptions()
	}
	return o, nil
}

// LinearRegression computes ordinary least squares using QR factorization. Features that are
// constant over the training data carry no information and are given a coefficient of 0.
type LinearRegression struct {
	opt *LinearOptions

	fitted    bool
	coef      []float64
	intercept float64
}

// NewLinearRegression initializes a linear regression ready for fitting
func NewLinearRegression(opt *LinearOptions) (*LinearRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &LinearRegression{
		opt: opt,
	}, nil
}

// Fit the regression to the training data
func (l *LinearRegression) Fit(x, y mat.Matrix) error {
	if l == nil || l.opt == nil {
		return ErrNoOptions
	}
	cols, yArr, err := fitValidate(x, y)
	if err != nil {
		return err
	}
	m := len(yArr)

	// center on the column means when fitting an intercept so it can be recovered afterwards
	xMeans := make([]float64, len(cols))
	var yMean float64
	if l.opt.FitIntercept {
		for j, col := range cols {
			xMeans[j] = stat.Mean(col, nil)
		}
		yMean = stat.Mean(yArr, nil)
	}

	var active []int
	for j, col := range cols {
		if floats.Min(col) == floats.Max(col) && (l.opt.FitIntercept || col[0] == 0) {
			continue
		}
		active = append(active, j)
	}
	if m < len(active) {
		return fmt.Errorf("got %d observations for %d coefficients, %w", m, len(active), ErrUnderdetermined)
	}

	coef := make([]float64, len(cols))
	if len(active) > 0 {
		design := mat.NewDense(m, len(active), nil)
		for k, j := range active {
			for i, v := range cols[j] {
				design.Set(i, k, v-xMeans[j])
			}
		}
		target := make([]float64, m)
		for i, v := range yArr {
			target[i] = v - yMean
		}

		var qr mat.QR
		qr.Factorize(design)

		var sol mat.Dense
		if err := qr.SolveTo(&sol, false, mat.NewDense(m, 1, target)); err != nil {
			return fmt.Errorf("unable to solve least squares, %w", err)
		}
		for k, j := range active {
			coef[j] = sol.At(k, 0)
		}
	}

	l.coef = coef
	l.intercept = yMean - floats.Dot(coef, xMeans)
	l.fitted = true
	return nil
}

// Predict using the linear regression
func (l *LinearRegression) Predict(x mat.Matrix) ([]float64, error) {
	if l == nil || l.opt == nil {
		return nil, ErrNoOptions
	}
	if !l.fitted {
		return nil, ErrNotFitted
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	if n != len(l.coef) {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, len(l.coef), ErrFeatureLenMismatch)
	}

	res := make([]float64, m)
	row := make([]float64, n)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		res[i] = l.intercept + floats.Dot(l.coef, row)
	}
	return res, nil
}

// Score computes the coefficient of determination of the prediction
func (l *LinearRegression) Score(x, y mat.Matrix) (float64, error) {
	if err := scoreValidate(x, y); err != nil {
		return 0.0, err
	}
	res, err := l.Predict(x)
	if err != nil {
		return 0.0, err
	}
	return rSquared(res, mat.Col(nil, 0, y)), nil
}

func (l *LinearRegression) Intercept() float64 {
	if l == nil {
		return math.NaN()
	}
	return l.intercept
}

func (l *LinearRegression) Coef() []float64 {
	if l == nil {
		return nil
	}
	c := make([]float64, len(l.coef))
	copy(c, l.coef)
	return c
}
