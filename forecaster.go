// Package aqi prepares a daily air quality table, trains an AQI model on it and forecasts the
// days that follow.
package aqi

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/stats"
	"github.com/aouyang1/go-aqi/timedataset"
	"github.com/go-echarts/go-echarts/v2/components"
)

var (
	ErrUntrainedForecaster = errors.New("forecaster has not been fit")
	ErrEmptyTable          = errors.New("no rows to fit")
)

const dailyFreq = 24 * time.Hour

// Forecaster prepares a daily table, fits an AQI model on it and forecasts future days
type Forecaster struct {
	opt     *Options
	trainer *forecast.Trainer

	table      timedataset.Table
	eval       *forecast.Evaluation
	fitResults *Results
}

// New creates a new instance of a Forecaster using the provided options. If no options are
// provided a default is used.
func New(opt *Options) (*Forecaster, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	trainer, err := forecast.NewTrainer(opt.Forecast)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize trainer, %w", err)
	}
	return &Forecaster{
		opt:     opt,
		trainer: trainer,
	}, nil
}

// Fit prepares the raw rows, splits them into a training and a test window and trains the
// model. A previous fit is replaced only when this one succeeds.
func (f *Forecaster) Fit(rows []timedataset.RawRow) error {
	if f == nil || f.trainer == nil {
		return ErrUntrainedForecaster
	}

	tbl, err := timedataset.Prepare(rows)
	if err != nil {
		return fmt.Errorf("unable to prepare table, %w", err)
	}
	if len(tbl) == 0 {
		return ErrEmptyTable
	}

	td, err := tbl.Dataset()
	if err != nil {
		return fmt.Errorf("unable to build AQI series, %w", err)
	}
	observed := td.DropNan()
	if observed.Len() == 0 {
		return fmt.Errorf("no AQI observations, %w", ErrEmptyTable)
	}
	days := timedataset.TimeSlice(observed.T)
	if freq, err := days.EstimateFreq(); err == nil && freq != dailyFreq {
		slog.Warn("AQI is not observed daily", "estimated_freq", freq.String(), "observed", observed.Len())
	}
	if missing := days.Missing(dailyFreq); missing > 0 {
		slog.Warn("AQI history has missing days", "missing", missing, "observed", observed.Len())
	}

	// only days with an AQI value are partitioned
	train, test, method := f.opt.Split.Split(tbl.Observed())
	eval, err := f.trainer.Train(train, test)
	if err != nil {
		return fmt.Errorf("unable to train %s split, %w", method, err)
	}
	eval.Method = method

	f.table = tbl
	f.eval = eval
	f.fitResults = newResults(eval.T, eval.Actual, eval.Predicted)
	return nil
}

// Table returns the prepared table of the last fit
func (f *Forecaster) Table() timedataset.Table {
	if f == nil {
		return nil
	}
	return f.table
}

// Evaluation returns the trained model along with its test partition scores
func (f *Forecaster) Evaluation() (*forecast.Evaluation, error) {
	if f == nil || f.eval == nil {
		return nil, ErrUntrainedForecaster
	}
	return f.eval, nil
}

// Model returns the trained model
func (f *Forecaster) Model() (*forecast.Model, error) {
	eval, err := f.Evaluation()
	if err != nil {
		return nil, err
	}
	return eval.Model, nil
}

// FitResults returns the actual and predicted AQI of the test partition
func (f *Forecaster) FitResults() *Results {
	if f == nil {
		return nil
	}
	return f.fitResults
}

// Summary describes the AQI history of the fit table
func (f *Forecaster) Summary() (*stats.Summary, error) {
	if f == nil || len(f.table) == 0 {
		return nil, ErrUntrainedForecaster
	}
	return stats.Summarize(f.table)
}

// Forecast predicts the days following the last observed day. A horizon of 0 uses the
// configured number of days.
func (f *Forecaster) Forecast(horizonDays int) ([]forecast.Row, error) {
	model, err := f.Model()
	if err != nil {
		return nil, err
	}
	if horizonDays == 0 {
		horizonDays = f.opt.HorizonDays
	}
	return forecast.Generate(model, f.table.LastDatetime(), horizonDays)
}

// PlotOpts sets the number of days to forecast in the plot. By default the configured horizon
// is used.
type PlotOpts struct {
	HorizonDays int
}

// PlotFit uses the Apache Echarts library to write an html page showing the history, the test
// partition predictions and the forecast along with the monthly mean and test residual
func (f *Forecaster) PlotFit(w io.Writer, opt *PlotOpts) error {
	var horizonDays int
	if opt != nil {
		horizonDays = opt.HorizonDays
	}
	rows, err := f.Forecast(horizonDays)
	if err != nil {
		return fmt.Errorf("unable to forecast horizon, %w", err)
	}

	monthly := stats.MonthlyMean(f.table)
	monthlyMean := make([]float64, len(f.table))
	for i, r := range f.table {
		monthlyMean[i] = monthly[r.Month-1].Mean
	}

	page := components.NewPage()
	page.AddCharts(
		LineForecaster(f.table, f.fitResults, rows),
		LineTSeries(
			"Monthly Mean AQI",
			[]string{"AQI", "Monthly Mean"},
			f.table.T(),
			[][]float64{
				f.table.AQI(),
				monthlyMean,
			},
		),
		LineTSeries(
			"Test Residual",
			[]string{"Residual"},
			f.fitResults.T,
			[][]float64{f.fitResults.Residual},
		),
	)
	return page.Render(w)
}
