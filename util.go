package aqi

import (
	"math"
	"time"

	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/timedataset"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// gap is the echarts placeholder for a missing point
const gap = "-"

func lineValue(v float64) opts.LineData {
	if math.IsNaN(v) {
		return opts.LineData{Value: gap}
	}
	return opts.LineData{Value: v}
}

func axisLabels(t []time.Time) []string {
	labels := make([]string, len(t))
	for i, tPnt := range t {
		labels[i] = tPnt.Format(time.DateOnly)
	}
	return labels
}

// LineTSeries generates an echart multi-line chart for some arbitrary time/value combination. The
// input y is a slice of series that must each have the same length as the input time slice. NaN
// values are drawn as gaps.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	line = line.SetXAxis(axisLabels(t))
	for i, series := range seriesName {
		lineData := make([]opts.LineData, 0, len(t))
		for j := range t {
			v := math.NaN()
			if i < len(y) && j < len(y[i]) {
				v = y[i][j]
			}
			lineData = append(lineData, lineValue(v))
		}
		line = line.AddSeries(series, lineData)
	}
	return line
}

// LineForecaster generates an echart line chart of the observed AQI, the predictions over the
// test partition and the forecasted days on a single date axis
func LineForecaster(tbl timedataset.Table, res *Results, rows []forecast.Row) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "AQI Forecast Fit",
			},
		),
	)

	n := len(tbl) + len(rows)
	t := make([]time.Time, 0, n)
	actual := make([]float64, 0, n)
	for _, r := range tbl {
		t = append(t, r.Datetime)
		actual = append(actual, r.AQI)
	}

	predicted := make([]float64, n)
	for i := range predicted {
		predicted[i] = math.NaN()
	}
	if res != nil {
		// test rows are a subset of the table so match them by date
		idx := make(map[time.Time]int, len(tbl))
		for i, r := range tbl {
			if _, exists := idx[r.Datetime]; !exists {
				idx[r.Datetime] = i
			}
		}
		for i, tPnt := range res.T {
			if j, exists := idx[tPnt]; exists {
				predicted[j] = res.Predicted[i]
			}
		}
	}

	forecasted := make([]float64, n)
	for i := range forecasted {
		forecasted[i] = math.NaN()
	}
	for i, r := range rows {
		t = append(t, r.Datetime)
		actual = append(actual, math.NaN())
		forecasted[len(tbl)+i] = r.PredictedAQI
	}

	lineDataActual := make([]opts.LineData, 0, n)
	lineDataPredicted := make([]opts.LineData, 0, n)
	lineDataForecast := make([]opts.LineData, 0, n)
	for i := 0; i < n; i++ {
		lineDataActual = append(lineDataActual, lineValue(actual[i]))
		lineDataPredicted = append(lineDataPredicted, lineValue(predicted[i]))
		lineDataForecast = append(lineDataForecast, lineValue(forecasted[i]))
	}

	line.SetXAxis(axisLabels(t)).
		AddSeries("Actual", lineDataActual).
		AddSeries("Test Prediction", lineDataPredicted).
		AddSeries("Forecast", lineDataForecast)
	return line
}
