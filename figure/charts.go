package figure

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/stats"
	"github.com/aouyang1/go-aqi/timedataset"
)

// AQITrend plots the daily AQI over the whole table
func (p *Plotter) AQITrend(tbl timedataset.Table) (string, error) {
	xys := timeXYs(tbl.T(), tbl.AQI())
	if len(xys) == 0 {
		return "", fmt.Errorf("aqi trend, %w", ErrNoData)
	}

	plt := newTimePlot("Daily AQI Trend", "AQI")
	line, err := newLine(xys, colorTeal, vg.Points(1))
	if err != nil {
		return "", err
	}
	plt.Add(line)
	return p.save(plt, p.width, p.height, FileAQITrend)
}

// MonthlyAverage plots the mean AQI of each calendar month as bars
func (p *Plotter) MonthlyAverage(tbl timedataset.Table) (string, error) {
	means := stats.MonthlyMean(tbl)

	vals := make(plotter.Values, len(means))
	names := make([]string, len(means))
	var observed int
	for i, mm := range means {
		names[i] = fmt.Sprintf("%d", mm.Month)
		if mm.Count == 0 {
			continue
		}
		vals[i] = mm.Mean
		observed++
	}
	if observed == 0 {
		return "", fmt.Errorf("monthly average, %w", ErrNoData)
	}

	plt := plot.New()
	plt.Title.Text = "Average Monthly AQI"
	plt.X.Label.Text = "Month"
	plt.Y.Label.Text = "AQI"

	bars, err := plotter.NewBarChart(vals, vg.Points(30))
	if err != nil {
		return "", err
	}
	bars.Color = colorBlue
	bars.LineStyle.Width = 0
	plt.Add(bars)
	plt.NominalX(names...)
	return p.save(plt, 10*vg.Inch, p.height, FileMonthlyAverage)
}

// SeasonalDistribution draws an AQI box plot per season in canonical season order
func (p *Plotter) SeasonalDistribution(tbl timedataset.Table) (string, error) {
	groups := stats.SeasonalGroups(tbl)

	plt := plot.New()
	plt.Title.Text = "Seasonal AQI Distribution"
	plt.X.Label.Text = "Season"
	plt.Y.Label.Text = "AQI"

	names := make([]string, len(groups))
	var observed int
	for i, g := range groups {
		names[i] = g.Season.String()
		if len(g.AQI) == 0 {
			continue
		}
		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(g.AQI))
		if err != nil {
			return "", err
		}
		box.FillColor = colorBlue
		plt.Add(box)
		observed++
	}
	if observed == 0 {
		return "", fmt.Errorf("seasonal distribution, %w", ErrNoData)
	}
	plt.NominalX(names...)
	return p.save(plt, 10*vg.Inch, 6*vg.Inch, FileSeasonal)
}

// correlationGrid adapts a correlation matrix to a heat map grid. Undefined correlations are
// drawn as 0.
type correlationGrid struct {
	corr *stats.Correlation
}

func (g correlationGrid) Dims() (int, int) {
	n := len(g.corr.Labels)
	return n, n
}

func (g correlationGrid) Z(c, r int) float64 {
	v := g.corr.Matrix.At(r, c)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

// Correlation draws the annotated correlation heat map of the pollutants and AQI
func (p *Plotter) Correlation(tbl timedataset.Table) (string, error) {
	corr, err := stats.CorrelationMatrix(tbl)
	if err != nil {
		return "", fmt.Errorf("correlation, %w", err)
	}
	grid := correlationGrid{corr: corr}

	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	heat := plotter.NewHeatMap(grid, cmap.Palette(255))
	heat.Min = -1
	heat.Max = 1

	n := len(corr.Labels)
	xys := make(plotter.XYs, 0, n*n)
	annotations := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			annotations = append(annotations, fmt.Sprintf("%.2f", corr.Matrix.At(r, c)))
		}
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: annotations})
	if err != nil {
		return "", err
	}

	plt := plot.New()
	plt.Title.Text = "Correlation Matrix of Pollutants"
	plt.Add(heat, labels)
	plt.NominalX(corr.Labels...)
	plt.NominalY(corr.Labels...)
	return p.save(plt, 10*vg.Inch, 8*vg.Inch, FileCorrelation)
}

// ForecastResults plots the historical AQI with the forecast appended
func (p *Plotter) ForecastResults(tbl timedataset.Table, rows []forecast.Row) (string, error) {
	historical := timeXYs(tbl.T(), tbl.AQI())
	predicted := timeXYs(forecast.T(rows), forecast.PredictedAQI(rows))
	if len(historical) == 0 || len(predicted) == 0 {
		return "", fmt.Errorf("forecast results, %w", ErrNoData)
	}

	plt := newTimePlot("AQI Forecast: Historical vs Prediction", "AQI")
	histLine, err := newLine(historical, colorGray, vg.Points(1))
	if err != nil {
		return "", err
	}
	forecastLine, err := newLine(predicted, colorOrange, vg.Points(2))
	if err != nil {
		return "", err
	}
	plt.Add(histLine, forecastLine)
	plt.Legend.Add("Historical Data", histLine)
	plt.Legend.Add(fmt.Sprintf("Forecast (Next %d Days)", len(rows)), forecastLine)
	plt.Legend.Top = true
	return p.save(plt, p.width, 6*vg.Inch, FileForecast)
}
