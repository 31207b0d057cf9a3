// Package figure renders the PNG charts of a prepared AQI table and its forecast
package figure

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/timedataset"
)

// Output file names of each figure
const (
	FileAQITrend       = "aqi_trend.png"
	FileMonthlyAverage = "monthly_aqi.png"
	FileSeasonal       = "seasonal_aqi.png"
	FileCorrelation    = "correlation_heatmap.png"
	FileForecast       = "aqi_forecast.png"
)

var ErrNoData = errors.New("no data to plot")

var (
	colorTeal   = color.RGBA{R: 0, G: 128, B: 128, A: 255}
	colorOrange = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	colorBlue   = color.RGBA{R: 49, G: 106, B: 168, A: 255}
	colorGray   = color.RGBA{R: 120, G: 120, B: 120, A: 160}
)

// Files lists every figure file name in report order
func Files() []string {
	return []string{
		FileAQITrend,
		FileMonthlyAverage,
		FileSeasonal,
		FileCorrelation,
		FileForecast,
	}
}

// Plotter writes figures into an output directory, creating it when missing
type Plotter struct {
	outputDir string
	width     vg.Length
	height    vg.Length
}

// NewPlotter creates a plotter writing 12x5 inch figures into outputDir
func NewPlotter(outputDir string) *Plotter {
	return &Plotter{
		outputDir: outputDir,
		width:     12 * vg.Inch,
		height:    5 * vg.Inch,
	}
}

// OutputDir returns the directory figures are written to
func (p *Plotter) OutputDir() string {
	return p.outputDir
}

// PlotAll renders every figure. A figure that cannot be rendered is skipped with a warning and
// the paths of the written figures are returned.
func (p *Plotter) PlotAll(tbl timedataset.Table, rows []forecast.Row) ([]string, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create figure directory, %w", err)
	}

	renderers := []func() (string, error){
		func() (string, error) { return p.AQITrend(tbl) },
		func() (string, error) { return p.MonthlyAverage(tbl) },
		func() (string, error) { return p.SeasonalDistribution(tbl) },
		func() (string, error) { return p.Correlation(tbl) },
		func() (string, error) { return p.ForecastResults(tbl, rows) },
	}

	paths := make([]string, 0, len(renderers))
	for i, render := range renderers {
		path, err := render()
		if err != nil {
			slog.Warn("skipping figure", "file", Files()[i], "error", err.Error())
			continue
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (p *Plotter) save(plt *plot.Plot, width, height vg.Length, filename string) (string, error) {
	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("unable to create figure directory, %w", err)
	}
	path := filepath.Join(p.outputDir, filename)
	if err := plt.Save(width, height, path); err != nil {
		return "", fmt.Errorf("unable to save %s, %w", filename, err)
	}
	slog.Debug("saved figure", "path", path)
	return path, nil
}

// timeXYs pairs each time with its value as unix seconds, skipping NaN values
func timeXYs(t []time.Time, y []float64) plotter.XYs {
	xys := make(plotter.XYs, 0, len(t))
	for i := range t {
		if math.IsNaN(y[i]) {
			continue
		}
		xys = append(xys, plotter.XY{X: float64(t[i].Unix()), Y: y[i]})
	}
	return xys
}

func newLine(xys plotter.XYs, c color.Color, width vg.Length) (*plotter.Line, error) {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = width
	return line, nil
}

func newTimePlot(title, yLabel string) *plot.Plot {
	plt := plot.New()
	plt.Title.Text = title
	plt.X.Label.Text = "Date"
	plt.Y.Label.Text = yLabel
	plt.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	plt.Add(plotter.NewGrid())
	return plt
}
