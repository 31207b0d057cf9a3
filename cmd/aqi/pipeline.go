package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	aqi "github.com/aouyang1/go-aqi"
	"github.com/aouyang1/go-aqi/figure"
	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/loader"
	"github.com/aouyang1/go-aqi/report"
	"github.com/goccy/go-json"
)

const (
	defaultOutDir = "outputs"

	forecastFile = "forecast.csv"
	modelFile    = "model.json"
	fitPlotFile  = "forecast_fit.html"
	figuresDir   = "figures"
	reportFile   = "reports/Delhi_AQI_Report.pdf"
)

var ErrNoDataPath = errors.New("no data file provided")

type config struct {
	Data    string       `json:"data"`
	Out     string       `json:"out"`
	Options *aqi.Options `json:"options"`
}

// loadConfig reads the json config at path. An empty path returns the default config.
func loadConfig(path string) (*config, error) {
	cfg := &config{Options: aqi.NewDefaultOptions()}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse %s, %w", path, err)
	}
	if cfg.Options == nil {
		cfg.Options = aqi.NewDefaultOptions()
	}
	return cfg, nil
}

func (c *config) validate() error {
	if c.Data == "" {
		return ErrNoDataPath
	}
	opt, err := c.Options.Validate()
	if err != nil {
		return err
	}
	c.Options = opt
	return nil
}

// outputs lists everything written by a run
type outputs struct {
	Forecast string
	Model    string
	FitPlot  string
	Figures  []string
	Report   string
}

func evaluate(cfg *config, w io.Writer) (*aqi.Forecaster, error) {
	rows, err := loader.Load(cfg.Data)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded data", "path", cfg.Data, "rows", len(rows))

	f, err := aqi.New(cfg.Options)
	if err != nil {
		return nil, err
	}
	if err := f.Fit(rows); err != nil {
		return nil, err
	}

	eval, err := f.Evaluation()
	if err != nil {
		return nil, err
	}
	slog.Info("trained model", "split", eval.Method.String(), "train", eval.Model.NumTrain, "test", eval.Model.NumTest)
	if err := eval.Model.TablePrint(w, "", "  "); err != nil {
		return nil, err
	}
	if eval.BaselineScores != nil {
		if _, err := fmt.Fprintf(w, "Linear Baseline:\n  RMSE: %.3f    MAE: %.3f    R2: %.3f\n",
			eval.BaselineScores.RMSE, eval.BaselineScores.MAE, eval.BaselineScores.R2); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func run(cfg *config, w io.Writer) (*outputs, error) {
	f, err := evaluate(cfg, w)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create output directory, %w", err)
	}

	rows, err := f.Forecast(cfg.Options.HorizonDays)
	if err != nil {
		return nil, err
	}
	out := &outputs{
		Forecast: filepath.Join(cfg.Out, forecastFile),
		Model:    filepath.Join(cfg.Out, modelFile),
		FitPlot:  filepath.Join(cfg.Out, fitPlotFile),
		Report:   filepath.Join(cfg.Out, reportFile),
	}
	if err := loader.WriteForecastFile(out.Forecast, rows); err != nil {
		return nil, err
	}

	model, err := f.Model()
	if err != nil {
		return nil, err
	}
	if err := writeModel(out.Model, model); err != nil {
		return nil, err
	}

	if err := writeFitPlot(out.FitPlot, f, cfg.Options.HorizonDays); err != nil {
		return nil, err
	}

	figDir := filepath.Join(cfg.Out, figuresDir)
	out.Figures, err = figure.NewPlotter(figDir).PlotAll(f.Table(), rows)
	if err != nil {
		return nil, err
	}

	summary, err := f.Summary()
	if err != nil {
		return nil, err
	}
	if err := report.Generate(out.Report, figDir, &report.Content{Summary: summary, Scores: model.Scores}); err != nil {
		return nil, err
	}

	slog.Info("pipeline complete", "out", cfg.Out, "forecast_days", len(rows), "figures", len(out.Figures))
	return out, nil
}

func writeModel(path string, model *forecast.Model) error {
	summary, err := model.Summary()
	if err != nil {
		return err
	}
	return os.WriteFile(path, summary, 0o644)
}

func writeFitPlot(path string, f *aqi.Forecaster, horizonDays int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.PlotFit(file, &aqi.PlotOpts{HorizonDays: horizonDays}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
