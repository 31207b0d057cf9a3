// Package report assembles the analysis figures and findings into a PDF
package report

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/aouyang1/go-aqi/feature"
	"github.com/aouyang1/go-aqi/figure"
	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/stats"
)

const (
	Title     = "The Air Quality Story of Delhi"
	Objective = "The goal of this project is to analyze air quality trends in Delhi (2021-2024), " +
		"understand the impact of various pollutants, and predict future AQI levels using machine learning."

	// image size in points on a letter page
	imageWidth  = 400.0
	imageHeight = 200.0

	fontFamily = "Helvetica"
)

var ErrNoOutputPath = errors.New("no report output path")

// Insight is a single headed finding
type Insight struct {
	Heading string
	Text    string
}

// Figure is a figure file name and the caption shown above it
type Figure struct {
	File    string
	Caption string
}

// Content is the optional data driven part of the report
type Content struct {
	Summary *stats.Summary
	Scores  *forecast.Scores
}

// Insights returns the standing conclusions of the analysis
func Insights() []Insight {
	return []Insight{
		{"Seasonality", "Air quality significantly worsens in Winter (Dec-Feb) due to temperature inversion and lower wind speeds."},
		{"Major Pollutants", "PM2.5 and PM10 are the primary contributors to poor AQI and are highly correlated."},
		{"Prediction", "The Random Forest model forecasts a recurring pattern of 'Severe' AQI in the upcoming winter months."},
		{"Recommendation", "Stricter pollution control measures are needed specifically during the pre-winter months (Oct-Nov)."},
	}
}

// Figures lists the figures in report order
func Figures() []Figure {
	return []Figure{
		{figure.FileAQITrend, "Long-term Daily AQI Trend"},
		{figure.FileMonthlyAverage, "Average Monthly AQI"},
		{figure.FileSeasonal, "Seasonal AQI Distribution"},
		{figure.FileCorrelation, "Correlation Matrix of Pollutants"},
		{figure.FileForecast, "12-Month AQI Forecast"},
	}
}

// SummaryInsights describes the observed history
func SummaryInsights(s *stats.Summary) []Insight {
	if s == nil {
		return nil
	}
	insights := []Insight{
		{"Observed Period", fmt.Sprintf("%s to %s, %d days with a mean AQI of %.1f.",
			s.Start.Format(time.DateOnly), s.End.Format(time.DateOnly), s.Days, s.MeanAQI)},
		{"Peak Day", fmt.Sprintf("The highest AQI of %.0f was recorded on %s.",
			s.MaxAQI, s.MaxAQIDate.Format(time.DateOnly))},
	}
	if s.WorstMonth.Count > 0 {
		insights = append(insights, Insight{"Worst Month", fmt.Sprintf("%s averaged an AQI of %.1f.",
			time.Month(s.WorstMonth.Month), s.WorstMonth.Mean)})
	}
	insights = append(insights, Insight{"Worst Season", fmt.Sprintf("%s averaged an AQI of %.1f.",
		s.WorstSeason, s.WorstSeasonMean)})

	var severe float64
	for _, c := range s.Categories {
		if c.Category.Severity() >= feature.VeryPoor.Severity() {
			severe += c.Share
		}
	}
	insights = append(insights, Insight{"Unhealthy Days", fmt.Sprintf(
		"%.1f%% of days were Very Poor or Severe and %d days were unusual outliers.", 100*severe, s.OutlierDays)})
	return insights
}

// Generate writes the report to outputPath, creating its directory if needed. Figures are read
// from figuresDir and any that are missing or unreadable are skipped with a warning.
func Generate(outputPath, figuresDir string, content *Content) error {
	if outputPath == "" {
		return ErrNoOutputPath
	}
	if content == nil {
		content = &Content{}
	}
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create report directory, %w", err)
		}
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(72, 72, 72)
	pdf.SetAutoPageBreak(true, 72)
	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 20)
	pdf.CellFormat(0, 28, Title, "", 1, "C", false, 0, "")
	pdf.Ln(12)

	heading(pdf, "1. Objective")
	body(pdf, Objective)
	pdf.Ln(12)

	heading(pdf, "2. Key Insights & Conclusion")
	for _, in := range append(Insights(), SummaryInsights(content.Summary)...) {
		bullet(pdf, in)
	}
	pdf.Ln(12)

	if content.Scores != nil {
		heading(pdf, "Model Evaluation")
		scoreTable(pdf, content.Scores)
		pdf.Ln(12)
	}

	heading(pdf, "3. Visualizations")
	for _, f := range Figures() {
		path := filepath.Join(figuresDir, f.File)
		if err := checkImage(path); err != nil {
			slog.Warn("skipping report figure", "path", path, "error", err.Error())
			continue
		}
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 18, f.Caption+":", "", 1, "L", false, 0, "")
		pdf.ImageOptions(path, -1, 0, imageWidth, imageHeight, true,
			fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
		pdf.Ln(12)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("unable to write report %s, %w", outputPath, err)
	}
	return nil
}

func heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 20, text, "", 1, "L", false, 0, "")
}

func body(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, 14, text, "", "L", false)
}

func bullet(pdf *fpdf.Fpdf, in Insight) {
	pdf.SetFont(fontFamily, "B", 11)
	label := "- " + in.Heading + ": "
	pdf.CellFormat(pdf.GetStringWidth(label), 14, label, "", 0, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(0, 14, in.Text, "", "L", false)
	pdf.Ln(6)
}

func scoreTable(pdf *fpdf.Fpdf, s *forecast.Scores) {
	rows := [][2]string{
		{"RMSE", formatScore(s.RMSE)},
		{"MAE", formatScore(s.MAE)},
		{"R2", formatScore(s.R2)},
		{"MAPE", formatScore(s.MAPE)},
	}
	pdf.SetFont(fontFamily, "B", 11)
	pdf.CellFormat(100, 16, "Metric", "1", 0, "L", false, 0, "")
	pdf.CellFormat(100, 16, "Value", "1", 1, "R", false, 0, "")
	pdf.SetFont(fontFamily, "", 11)
	for _, r := range rows {
		pdf.CellFormat(100, 16, r[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(100, 16, r[1], "1", 1, "R", false, 0, "")
	}
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}

// checkImage verifies the figure exists and decodes as an image
func checkImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("unable to decode image, %w", err)
	}
	return nil
}
