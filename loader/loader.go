package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aouyang1/go-aqi/event"
	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/timedataset"
)

// Column names of the daily source table
const (
	ColumnYear     = "Year"
	ColumnMonth    = "Month"
	ColumnDate     = "Date"
	ColumnHolidays = "Holidays_Count"
	ColumnDays     = "Days"
)

var (
	ErrFileNotFound  = errors.New("data file not found")
	ErrMissingColumn = errors.New("missing required column")
	ErrNoHeader      = errors.New("no header row")
	ErrInvalidValue  = errors.New("invalid value")
)

// RequiredColumns lists the columns every source table must carry
func RequiredColumns() []string {
	cols := []string{ColumnYear, ColumnMonth, ColumnDate, timedataset.LabelAQI}
	return append(cols, timedataset.Pollutants()...)
}

// Load reads the daily table stored as csv at path
func Load(path string) ([]timedataset.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s, %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("unable to open %s, %w", path, err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s, %w", path, err)
	}
	return rows, nil
}

// Read parses a daily table from csv. Columns are looked up by header name so their order does
// not matter. Missing or unparseable measurements are read as NaN. When the Holidays_Count
// column is absent the count is derived from the holiday calendar.
func Read(r io.Reader) ([]timedataset.RawRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("unable to read header, %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, col := range RequiredColumns() {
		if _, exists := index[col]; !exists {
			return nil, fmt.Errorf("%s, %w", col, ErrMissingColumn)
		}
	}
	holidayIdx, hasHolidays := index[ColumnHolidays]

	var rows []timedataset.RawRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read line %d, %w", line, err)
		}

		var row timedataset.RawRow
		if row.Year, err = parseInt(record[index[ColumnYear]]); err != nil {
			return nil, fmt.Errorf("line %d, %s, %w", line, ColumnYear, err)
		}
		if row.Month, err = parseInt(record[index[ColumnMonth]]); err != nil {
			return nil, fmt.Errorf("line %d, %s, %w", line, ColumnMonth, err)
		}
		if row.Date, err = parseInt(record[index[ColumnDate]]); err != nil {
			return nil, fmt.Errorf("line %d, %s, %w", line, ColumnDate, err)
		}

		row.AQI = parseFloat(record[index[timedataset.LabelAQI]])
		row.PM25 = parseFloat(record[index[timedataset.PollutantPM25]])
		row.PM10 = parseFloat(record[index[timedataset.PollutantPM10]])
		row.NO2 = parseFloat(record[index[timedataset.PollutantNO2]])
		row.SO2 = parseFloat(record[index[timedataset.PollutantSO2]])
		row.CO = parseFloat(record[index[timedataset.PollutantCO]])
		row.Ozone = parseFloat(record[index[timedataset.PollutantOzone]])

		if hasHolidays {
			row.HolidayCount = parseFloat(record[holidayIdx])
			if math.IsNaN(row.HolidayCount) {
				row.HolidayCount = 0
			}
		}
		rows = append(rows, row)
	}

	if !hasHolidays {
		slog.Warn("no holiday count column, deriving from the holiday calendar", "column", ColumnHolidays, "rows", len(rows))
		deriveHolidayCounts(rows)
	}
	return rows, nil
}

func deriveHolidayCounts(rows []timedataset.RawRow) {
	t := make([]time.Time, len(rows))
	for i, r := range rows {
		t[i] = time.Date(r.Year, time.Month(r.Month), r.Date, 0, 0, 0, 0, time.UTC)
	}
	for i, count := range event.Counts(t) {
		rows[i].HolidayCount = count
	}
}

// parseInt accepts integral values written as floats such as 2021.0
func parseInt(s string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v != math.Trunc(v) {
		return 0, fmt.Errorf("%q is not an integer, %w", s, ErrInvalidValue)
	}
	return int(v), nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ForecastHeader is the header written by WriteForecast
func ForecastHeader() []string {
	return []string{"Datetime", ColumnMonth, ColumnYear, ColumnDays, ColumnHolidays, "Predicted_AQI"}
}

// WriteForecast writes the forecasted days as csv
func WriteForecast(w io.Writer, rows []forecast.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ForecastHeader()); err != nil {
		return fmt.Errorf("unable to write header, %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Datetime.Format(time.DateOnly),
			strconv.Itoa(r.Vector.Month),
			strconv.Itoa(r.Vector.Year),
			strconv.Itoa(r.Vector.DayOfWeek),
			strconv.FormatFloat(r.Vector.HolidayCount, 'f', -1, 64),
			strconv.FormatFloat(r.PredictedAQI, 'f', 3, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write %s, %w", record[0], err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteForecastFile writes the forecasted days as csv to path, creating its directory if needed
func WriteForecastFile(path string, rows []forecast.Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("unable to create output directory, %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s, %w", path, err)
	}
	if err := WriteForecast(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
