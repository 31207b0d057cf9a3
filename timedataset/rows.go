package timedataset

import (
	"math"
	"time"

	"github.com/aouyang1/go-aqi/feature"
)

// Pollutant names as they appear in the source table
const (
	PollutantPM25  = "PM2.5"
	PollutantPM10  = "PM10"
	PollutantNO2   = "NO2"
	PollutantSO2   = "SO2"
	PollutantCO    = "CO"
	PollutantOzone = "Ozone"
	LabelAQI       = "AQI"
)

// Pollutants lists the measured pollutant columns in source order
func Pollutants() []string {
	return []string{
		PollutantPM25,
		PollutantPM10,
		PollutantNO2,
		PollutantSO2,
		PollutantCO,
		PollutantOzone,
	}
}

// RawRow is a single day of measurements with the date split into its calendar
// components.
type RawRow struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Date  int `json:"date"`

	AQI   float64 `json:"aqi"`
	PM25  float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
	NO2   float64 `json:"no2"`
	SO2   float64 `json:"so2"`
	CO    float64 `json:"co"`
	Ozone float64 `json:"ozone"`

	HolidayCount float64 `json:"holiday_count"`
}

// Pollutant returns the measurement for one of the Pollutants names or AQI. ok is false
// for unknown names.
func (r RawRow) Pollutant(name string) (float64, bool) {
	switch name {
	case PollutantPM25:
		return r.PM25, true
	case PollutantPM10:
		return r.PM10, true
	case PollutantNO2:
		return r.NO2, true
	case PollutantSO2:
		return r.SO2, true
	case PollutantCO:
		return r.CO, true
	case PollutantOzone:
		return r.Ozone, true
	case LabelAQI:
		return r.AQI, true
	}
	return 0, false
}

// PreparedRow is a RawRow with its derived timestamp and categorical features
type PreparedRow struct {
	RawRow

	Datetime  time.Time        `json:"datetime"`
	Season    feature.Season   `json:"season"`
	Category  feature.Category `json:"aqi_category"`
	DayOfWeek int              `json:"day_of_week"`
}

// Raw returns the source measurements of the row
func (r PreparedRow) Raw() RawRow {
	return r.RawRow
}

// Vector returns the model input of the row
func (r PreparedRow) Vector() feature.Vector {
	return feature.NewVector(r.Datetime, r.HolidayCount)
}

// Table is a sequence of prepared rows sorted ascending by Datetime
type Table []PreparedRow

// T returns the datetime of every row
func (tbl Table) T() []time.Time {
	t := make([]time.Time, len(tbl))
	for i, r := range tbl {
		t[i] = r.Datetime
	}
	return t
}

// AQI returns the AQI of every row
func (tbl Table) AQI() []float64 {
	y := make([]float64, len(tbl))
	for i, r := range tbl {
		y[i] = r.AQI
	}
	return y
}

// Column returns the values of a pollutant or AQI column. ok is false for unknown names.
func (tbl Table) Column(name string) ([]float64, bool) {
	y := make([]float64, len(tbl))
	for i, r := range tbl {
		val, ok := r.Pollutant(name)
		if !ok {
			return nil, false
		}
		y[i] = val
	}
	return y, true
}

// Observed returns the rows that have an AQI value in their original order
func (tbl Table) Observed() Table {
	observed := make(Table, 0, len(tbl))
	for _, r := range tbl {
		if !math.IsNaN(r.AQI) {
			observed = append(observed, r)
		}
	}
	return observed
}

// Vectors returns the model input of every row
func (tbl Table) Vectors() []feature.Vector {
	vectors := make([]feature.Vector, len(tbl))
	for i, r := range tbl {
		vectors[i] = r.Vector()
	}
	return vectors
}

// Raw returns the source measurements of every row
func (tbl Table) Raw() []RawRow {
	rows := make([]RawRow, len(tbl))
	for i, r := range tbl {
		rows[i] = r.Raw()
	}
	return rows
}

// Dataset returns the AQI series of the table
func (tbl Table) Dataset() (*TimeDataset, error) {
	return NewUnivariateDataset(tbl.T(), tbl.AQI())
}

// LastDatetime returns the most recent datetime in the table or the zero time if empty
func (tbl Table) LastDatetime() time.Time {
	_, last := TimeSlice(tbl.T()).Span()
	return last
}
