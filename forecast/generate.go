package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/aouyang1/go-aqi/feature"
)

// DefaultHorizonDays is one year of daily forecasts
const DefaultHorizonDays = 365

var ErrInvalidHorizon = errors.New("forecast horizon must be at least one day")

// Row is a single forecasted day
type Row struct {
	Datetime     time.Time      `json:"datetime"`
	Vector       feature.Vector `json:"vector"`
	PredictedAQI float64        `json:"predicted_aqi"`
}

// Generate forecasts the AQI of each of the horizonDays calendar days following lastObserved.
// Future holidays are not known so every forecasted day has a holiday count of 0.
func Generate(model *Model, lastObserved time.Time, horizonDays int) ([]Row, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("got %d days, %w", horizonDays, ErrInvalidHorizon)
	}
	if model == nil {
		return nil, ErrUntrainedModel
	}

	last := time.Date(lastObserved.Year(), lastObserved.Month(), lastObserved.Day(), 0, 0, 0, 0, time.UTC)
	rows := make([]Row, horizonDays)
	vectors := make([]feature.Vector, horizonDays)
	for i := range rows {
		t := last.AddDate(0, 0, i+1)
		vectors[i] = feature.NewVector(t, 0)
		rows[i] = Row{
			Datetime: t,
			Vector:   vectors[i],
		}
	}

	predicted, err := model.Predict(vectors)
	if err != nil {
		return nil, fmt.Errorf("unable to predict forecast horizon, %w", err)
	}
	for i := range rows {
		rows[i].PredictedAQI = predicted[i]
	}
	return rows, nil
}

// T returns the datetime of every forecasted row
func T(rows []Row) []time.Time {
	t := make([]time.Time, len(rows))
	for i, r := range rows {
		t[i] = r.Datetime
	}
	return t
}

// PredictedAQI returns the forecasted AQI of every row
func PredictedAQI(rows []Row) []float64 {
	y := make([]float64, len(rows))
	for i, r := range rows {
		y[i] = r.PredictedAQI
	}
	return y
}
