package aqi

import (
	"fmt"

	"github.com/aouyang1/go-aqi/forecast"
	"github.com/aouyang1/go-aqi/timedataset"
)

// Options configures how the forecaster partitions, trains and forecasts
type Options struct {
	Split    *timedataset.SplitStrategy `json:"split"`
	Forecast *forecast.Options          `json:"forecast"`

	// HorizonDays is the number of days forecasted past the last observation when no horizon
	// is requested
	HorizonDays int `json:"horizon_days"`
}

// NewDefaultOptions splits at 2024-01-01, trains a 100 tree forest and forecasts one year
func NewDefaultOptions() *Options {
	return &Options{
		Split:       timedataset.NewDefaultSplitStrategy(),
		Forecast:    forecast.NewDefaultOptions(),
		HorizonDays: forecast.DefaultHorizonDays,
	}
}

// Validate fills unset options with defaults and checks each nested option
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}

	split, err := o.Split.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid split options, %w", err)
	}
	o.Split = split

	fOpt, err := o.Forecast.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid forecast options, %w", err)
	}
	o.Forecast = fOpt

	if o.HorizonDays < 0 {
		return nil, fmt.Errorf("got %d days, %w", o.HorizonDays, forecast.ErrInvalidHorizon)
	}
	if o.HorizonDays == 0 {
		o.HorizonDays = forecast.DefaultHorizonDays
	}
	return o, nil
}
