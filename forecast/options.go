package forecast

import (
	"fmt"

	"github.com/aouyang1/go-aqi/models"
)

// Options configures the model fit by the trainer
type Options struct {
	Forest *models.ForestOptions `json:"forest"`

	// Baseline is the linear regression scored alongside the forest on the same partitions
	Baseline *models.LinearOptions `json:"baseline"`
}

// NewDefaultOptions returns a 100 tree random forest seeded with 42 and a linear baseline
// with an intercept
func NewDefaultOptions() *Options {
	return &Options{
		Forest:   models.NewDefaultForestOptions(),
		Baseline: models.NewDefaultLinearOptions(),
	}
}

// Validate fills unset options with defaults and checks the forest options
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	forest, err := o.Forest.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid forest options, %w", err)
	}
	o.Forest = forest

	baseline, err := o.Baseline.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid baseline options, %w", err)
	}
	o.Baseline = baseline
	return o, nil
}
