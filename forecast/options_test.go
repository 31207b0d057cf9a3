package forecast

import (
	"testing"

	"github.com/aouyang1/go-aqi/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *Options
		numTrees int
		seed     uint64
		err      error
	}{
		"nil": {
			numTrees: models.DefaultNumTrees,
			seed:     models.DefaultSeed,
		},
		"unset forest": {
			opt:      &Options{},
			numTrees: models.DefaultNumTrees,
			seed:     models.DefaultSeed,
		},
		"custom forest": {
			opt:      &Options{Forest: &models.ForestOptions{NumTrees: 10, Seed: 3}},
			numTrees: 10,
			seed:     3,
		},
		"invalid forest": {
			opt: &Options{Forest: &models.ForestOptions{NumTrees: -1}},
			err: models.ErrNegativeNumTrees,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.numTrees, opt.Forest.NumTrees)
			assert.Equal(t, td.seed, opt.Forest.Seed)
			assert.NotNil(t, opt.Forest.Tree)
		})
	}
}
