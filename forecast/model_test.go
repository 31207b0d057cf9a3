package forecast

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/aouyang1/go-aqi/feature"
	"github.com/aouyang1/go-aqi/models"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelTablePrint(t *testing.T) {
	testData := map[string]struct {
		m        Model
		prefix   string
		indent   string
		expected string
	}{
		"no input": {
			expected: `Forecast:
Training Window: 0001-01-01 to 0001-01-01
Observations: train 0, test 0
Feature Importances:
 Type Labels Value
`,
		},
		"with options and scores": {
			m: Model{
				TrainStartTime: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				TrainEndTime:   time.Date(2022, 12, 31, 0, 0, 0, 0, time.UTC),
				NumTrain:       365,
				NumTest:        365,
				Options: &Options{
					Forest: &models.ForestOptions{
						NumTrees: 100,
						Seed:     42,
						Tree:     &models.TreeOptions{MinSamplesSplit: 2, MinSamplesLeaf: 1},
					},
				},
				Scores: &Scores{
					RMSE: 1.23456,
					MAE:  0.5,
					R2:   0.98765,
					MSE:  1.5241,
					MAPE: 0.01,
				},
				Importances: []FeatureWeight{
					NewFeatureWeight(feature.NewTime(feature.LabelTimeMonth), 0.9),
					NewFeatureWeight(feature.NewEvent(feature.LabelEventHolidays), 0.1),
				},
			},
			indent: "  ",
			expected: `Forecast:
  Training Window: 2022-01-01 to 2022-12-31
  Observations: train 365, test 365
  Forest: 100 trees, seed 42
    Max Depth: unlimited    Min Samples Split: 2    Min Samples Leaf: 1
Scores:
  RMSE: 1.235    MAE: 0.500    R2: 0.988
  MAPE: 0.010    MSE: 1.524
Feature Importances:
    Type              Labels Value
    time    {"name":"month"} 0.900
   event {"name":"holidays"} 0.100
`,
		},
		"with prefix and max depth": {
			m: Model{
				TrainStartTime: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
				TrainEndTime:   time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC),
				NumTrain:       31,
				NumTest:        8,
				Options: &Options{
					Forest: &models.ForestOptions{
						NumTrees: 5,
						Seed:     1,
						Tree:     &models.TreeOptions{MaxDepth: 3, MinSamplesSplit: 4, MinSamplesLeaf: 2},
					},
				},
			},
			prefix: "--",
			indent: "**",
			expected: `--Forecast:
--**Training Window: 2022-01-01 to 2022-01-31
--**Observations: train 31, test 8
--**Forest: 5 trees, seed 1
--****Max Depth: 3    Min Samples Split: 4    Min Samples Leaf: 2
--Feature Importances:
 --**Type Labels Value
`,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var b bytes.Buffer
			require.Nil(t, td.m.TablePrint(&b, td.prefix, td.indent))
			assert.Equal(t, td.expected, b.String())
		})
	}
}

func TestModelPredict(t *testing.T) {
	var m *Model
	_, err := m.Predict([]feature.Vector{{Month: 1}})
	assert.ErrorIs(t, err, ErrUntrainedModel)

	_, err = (&Model{}).Predict(nil)
	assert.ErrorIs(t, err, ErrUntrainedModel)

	tbl := monthlyTable(t, 2022, 2022)
	tr, err := NewTrainer(fastOptions())
	require.Nil(t, err)
	eval, err := tr.Train(tbl[:300], tbl[300:])
	require.Nil(t, err)

	res, err := eval.Model.Predict(nil)
	require.Nil(t, err)
	assert.Empty(t, res)

	res, err = eval.Model.Predict([]feature.Vector{
		feature.NewVector(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), 0),
		feature.NewVector(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), 2),
	})
	require.Nil(t, err)
	assert.InDeltaSlice(t, []float64{40 + 25*3, 40 + 25*7}, res, 1e-6)
}

func TestModelSummary(t *testing.T) {
	tbl := monthlyTable(t, 2022, 2022)
	tr, err := NewTrainer(fastOptions())
	require.Nil(t, err)
	eval, err := tr.Train(tbl[:300], tbl[300:])
	require.Nil(t, err)

	// r-squared of a constant series is undefined
	eval.Model.Scores.R2 = math.NaN()

	out, err := eval.Model.Summary()
	require.Nil(t, err)

	var summary map[string]any
	require.Nil(t, json.Unmarshal(out, &summary))
	assert.Equal(t, float64(300), summary["num_train"])
	assert.Nil(t, summary["scores"].(map[string]any)["r_squared"])
	assert.Len(t, summary["feature_importances"], 4)
	assert.Equal(t, float64(10), summary["options"].(map[string]any)["forest"].(map[string]any)["num_trees"])

	var nilModel *Model
	_, err = nilModel.Summary()
	assert.ErrorIs(t, err, ErrUntrainedModel)
}
