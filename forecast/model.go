package forecast

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/go-aqi/feature"
	"github.com/aouyang1/go-aqi/forecast/util"
	"github.com/aouyang1/go-aqi/models"
	"github.com/goccy/go-json"
)

var ErrUntrainedModel = errors.New("model has not been trained yet")

// Model is a trained regression function from a feature vector to an AQI estimate along with
// a summary of how it was trained and how it scored. A Model is not modified after training.
type Model struct {
	TrainStartTime time.Time `json:"train_start_time"`
	TrainEndTime   time.Time `json:"train_end_time"`
	NumTrain       int       `json:"num_train"`
	NumTest        int       `json:"num_test"`

	Options     *Options          `json:"options"`
	Scores      *Scores           `json:"scores"`
	Importances []FeatureWeight   `json:"feature_importances"`
	Features    []feature.Feature `json:"-"`

	forest *models.RandomForestRegression
}

// FeatureWeight is the share of the squared error reduction attributed to a feature
type FeatureWeight struct {
	Labels map[string]string   `json:"labels"`
	Type   feature.FeatureType `json:"type"`
	Value  float64             `json:"value"`
}

func NewFeatureWeight(f feature.Feature, val float64) FeatureWeight {
	return FeatureWeight{
		Labels: f.Decode(),
		Type:   f.Type(),
		Value:  val,
	}
}

// Predict estimates the AQI of every vector with a single call to the underlying model
func (m *Model) Predict(vectors []feature.Vector) ([]float64, error) {
	if m == nil || m.forest == nil {
		return nil, ErrUntrainedModel
	}
	if len(vectors) == 0 {
		return []float64{}, nil
	}

	x, err := feature.NewVectorSet(vectors).Matrix(m.Features)
	if err != nil {
		return nil, fmt.Errorf("unable to build design matrix, %w", err)
	}
	return m.forest.Predict(x)
}

// Summary returns the indented json representation of the model
func (m *Model) Summary() ([]byte, error) {
	if m == nil {
		return nil, ErrUntrainedModel
	}
	return json.MarshalIndent(m, "", "  ")
}

func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sForecast:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sTraining Window: %s to %s\n", prefix, util.IndentExpand(indent, 1),
		m.TrainStartTime.Format(time.DateOnly), m.TrainEndTime.Format(time.DateOnly)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sObservations: train %d, test %d\n", prefix, util.IndentExpand(indent, 1),
		m.NumTrain, m.NumTest); err != nil {
		return err
	}

	if m.Options != nil && m.Options.Forest != nil {
		forest := m.Options.Forest
		if _, err := fmt.Fprintf(w, "%s%sForest: %d trees, seed %d\n", prefix, util.IndentExpand(indent, 1),
			forest.NumTrees, forest.Seed); err != nil {
			return err
		}
		if forest.Tree != nil {
			maxDepth := "unlimited"
			if forest.Tree.MaxDepth > 0 {
				maxDepth = fmt.Sprintf("%d", forest.Tree.MaxDepth)
			}
			if _, err := fmt.Fprintf(w, "%s%sMax Depth: %s    Min Samples Split: %d    Min Samples Leaf: %d\n",
				prefix, util.IndentExpand(indent, 2),
				maxDepth, forest.Tree.MinSamplesSplit, forest.Tree.MinSamplesLeaf); err != nil {
				return err
			}
		}
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sRMSE: %.3f    MAE: %.3f    R2: %.3f\n",
			prefix, util.IndentExpand(indent, 1),
			m.Scores.RMSE,
			m.Scores.MAE,
			m.Scores.R2,
		); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f\n",
			prefix, util.IndentExpand(indent, 1),
			m.Scores.MAPE,
			m.Scores.MSE,
		); err != nil {
			return err
		}
	}

	return m.tablePrintImportances(w, prefix, indent, 0)
}

func (m Model) tablePrintImportances(wr io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(wr, "%s%sFeature Importances:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(wr, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sType\tLabels\tValue\t\n", prefix, util.IndentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	for _, fw := range m.Importances {
		labelOut, err := json.Marshal(fw.Labels)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%.3f\t\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			fw.Type, string(labelOut), fw.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
