package forecast

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aouyang1/go-aqi/feature"
	"github.com/aouyang1/go-aqi/models"
	"github.com/aouyang1/go-aqi/timedataset"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUninitializedTrainer = errors.New("uninitialized trainer")
	ErrFit                  = errors.New("unable to fit model")
	ErrEmptyPartition       = errors.New("partition has no observations")
	ErrMissingColumn        = errors.New("missing required column")
)

// Evaluation is the result of a training run, the trained model along with the test partition
// it was scored on
type Evaluation struct {
	Model  *Model
	Scores *Scores

	// BaselineScores are the test scores of a linear regression on the same features. nil when
	// the baseline could not be fit.
	BaselineScores *Scores

	// Method records how the rows were partitioned when known by the caller
	Method timedataset.SplitMethod

	T         []time.Time
	Vectors   []feature.Vector
	Actual    []float64
	Predicted []float64
}

// Trainer fits an AQI model on a training partition and scores it on a test partition
type Trainer struct {
	opt *Options
}

// NewTrainer creates a trainer with the given options. If none are provided, a default is used
func NewTrainer(opt *Options) (*Trainer, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Trainer{opt: opt}, nil
}

// Train fits the model on the month, year, day of week and holiday count of the training rows
// with AQI as the label and scores it on the test rows. Rows without an AQI value are dropped.
func (tr *Trainer) Train(train, test timedataset.Table) (*Evaluation, error) {
	if tr == nil {
		return nil, ErrUninitializedTrainer
	}

	train = dropMissingAQI(train, "train")
	test = dropMissingAQI(test, "test")
	if len(train) == 0 {
		return nil, fmt.Errorf("%w, training %w", ErrFit, ErrEmptyPartition)
	}
	if len(test) == 0 {
		return nil, fmt.Errorf("%w, test %w", ErrFit, ErrEmptyPartition)
	}

	eval, err := tr.TrainSets(
		feature.NewVectorSet(train.Vectors()), train.AQI(),
		feature.NewVectorSet(test.Vectors()), test.AQI(),
	)
	if err != nil {
		return nil, err
	}

	eval.Model.TrainStartTime = train[0].Datetime
	eval.Model.TrainEndTime = train.LastDatetime()
	eval.T = test.T()
	eval.Vectors = test.Vectors()
	return eval, nil
}

// TrainSets fits the model on the vector features of xTrain and scores it on xTest. A nil
// label slice or a feature set without one of the vector features is reported as a missing
// column.
func (tr *Trainer) TrainSets(xTrain *feature.Set, yTrain []float64, xTest *feature.Set, yTest []float64) (*Evaluation, error) {
	if tr == nil {
		return nil, ErrUninitializedTrainer
	}

	if xTrain.Len() == 0 {
		return nil, fmt.Errorf("%w, training %w", ErrFit, ErrEmptyPartition)
	}
	if xTest.Len() == 0 {
		return nil, fmt.Errorf("%w, test %w", ErrFit, ErrEmptyPartition)
	}
	if yTrain == nil {
		return nil, fmt.Errorf("%w, training %s, %w", ErrFit, timedataset.LabelAQI, ErrMissingColumn)
	}
	if yTest == nil {
		return nil, fmt.Errorf("%w, test %s, %w", ErrFit, timedataset.LabelAQI, ErrMissingColumn)
	}

	features := feature.VectorFeatures()
	x, err := designMatrix(xTrain, features, "training")
	if err != nil {
		return nil, err
	}
	xt, err := designMatrix(xTest, features, "test")
	if err != nil {
		return nil, err
	}
	if len(yTrain) != xTrain.Len() {
		return nil, fmt.Errorf("%w, training has %d rows and %d labels, %w", ErrFit, xTrain.Len(), len(yTrain), models.ErrTargetLenMismatch)
	}
	if len(yTest) != xTest.Len() {
		return nil, fmt.Errorf("%w, test has %d rows and %d labels, %w", ErrFit, xTest.Len(), len(yTest), models.ErrTargetLenMismatch)
	}

	forest, err := models.NewRandomForestRegression(tr.opt.Forest)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrFit, err)
	}
	if err := forest.Fit(x, columnMatrix(yTrain)); err != nil {
		return nil, fmt.Errorf("%w, %w", ErrFit, err)
	}

	predicted, err := forest.Predict(xt)
	if err != nil {
		return nil, fmt.Errorf("%w, unable to predict test partition, %w", ErrFit, err)
	}
	scores, err := NewScores(predicted, yTest)
	if err != nil {
		return nil, fmt.Errorf("%w, %w", ErrFit, err)
	}

	importances := forest.FeatureImportances()
	weights := make([]FeatureWeight, 0, len(features))
	for i, f := range features {
		weights = append(weights, NewFeatureWeight(f, importances[i]))
	}

	baselineScores, err := tr.scoreBaseline(x, xt, yTrain, yTest)
	if err != nil {
		slog.Warn("unable to score linear baseline", "error", err.Error())
	}

	actual := make([]float64, len(yTest))
	copy(actual, yTest)

	model := &Model{
		NumTrain:    len(yTrain),
		NumTest:     len(yTest),
		Options:     tr.opt,
		Scores:      scores,
		Importances: weights,
		Features:    features,
		forest:      forest,
	}
	return &Evaluation{
		Model:          model,
		Scores:         scores,
		BaselineScores: baselineScores,
		Actual:         actual,
		Predicted:      predicted,
	}, nil
}

func (tr *Trainer) scoreBaseline(x, xt *mat.Dense, yTrain, yTest []float64) (*Scores, error) {
	baseline, err := models.NewLinearRegression(tr.opt.Baseline)
	if err != nil {
		return nil, err
	}
	if err := baseline.Fit(x, columnMatrix(yTrain)); err != nil {
		return nil, err
	}
	predicted, err := baseline.Predict(xt)
	if err != nil {
		return nil, err
	}
	return NewScores(predicted, yTest)
}

func dropMissingAQI(rows timedataset.Table, partition string) timedataset.Table {
	kept := make(timedataset.Table, 0, len(rows))
	for _, r := range rows {
		if math.IsNaN(r.AQI) {
			continue
		}
		kept = append(kept, r)
	}
	if dropped := len(rows) - len(kept); dropped > 0 {
		slog.Warn("dropped rows without an AQI value", "partition", partition, "dropped", dropped, "remaining", len(kept))
	}
	return kept
}
