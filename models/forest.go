package models

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync"

	mat_ "github.com/aouyang1/go-aqi/mat"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	DefaultNumTrees = 100
	DefaultSeed     = 42
)

var (
	ErrNegativeNumTrees        = errors.New("negative number of trees")
	ErrNegativeParallelization = errors.New("negative parallelization")
)

// ForestOptions represents input options to fit a random forest
type ForestOptions struct {
	// NumTrees is the number of bootstrapped trees averaged for each prediction.
	NumTrees int `json:"num_trees"`

	// Seed makes fits reproducible. Tree i draws its bootstrap sample and feature subsets from a
	// source seeded with (Seed, i) so the result does not depend on Parallelization.
	Seed uint64 `json:"seed"`

	// Tree controls how each tree is grown
	Tree *TreeOptions `json:"tree"`

	// Parallelization sets how many trees are grown at once. Defaults to the number of CPUs.
	Parallelization int `json:"parallelization"`
}

// NewDefaultForestOptions returns 100 fully grown trees seeded with 42
func NewDefaultForestOptions() *ForestOptions {
	return &ForestOptions{
		NumTrees:        DefaultNumTrees,
		Seed:            DefaultSeed,
		Tree:            NewDefaultTreeOptions(),
		Parallelization: runtime.NumCPU(),
	}
}

// Validate runs basic validation on forest options. Unset tree counts, tree options and
// parallelization fall back to defaults.
func (f *ForestOptions) Validate() (*ForestOptions, error) {
	if f == nil {
		f = NewDefaultForestOptions()
	}

	if f.NumTrees < 0 {
		return nil, ErrNegativeNumTrees
	}
	if f.NumTrees == 0 {
		f.NumTrees = DefaultNumTrees
	}
	if f.Parallelization < 0 {
		return nil, ErrNegativeParallelization
	}
	if f.Parallelization == 0 {
		f.Parallelization = runtime.NumCPU()
	}
	if f.Parallelization > f.NumTrees {
		f.Parallelization = f.NumTrees
	}

	tree, err := f.Tree.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid tree options, %w", err)
	}
	f.Tree = tree
	return f, nil
}

// RandomForestRegression averages the predictions of regression trees each grown on a
// bootstrap sample of the training data
type RandomForestRegression struct {
	opt *ForestOptions

	nFeat int
	trees []*DecisionTreeRegression
}

// NewRandomForestRegression initializes a random forest ready for fitting
func NewRandomForestRegression(opt *ForestOptions) (*RandomForestRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &RandomForestRegression{
		opt: opt,
	}, nil
}

// Fit the forest according to the given training data
func (r *RandomForestRegression) Fit(x, y mat.Matrix) error {
	if r == nil || r.opt == nil {
		return ErrNoOptions
	}
	cols, yArr, err := fitValidate(x, y)
	if err != nil {
		return err
	}

	trees := make([]*DecisionTreeRegression, r.opt.NumTrees)
	sem := make(chan struct{}, r.opt.Parallelization)
	var wg sync.WaitGroup
	for i := range trees {
		sem <- struct{}{}
		wg.Add(1)

		go r.growTree(i, cols, yArr, trees, &wg, sem)
	}
	wg.Wait()

	r.nFeat = len(cols)
	r.trees = trees
	return nil
}

func (r *RandomForestRegression) growTree(i int, cols [][]float64, y []float64, trees []*DecisionTreeRegression, wg *sync.WaitGroup, sem chan struct{}) {
	defer func() {
		wg.Done()
		<-sem
	}()

	rng := rand.New(rand.NewPCG(r.opt.Seed, uint64(i)))

	m := len(y)
	idx := make([]int, m)
	for j := range idx {
		idx[j] = rng.IntN(m)
	}

	tree := &DecisionTreeRegression{
		opt: r.opt.Tree,
		rng: rng,
	}
	tree.grow(cols, y, idx)
	trees[i] = tree
}

// Predict using the random forest
func (r *RandomForestRegression) Predict(x mat.Matrix) ([]float64, error) {
	if r == nil || r.opt == nil {
		return nil, ErrNoOptions
	}
	if len(r.trees) == 0 {
		return nil, ErrNotFitted
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if _, n := x.Dims(); n != r.nFeat {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, r.nFeat, ErrFeatureLenMismatch)
	}

	rows := mat_.Rows(x)
	res := make([]float64, len(rows))
	for i, row := range rows {
		for _, tree := range r.trees {
			res[i] += tree.predictRow(row)
		}
	}
	floats.Scale(1/float64(len(r.trees)), res)
	return res, nil
}

// Score computes the coefficient of determination of the prediction
func (r *RandomForestRegression) Score(x, y mat.Matrix) (float64, error) {
	if err := scoreValidate(x, y); err != nil {
		return 0.0, err
	}
	res, err := r.Predict(x)
	if err != nil {
		return 0.0, err
	}
	return rSquared(res, mat.Col(nil, 0, y)), nil
}

// FeatureImportances returns the mean share of squared error reduction attributed to each
// feature across all trees in design matrix column order
func (r *RandomForestRegression) FeatureImportances() []float64 {
	if r == nil || len(r.trees) == 0 {
		return nil
	}
	imp := make([]float64, r.nFeat)
	for _, tree := range r.trees {
		floats.Add(imp, normalize(tree.importances()))
	}
	return normalize(imp)
}

// NumTrees returns the number of fitted trees
func (r *RandomForestRegression) NumTrees() int {
	if r == nil {
		return 0
	}
	return len(r.trees)
}

// Options returns the validated options of the forest
func (r *RandomForestRegression) Options() *ForestOptions {
	if r == nil {
		return nil
	}
	return r.opt
}
