package models

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	DefaultMaxDepth        = 0
	DefaultMinSamplesSplit = 2
	DefaultMinSamplesLeaf  = 1

	leafFeature = -1
)

var (
	ErrNegativeMaxDepth    = errors.New("negative max depth")
	ErrMinSamplesSplit     = errors.New("min samples split must be at least 2")
	ErrMinSamplesLeaf      = errors.New("min samples leaf must be at least 1")
	ErrNegativeMaxFeatures = errors.New("negative max features")
)

// TreeOptions represents input options to grow a regression tree
type TreeOptions struct {
	// MaxDepth limits how many splits deep the tree can grow. 0 grows the tree until every
	// leaf is pure or can no longer be split.
	MaxDepth int `json:"max_depth"`

	// MinSamplesSplit is the fewest samples a node must hold to be split.
	MinSamplesSplit int `json:"min_samples_split"`

	// MinSamplesLeaf is the fewest samples each side of a split must hold.
	MinSamplesLeaf int `json:"min_samples_leaf"`

	// MaxFeatures is the number of randomly chosen features considered at each split. 0 considers
	// every feature.
	MaxFeatures int `json:"max_features"`

	// Seed drives the feature sampling of a standalone tree. Trees grown by a forest draw from
	// the forest's per tree source instead.
	Seed uint64 `json:"seed"`
}

// NewDefaultTreeOptions returns a fully grown tree considering every feature at each split
func NewDefaultTreeOptions() *TreeOptions {
	return &TreeOptions{
		MaxDepth:        DefaultMaxDepth,
		MinSamplesSplit: DefaultMinSamplesSplit,
		MinSamplesLeaf:  DefaultMinSamplesLeaf,
	}
}

// Validate runs basic validation on tree options, filling unset sample minimums with defaults
func (t *TreeOptions) Validate() (*TreeOptions, error) {
	if t == nil {
		t = NewDefaultTreeOptions()
	}
	if t.MinSamplesSplit == 0 {
		t.MinSamplesSplit = DefaultMinSamplesSplit
	}
	if t.MinSamplesLeaf == 0 {
		t.MinSamplesLeaf = DefaultMinSamplesLeaf
	}

	if t.MaxDepth < 0 {
		return nil, ErrNegativeMaxDepth
	}
	if t.MinSamplesSplit < 2 {
		return nil, fmt.Errorf("got %d, %w", t.MinSamplesSplit, ErrMinSamplesSplit)
	}
	if t.MinSamplesLeaf < 1 {
		return nil, fmt.Errorf("got %d, %w", t.MinSamplesLeaf, ErrMinSamplesLeaf)
	}
	if t.MaxFeatures < 0 {
		return nil, ErrNegativeMaxFeatures
	}
	return t, nil
}

// node is either a split on feature at threshold or a leaf when feature is leafFeature.
// Samples with a feature value less than or equal to the threshold go left.
type node struct {
	feature   int
	threshold float64
	left      int
	right     int

	value   float64
	samples int

	// gain is the reduction in squared error achieved by the split
	gain float64
}

type split struct {
	feature   int
	threshold float64
	score     float64
}

// DecisionTreeRegression is a CART regression tree splitting on the threshold that most
// reduces the squared error of the target. Leaves predict the mean of their samples.
type DecisionTreeRegression struct {
	opt *TreeOptions
	rng *rand.Rand

	nFeat int
	nodes []node
}

// NewDecisionTreeRegression initializes a regression tree ready for fitting
func NewDecisionTreeRegression(opt *TreeOptions) (*DecisionTreeRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &DecisionTreeRegression{
		opt: opt,
		rng: rand.New(rand.NewPCG(opt.Seed, 0)),
	}, nil
}

// Fit the tree to every observation of the training data
func (d *DecisionTreeRegression) Fit(x, y mat.Matrix) error {
	if d == nil || d.opt == nil {
		return ErrNoOptions
	}
	cols, yArr, err := fitValidate(x, y)
	if err != nil {
		return err
	}

	idx := make([]int, len(yArr))
	for i := range idx {
		idx[i] = i
	}
	d.grow(cols, yArr, idx)
	return nil
}

// grow builds the tree from the observations referenced by idx. idx may repeat observations.
func (d *DecisionTreeRegression) grow(cols [][]float64, y []float64, idx []int) {
	d.nFeat = len(cols)
	d.nodes = d.nodes[:0]
	d.build(cols, y, idx, 0)
}

func (d *DecisionTreeRegression) build(cols [][]float64, y []float64, idx []int, depth int) int {
	nodeIdx := len(d.nodes)

	sum := 0.0
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, i := range idx {
		sum += y[i]
		minY = math.Min(minY, y[i])
		maxY = math.Max(maxY, y[i])
	}
	d.nodes = append(d.nodes, node{
		feature: leafFeature,
		value:   sum / float64(len(idx)),
		samples: len(idx),
	})

	if len(idx) < d.opt.MinSamplesSplit || minY == maxY {
		return nodeIdx
	}
	if d.opt.MaxDepth > 0 && depth >= d.opt.MaxDepth {
		return nodeIdx
	}

	s, ok := d.bestSplit(cols, y, idx)
	if !ok {
		return nodeIdx
	}

	leftIdx := make([]int, 0, len(idx))
	rightIdx := make([]int, 0, len(idx))
	for _, i := range idx {
		if cols[s.feature][i] <= s.threshold {
			leftIdx = append(leftIdx, i)
			continue
		}
		rightIdx = append(rightIdx, i)
	}

	left := d.build(cols, y, leftIdx, depth+1)
	right := d.build(cols, y, rightIdx, depth+1)

	// children were appended after this node so index back into the slice
	n := &d.nodes[nodeIdx]
	n.feature = s.feature
	n.threshold = s.threshold
	n.left = left
	n.right = right
	n.gain = s.score - sum*sum/float64(len(idx))
	return nodeIdx
}

// bestSplit scans each candidate feature in sorted order. Minimizing the squared error of both
// sides is the same as maximizing sumL^2/nL + sumR^2/nR which is what score tracks.
func (d *DecisionTreeRegression) bestSplit(cols [][]float64, y []float64, idx []int) (split, bool) {
	n := len(idx)
	minLeaf := d.opt.MinSamplesLeaf

	total := 0.0
	for _, i := range idx {
		total += y[i]
	}

	best := split{feature: leafFeature, score: math.Inf(-1)}
	order := make([]int, n)
	for _, f := range d.candidateFeatures(len(cols)) {
		col := cols[f]
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool {
			return col[order[a]] < col[order[b]]
		})

		leftSum := 0.0
		for k := 1; k < n; k++ {
			leftSum += y[order[k-1]]
			if k < minLeaf || n-k < minLeaf {
				continue
			}
			lo, hi := col[order[k-1]], col[order[k]]
			if !(lo < hi) {
				continue
			}

			rightSum := total - leftSum
			score := leftSum*leftSum/float64(k) + rightSum*rightSum/float64(n-k)
			if score <= best.score {
				continue
			}

			threshold := lo + (hi-lo)/2
			if threshold >= hi {
				threshold = lo
			}
			best = split{feature: f, threshold: threshold, score: score}
		}
	}
	return best, best.feature != leafFeature
}

func (d *DecisionTreeRegression) candidateFeatures(nFeat int) []int {
	if d.opt.MaxFeatures == 0 || d.opt.MaxFeatures >= nFeat {
		feats := make([]int, nFeat)
		for i := range feats {
			feats[i] = i
		}
		return feats
	}
	return d.rng.Perm(nFeat)[:d.opt.MaxFeatures]
}

func (d *DecisionTreeRegression) predictRow(row []float64) float64 {
	i := 0
	for d.nodes[i].feature != leafFeature {
		n := d.nodes[i]
		if row[n.feature] <= n.threshold {
			i = n.left
			continue
		}
		i = n.right
	}
	return d.nodes[i].value
}

// importances accumulates the squared error reduction of every split per feature
func (d *DecisionTreeRegression) importances() []float64 {
	imp := make([]float64, d.nFeat)
	for _, n := range d.nodes {
		if n.feature == leafFeature {
			continue
		}
		imp[n.feature] += n.gain
	}
	return imp
}

func (d *DecisionTreeRegression) predictValidate(x mat.Matrix) error {
	if d == nil || d.opt == nil {
		return ErrNoOptions
	}
	if len(d.nodes) == 0 {
		return ErrNotFitted
	}
	if x == nil {
		return ErrNoDesignMatrix
	}
	if _, n := x.Dims(); n != d.nFeat {
		return fmt.Errorf("got %d features in design matrix, but expected %d, %w", n, d.nFeat, ErrFeatureLenMismatch)
	}
	return nil
}

// Predict using the regression tree
func (d *DecisionTreeRegression) Predict(x mat.Matrix) ([]float64, error) {
	if err := d.predictValidate(x); err != nil {
		return nil, err
	}

	m, _ := x.Dims()
	res := make([]float64, m)
	row := make([]float64, d.nFeat)
	for i := 0; i < m; i++ {
		mat.Row(row, i, x)
		res[i] = d.predictRow(row)
	}
	return res, nil
}

// Score computes the coefficient of determination of the prediction
func (d *DecisionTreeRegression) Score(x, y mat.Matrix) (float64, error) {
	if err := scoreValidate(x, y); err != nil {
		return 0.0, err
	}
	res, err := d.Predict(x)
	if err != nil {
		return 0.0, err
	}
	return rSquared(res, mat.Col(nil, 0, y)), nil
}

// FeatureImportances returns the share of the total squared error reduction attributed to each
// feature in design matrix column order
func (d *DecisionTreeRegression) FeatureImportances() []float64 {
	if d == nil {
		return nil
	}
	return normalize(d.importances())
}

// Depth returns the number of splits on the longest path from the root to a leaf
func (d *DecisionTreeRegression) Depth() int {
	if d == nil || len(d.nodes) == 0 {
		return 0
	}
	var depth func(i int) int
	depth = func(i int) int {
		n := d.nodes[i]
		if n.feature == leafFeature {
			return 0
		}
		return 1 + max(depth(n.left), depth(n.right))
	}
	return depth(0)
}

// NumLeaves returns the number of leaves in the tree
func (d *DecisionTreeRegression) NumLeaves() int {
	if d == nil {
		return 0
	}
	var leaves int
	for _, n := range d.nodes {
		if n.feature == leafFeature {
			leaves++
		}
	}
	return leaves
}
