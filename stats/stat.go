// Package stats computes the descriptive statistics of a prepared AQI table used by the
// figures and the report
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aouyang1/go-aqi/feature"
	"github.com/aouyang1/go-aqi/timedataset"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrInsufficientData = errors.New("need at least 2 complete observations")

// MonthMean is the mean AQI of a calendar month across every year in the table
type MonthMean struct {
	Month int     `json:"month"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// MonthlyMean returns the mean AQI of each calendar month in month order. Months without an
// observation have a NaN mean and a count of 0. Rows without an AQI value are ignored.
func MonthlyMean(tbl timedataset.Table) []MonthMean {
	sums := make([]float64, 12)
	counts := make([]int, 12)
	for _, r := range tbl {
		if math.IsNaN(r.AQI) || r.Month < 1 || r.Month > 12 {
			continue
		}
		sums[r.Month-1] += r.AQI
		counts[r.Month-1]++
	}

	means := make([]MonthMean, 12)
	for i := range means {
		means[i] = MonthMean{Month: i + 1, Mean: math.NaN(), Count: counts[i]}
		if counts[i] > 0 {
			means[i].Mean = sums[i] / float64(counts[i])
		}
	}
	return means
}

// SeasonGroup holds the AQI values observed in a season
type SeasonGroup struct {
	Season feature.Season `json:"season"`
	AQI    []float64      `json:"aqi"`
}

// SeasonalGroups splits the AQI values by season in canonical season order. Every season is
// present even when it has no values. Rows without an AQI value are ignored.
func SeasonalGroups(tbl timedataset.Table) []SeasonGroup {
	seasons := feature.Seasons()
	groups := make([]SeasonGroup, len(seasons))
	idx := make(map[feature.Season]int, len(seasons))
	for i, s := range seasons {
		groups[i] = SeasonGroup{Season: s, AQI: []float64{}}
		idx[s] = i
	}
	for _, r := range tbl {
		if math.IsNaN(r.AQI) {
			continue
		}
		i := idx[r.Season]
		groups[i].AQI = append(groups[i].AQI, r.AQI)
	}
	return groups
}

// Correlation is a symmetric matrix of pearson correlations between the labelled columns
type Correlation struct {
	Labels []string
	Matrix *mat.SymDense
}

// At returns the correlation between two labelled columns
func (c *Correlation) At(a, b string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	i, j := -1, -1
	for k, l := range c.Labels {
		if l == a {
			i = k
		}
		if l == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return c.Matrix.At(i, j), true
}

// CorrelationLabels are the pollutant columns followed by AQI
func CorrelationLabels() []string {
	return append(timedataset.Pollutants(), timedataset.LabelAQI)
}

// CorrelationMatrix computes the pairwise correlation of the pollutants and AQI. Rows with any
// missing value are left out. A column without variance correlates as NaN.
func CorrelationMatrix(tbl timedataset.Table) (*Correlation, error) {
	labels := CorrelationLabels()

	data := make([]float64, 0, len(tbl)*len(labels))
	var m int
	for _, r := range tbl {
		row := make([]float64, 0, len(labels))
		complete := true
		for _, l := range labels {
			v, _ := r.Pollutant(l)
			if math.IsNaN(v) {
				complete = false
				break
			}
			row = append(row, v)
		}
		if !complete {
			continue
		}
		data = append(data, row...)
		m++
	}
	if m < 2 {
		return nil, fmt.Errorf("got %d, %w", m, ErrInsufficientData)
	}

	corr := mat.NewSymDense(len(labels), nil)
	stat.CorrelationMatrix(corr, mat.NewDense(m, len(labels), data), nil)
	return &Correlation{Labels: labels, Matrix: corr}, nil
}

// DetectOutliers returns the indices of values beyond the Tukey fences built from the
// lower and upper percentiles. NaN values are never outliers.
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	sorted := make([]float64, 0, len(y))
	for _, v := range y {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Float64s(sorted)

	lower := stat.Quantile(lowerPerc, stat.Empirical, sorted, nil)
	upper := stat.Quantile(upperPerc, stat.Empirical, sorted, nil)
	innerRange := upper - lower
	lower -= innerRange * tukeyFactor
	upper += innerRange * tukeyFactor

	var outlierIdx []int
	for i, v := range y {
		if math.IsNaN(v) {
			continue
		}
		if v > upper || v < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
