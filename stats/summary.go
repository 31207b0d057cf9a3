package stats

import (
	"math"
	"time"

	"github.com/aouyang1/go-aqi/feature"
	"github.com/aouyang1/go-aqi/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Tukey fences used to flag unusual AQI days
const (
	OutlierLowerPercentile = 0.25
	OutlierUpperPercentile = 0.75
	OutlierTukeyFactor     = 1.5
)

// CategoryCount is the number of days that fell into an AQI category
type CategoryCount struct {
	Category feature.Category `json:"category"`
	Days     int              `json:"days"`
	Share    float64          `json:"share"`
}

// Summary describes the AQI history of a table
type Summary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  int       `json:"days"`

	MeanAQI    float64   `json:"mean_aqi"`
	MaxAQI     float64   `json:"max_aqi"`
	MaxAQIDate time.Time `json:"max_aqi_date"`

	WorstMonth      MonthMean      `json:"worst_month"`
	WorstSeason     feature.Season `json:"worst_season"`
	WorstSeasonMean float64        `json:"worst_season_mean"`

	Categories  []CategoryCount `json:"categories"`
	OutlierDays int             `json:"outlier_days"`
}

// Summarize describes the rows of the table that have an AQI value
func Summarize(tbl timedataset.Table) (*Summary, error) {
	rows := make(timedataset.Table, 0, len(tbl))
	for _, r := range tbl {
		if !math.IsNaN(r.AQI) {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, ErrInsufficientData
	}

	aqi := rows.AQI()
	maxIdx := floats.MaxIdx(aqi)
	s := &Summary{
		Start:      rows[0].Datetime,
		End:        rows.LastDatetime(),
		Days:       len(rows),
		MeanAQI:    stat.Mean(aqi, nil),
		MaxAQI:     aqi[maxIdx],
		MaxAQIDate: rows[maxIdx].Datetime,
		WorstMonth: MonthMean{Mean: math.Inf(-1)},
	}

	for _, mm := range MonthlyMean(rows) {
		if mm.Count > 0 && mm.Mean > s.WorstMonth.Mean {
			s.WorstMonth = mm
		}
	}

	s.WorstSeasonMean = math.Inf(-1)
	for _, g := range SeasonalGroups(rows) {
		if len(g.AQI) == 0 {
			continue
		}
		if mean := stat.Mean(g.AQI, nil); mean > s.WorstSeasonMean {
			s.WorstSeason = g.Season
			s.WorstSeasonMean = mean
		}
	}

	counts := make(map[feature.Category]int)
	for _, r := range rows {
		counts[r.Category]++
	}
	for _, c := range feature.Categories() {
		s.Categories = append(s.Categories, CategoryCount{
			Category: c,
			Days:     counts[c],
			Share:    float64(counts[c]) / float64(len(rows)),
		})
	}

	s.OutlierDays = len(DetectOutliers(aqi, OutlierLowerPercentile, OutlierUpperPercentile, OutlierTukeyFactor))
	return s, nil
}
