package feature

import (
	"time"
)

const (
	LabelTimeMonth     = "month"
	LabelTimeYear      = "year"
	LabelTimeDayOfWeek = "dow"
)

// Time feature representing a calendar component extracted from the observation date
type Time struct {
	named
}

// NewTime creates a new time feature instance given a name
func NewTime(name string) *Time {
	return &Time{named{Name: name}}
}

// String returns the string representation of the time feature
func (t Time) String() string {
	return "tfeat_" + t.Name
}

// Type returns the type of this feature
func (t Time) Type() FeatureType {
	return FeatureTypeTime
}

// Generate extracts the calendar component for each time point. Unknown names
// produce a zero valued column.
func (t Time) Generate(tSeries []time.Time) []float64 {
	res := make([]float64, len(tSeries))
	for i, tPnt := range tSeries {
		switch t.Name {
		case LabelTimeMonth:
			res[i] = float64(tPnt.Month())
		case LabelTimeYear:
			res[i] = float64(tPnt.Year())
		case LabelTimeDayOfWeek:
			res[i] = float64(DayOfWeekOrdinal(tPnt))
		}
	}
	return res
}
