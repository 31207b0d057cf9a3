package feature

import (
	"time"
)

// Vector is the ordered model input of a single day
type Vector struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	DayOfWeek    int     `json:"day_of_week"`
	HolidayCount float64 `json:"holiday_count"`
}

// NewVector derives the calendar components of t and attaches the holiday count
func NewVector(t time.Time, holidayCount float64) Vector {
	return Vector{
		Month:        int(t.Month()),
		Year:         t.Year(),
		DayOfWeek:    DayOfWeekOrdinal(t),
		HolidayCount: holidayCount,
	}
}

// DayOfWeekOrdinal returns the ISO day of week where Monday is 1 and Sunday is 7
func DayOfWeekOrdinal(t time.Time) int {
	wd := t.Weekday()
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// VectorFeatures returns the model input features in column order
func VectorFeatures() []Feature {
	return []Feature{
		NewTime(LabelTimeMonth),
		NewTime(LabelTimeYear),
		NewTime(LabelTimeDayOfWeek),
		NewEvent(LabelEventHolidays),
	}
}

// Slice returns the vector values in VectorFeatures order
func (v Vector) Slice() []float64 {
	return []float64{
		float64(v.Month),
		float64(v.Year),
		float64(v.DayOfWeek),
		v.HolidayCount,
	}
}

// NewVectorSet builds a feature set holding one column per vector component
func NewVectorSet(vectors []Vector) *Set {
	cols := make([][]float64, 4)
	for i := range cols {
		cols[i] = make([]float64, len(vectors))
	}
	for i, v := range vectors {
		for j, val := range v.Slice() {
			cols[j][i] = val
		}
	}

	s := NewSet()
	for j, f := range VectorFeatures() {
		// every column has the same length so Set cannot fail
		_ = s.Set(f, cols[j])
	}
	return s
}
