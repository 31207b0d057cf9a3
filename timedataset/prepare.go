package timedataset

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aouyang1/go-aqi/feature"
)

var ErrParse = errors.New("unable to parse calendar date")

// ParseDate combines the calendar components into a UTC midnight timestamp. Combinations
// that do not exist on the calendar such as February 30th are rejected rather than
// normalized into the following month.
func ParseDate(year, month, day int) (time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range, %w", year, ErrParse)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range, %w", month, ErrParse)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date, %w", year, month, day, ErrParse)
	}
	return t, nil
}

// Prepare derives the datetime, season, AQI category and day of week of each row and
// returns a new table sorted by datetime. Rows sharing a datetime keep their input order.
func Prepare(rows []RawRow) (Table, error) {
	tbl := make(Table, 0, len(rows))
	for i, r := range rows {
		dt, err := ParseDate(r.Year, r.Month, r.Date)
		if err != nil {
			return nil, fmt.Errorf("row %d, %w", i, err)
		}
		tbl = append(tbl, PreparedRow{
			RawRow:    r,
			Datetime:  dt,
			Season:    feature.SeasonOf(r.Month),
			Category:  feature.CategoryOf(r.AQI),
			DayOfWeek: feature.DayOfWeekOrdinal(dt),
		})
	}

	sort.SliceStable(
		tbl,
		func(i, j int) bool {
			return tbl[i].Datetime.Before(tbl[j].Datetime)
		},
	)
	return tbl, nil
}
