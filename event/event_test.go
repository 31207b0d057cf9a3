package event

import (
	"testing"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoliday(t *testing.T) {
	testData := map[string]struct {
		hol       *cal.Holiday
		start     time.Time
		end       time.Time
		durBefore time.Duration
		durAfter  time.Duration
		expected  []Event
	}{
		"simple": {
			hol:   ChristmasDay,
			start: time.Date(2024, 12, 8, 1, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 12, 8, 1, 0, 0, 0, time.UTC),
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
				},
				{
					"Christmas_Day_2025",
					time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"non utc tz": {
			hol:   IndependenceDay,
			start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.FixedZone("IST", 5*60*60+30*60)),
			end:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.FixedZone("IST", 5*60*60+30*60)),
			expected: []Event{
				{
					"Independence_Day_2023",
					time.Date(2023, 8, 15, 0, 0, 0, 0, time.FixedZone("IST", 5*60*60+30*60)),
					time.Date(2023, 8, 16, 0, 0, 0, 0, time.FixedZone("IST", 5*60*60+30*60)),
				},
			},
		},
		"easter offset": {
			hol:   GoodFriday,
			start: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			expected: []Event{
				{
					"Good_Friday_2022",
					time.Date(2022, 4, 15, 0, 0, 0, 0, time.UTC),
					time.Date(2022, 4, 16, 0, 0, 0, 0, time.UTC),
				},
				{
					"Good_Friday_2023",
					time.Date(2023, 4, 7, 0, 0, 0, 0, time.UTC),
					time.Date(2023, 4, 8, 0, 0, 0, 0, time.UTC),
				},
				{
					"Good_Friday_2024",
					time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"with buffer": {
			hol:       RepublicDay,
			start:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			durBefore: 24 * time.Hour,
			durAfter:  2 * 24 * time.Hour,
			expected: []Event{
				{
					"Republic_Day_2024",
					time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"outside range": {
			hol:      GandhiJayanti,
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
			expected: []Event{},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := Holiday(td.hol, td.start, td.end, td.durBefore, td.durAfter)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestEventValid(t *testing.T) {
	start := time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	testData := map[string]struct {
		event    Event
		expected error
	}{
		"valid":          {NewEvent("Republic_Day_2024", start, end), nil},
		"unset start":    {NewEvent("Republic_Day_2024", time.Time{}, end), ErrUnsetTime},
		"start past end": {NewEvent("Republic_Day_2024", end, start), ErrStartAfterEnd},
		"no name":        {NewEvent("", start, end), ErrNoEventName},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, td.event.Valid(), td.expected)
		})
	}
}

func TestEventContains(t *testing.T) {
	start := time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC)
	e := NewEvent("Republic_Day_2024", start, start.AddDate(0, 0, 1))

	assert.True(t, e.Contains(start))
	assert.True(t, e.Contains(start.Add(23*time.Hour)))
	assert.False(t, e.Contains(start.AddDate(0, 0, 1)))
	assert.False(t, e.Contains(start.Add(-time.Second)))
}

func TestCounts(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 366)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}

	counts := Counts(days)
	require.Len(t, counts, len(days))

	holidays := map[time.Time]bool{
		time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC):  true,
		time.Date(2024, 3, 29, 0, 0, 0, 0, time.UTC):  true,
		time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC):  true,
		time.Date(2024, 10, 2, 0, 0, 0, 0, time.UTC):  true,
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC): true,
	}
	var total float64
	for i, day := range days {
		total += counts[i]
		if holidays[day] {
			assert.Equal(t, 1.0, counts[i], day.String())
			continue
		}
		assert.Equal(t, 0.0, counts[i], day.String())
	}
	assert.Equal(t, 5.0, total)
}

func TestCountsUnordered(t *testing.T) {
	days := []time.Time{
		time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 26, 12, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []float64{1, 0, 1}, Counts(days))
	assert.Equal(t, []float64{}, Counts(nil))
}
