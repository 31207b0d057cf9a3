package feature

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonOf(t *testing.T) {
	expected := map[int]Season{
		1: Winter, 2: Winter, 12: Winter,
		3: Summer, 4: Summer, 5: Summer, 6: Summer,
		7: Monsoon, 8: Monsoon, 9: Monsoon,
		10: PostMonsoon, 11: PostMonsoon,
	}

	counts := make(map[Season]int)
	for month := 1; month <= 12; month++ {
		s := SeasonOf(month)
		assert.Equal(t, expected[month], s, "month %d", month)
		assert.Contains(t, Seasons(), s)
		counts[s]++
	}

	// every month is assigned to exactly one season and every season is used
	assert.Equal(t, map[Season]int{Winter: 3, Summer: 4, Monsoon: 3, PostMonsoon: 2}, counts)
}

func TestSeasonString(t *testing.T) {
	labels := make([]string, 0, 4)
	for _, s := range Seasons() {
		labels = append(labels, s.String())
	}
	assert.Equal(t, []string{"Winter", "Summer", "Monsoon", "Post-Monsoon"}, labels)
	assert.Equal(t, "Unknown", Season(10).String())
}

func TestCategoryOf(t *testing.T) {
	testData := map[string]struct {
		aqi      float64
		expected Category
	}{
		"negative":          {aqi: -10, expected: Good},
		"zero":              {aqi: 0, expected: Good},
		"good boundary":     {aqi: 50, expected: Good},
		"above good":        {aqi: 50.01, expected: Satisfactory},
		"satisfactory edge": {aqi: 100, expected: Satisfactory},
		"moderate edge":     {aqi: 200, expected: Moderate},
		"poor edge":         {aqi: 300, expected: Poor},
		"very poor edge":    {aqi: 400, expected: VeryPoor},
		"severe":            {aqi: 400.5, expected: Severe},
		"extreme":           {aqi: 999, expected: Severe},
		"nan":               {aqi: math.NaN(), expected: Severe},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, CategoryOf(td.aqi))
		})
	}
}

func TestCategoryMonotonic(t *testing.T) {
	prev := CategoryOf(-50)
	for aqi := -50.0; aqi <= 600; aqi += 0.5 {
		curr := CategoryOf(aqi)
		require.GreaterOrEqual(t, curr.Severity(), prev.Severity(), "aqi %.1f", aqi)
		prev = curr
	}
}

func TestCategoryString(t *testing.T) {
	labels := make([]string, 0, 6)
	for _, c := range Categories() {
		labels = append(labels, c.String())
	}
	assert.Equal(t, []string{"Good", "Satisfactory", "Moderate", "Poor", "Very Poor", "Severe"}, labels)
}

func TestNewVector(t *testing.T) {
	testData := map[string]struct {
		t        time.Time
		holidays float64
		expected Vector
	}{
		"monday": {
			t:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			holidays: 1,
			expected: Vector{Month: 1, Year: 2024, DayOfWeek: 1, HolidayCount: 1},
		},
		"sunday": {
			t:        time.Date(2023, 10, 29, 0, 0, 0, 0, time.UTC),
			expected: Vector{Month: 10, Year: 2023, DayOfWeek: 7},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			v := NewVector(td.t, td.holidays)
			assert.Equal(t, td.expected, v)
		})
	}
}

func TestNewVectorSet(t *testing.T) {
	vectors := []Vector{
		{Month: 1, Year: 2022, DayOfWeek: 6, HolidayCount: 0},
		{Month: 2, Year: 2023, DayOfWeek: 7, HolidayCount: 2},
	}
	s := NewVectorSet(vectors)
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"tfeat_month", "tfeat_year", "tfeat_dow", "event_holidays"}, s.Names())
	assert.Equal(t, VectorFeatures(), s.Labels())

	x, err := s.Matrix(VectorFeatures())
	require.NoError(t, err)
	assert.Equal(t, vectors[0].Slice(), x.RawRowView(0))
	assert.Equal(t, vectors[1].Slice(), x.RawRowView(1))
}
