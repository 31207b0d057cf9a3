package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestSpan(t *testing.T) {
	start, end := TimeSlice(nil).Span()
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())

	start, end = TimeSlice(GenerateYears(2023, 2023)).Span()
	assert.Equal(t, day(2023, 1, 1), start)
	assert.Equal(t, day(2023, 12, 31), end)
}

func TestEstimateFreq(t *testing.T) {
	testData := map[string]struct {
		tSlice   TimeSlice
		expected time.Duration
		err      error
	}{
		"nil": {
			err: ErrCannotInferFreq,
		},
		"single day": {
			tSlice: TimeSlice{day(2023, 1, 1)},
			err:    ErrCannotInferFreq,
		},
		"daily": {
			tSlice:   TimeSlice(GenerateDays(day(2023, 10, 30), 5)),
			expected: 24 * time.Hour,
		},
		"daily with a gap": {
			tSlice:   TimeSlice{day(2023, 1, 1), day(2023, 1, 2), day(2023, 1, 3), day(2023, 1, 7)},
			expected: 24 * time.Hour,
		},
		"repeated days": {
			tSlice:   TimeSlice{day(2023, 1, 1), day(2023, 1, 1), day(2023, 1, 1), day(2023, 1, 2)},
			expected: 24 * time.Hour,
		},
		"only repeated days": {
			tSlice: TimeSlice{day(2023, 1, 1), day(2023, 1, 1)},
			err:    ErrCannotInferFreq,
		},
		"tie goes to shorter spacing": {
			tSlice:   TimeSlice{day(2023, 1, 1), day(2023, 1, 8), day(2023, 1, 15), day(2023, 1, 16), day(2023, 1, 17)},
			expected: 24 * time.Hour,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			freq, err := td.tSlice.EstimateFreq()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, freq)
		})
	}
}

func TestMissing(t *testing.T) {
	testData := map[string]struct {
		tSlice   TimeSlice
		freq     time.Duration
		expected int
	}{
		"nil": {
			freq: 24 * time.Hour,
		},
		"complete year": {
			tSlice: TimeSlice(GenerateYears(2024, 2024)),
			freq:   24 * time.Hour,
		},
		"two gaps": {
			tSlice:   TimeSlice{day(2023, 1, 1), day(2023, 1, 4), day(2023, 1, 5), day(2023, 1, 7)},
			freq:     24 * time.Hour,
			expected: 3,
		},
		"repeated days": {
			tSlice: TimeSlice{day(2023, 1, 1), day(2023, 1, 1), day(2023, 1, 2)},
			freq:   24 * time.Hour,
		},
		"unset frequency": {
			tSlice: TimeSlice{day(2023, 1, 1), day(2023, 1, 9)},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.tSlice.Missing(td.freq))
		})
	}
}
