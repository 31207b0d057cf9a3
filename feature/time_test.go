package feature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeGenerate(t *testing.T) {
	tSeries := []time.Time{
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),  // Sunday
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),  // Monday
		time.Date(2024, 7, 13, 0, 0, 0, 0, time.UTC), // Saturday
	}

	testData := map[string]struct {
		feat     *Time
		expected []float64
	}{
		"month": {
			feat:     NewTime(LabelTimeMonth),
			expected: []float64{1, 1, 7},
		},
		"year": {
			feat:     NewTime(LabelTimeYear),
			expected: []float64{2023, 2023, 2024},
		},
		"day of week": {
			feat:     NewTime(LabelTimeDayOfWeek),
			expected: []float64{7, 1, 6},
		},
		"unknown": {
			feat:     NewTime("blargh"),
			expected: []float64{0, 0, 0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.feat.Generate(tSeries))
		})
	}
}
