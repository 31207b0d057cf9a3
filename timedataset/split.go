package timedataset

import (
	"errors"
	"log/slog"
	"math"
	"time"
)

var ErrInvalidTestFraction = errors.New("test fraction must be between 0 and 1 exclusive")

// DefaultCutoff is the start of the most recent full year evaluation window
var DefaultCutoff = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const DefaultTestFraction = 0.2

// SplitMethod records how a table was partitioned
type SplitMethod int

const (
	SplitCalendar SplitMethod = iota
	SplitPositional
)

func (m SplitMethod) String() string {
	switch m {
	case SplitCalendar:
		return "calendar"
	case SplitPositional:
		return "positional"
	}
	return "unknown"
}

// SplitStrategy partitions a table into a training and a test window. Rows before
// Cutoff train the model and rows on or after it evaluate it. When either side would be
// empty the leading rows train and the trailing TestFraction of rows evaluate, without
// shuffling.
type SplitStrategy struct {
	Cutoff       time.Time `json:"cutoff"`
	TestFraction float64   `json:"test_fraction"`
}

// NewDefaultSplitStrategy returns the 2024-01-01 cutoff with a 20% positional fallback
func NewDefaultSplitStrategy() *SplitStrategy {
	return &SplitStrategy{
		Cutoff:       DefaultCutoff,
		TestFraction: DefaultTestFraction,
	}
}

// Validate fills unset fields with defaults and checks the test fraction
func (s *SplitStrategy) Validate() (*SplitStrategy, error) {
	if s == nil {
		s = NewDefaultSplitStrategy()
	}
	if s.Cutoff.IsZero() {
		s.Cutoff = DefaultCutoff
	}
	if s.TestFraction == 0 {
		s.TestFraction = DefaultTestFraction
	}
	if s.TestFraction <= 0 || s.TestFraction >= 1 || math.IsNaN(s.TestFraction) {
		return nil, ErrInvalidTestFraction
	}
	return s, nil
}

// Split partitions the table. The returned tables are new slices and the input is not
// modified. len(train)+len(test) always equals len(rows).
func (s *SplitStrategy) Split(rows Table) (Table, Table, SplitMethod) {
	cutoff := DefaultCutoff
	testFraction := DefaultTestFraction
	if s != nil {
		if !s.Cutoff.IsZero() {
			cutoff = s.Cutoff
		}
		if s.TestFraction > 0 && s.TestFraction < 1 {
			testFraction = s.TestFraction
		}
	}

	train := make(Table, 0, len(rows))
	test := make(Table, 0, len(rows))
	for _, r := range rows {
		if r.Datetime.Before(cutoff) {
			train = append(train, r)
			continue
		}
		test = append(test, r)
	}
	if len(train) > 0 && len(test) > 0 {
		return train, test, SplitCalendar
	}

	n := len(rows)
	nTest := int(math.Ceil(testFraction * float64(n)))
	nTrain := n - nTest

	slog.Warn("calendar split left a partition empty, using positional split",
		"cutoff", cutoff.Format(time.DateOnly),
		"rows", n,
		"train", nTrain,
		"test", nTest,
	)

	train = make(Table, nTrain)
	test = make(Table, nTest)
	copy(train, rows[:nTrain])
	copy(test, rows[nTrain:])
	return train, test, SplitPositional
}
