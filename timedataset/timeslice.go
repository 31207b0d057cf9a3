package timedataset

import (
	"errors"
	"time"
)

var ErrCannotInferFreq = errors.New("cannot infer frequency from time slice")

// TimeSlice is an ordered series of observation times
type TimeSlice []time.Time

// Span returns the first and last time point. Both are zero for an empty slice.
func (t TimeSlice) Span() (time.Time, time.Time) {
	if len(t) == 0 {
		return time.Time{}, time.Time{}
	}
	return t[0], t[len(t)-1]
}

// EstimateFreq returns the most common non-zero spacing between consecutive time points.
// Repeated time points are ignored and ties go to the shorter spacing.
func (t TimeSlice) EstimateFreq() (time.Duration, error) {
	counts := make(map[time.Duration]int)
	for i := 1; i < len(t); i++ {
		if delta := t[i].Sub(t[i-1]); delta != 0 {
			counts[delta]++
		}
	}

	var freq time.Duration
	var best int
	for delta, cnt := range counts {
		if cnt > best || (cnt == best && delta < freq) {
			freq, best = delta, cnt
		}
	}
	if best == 0 {
		return 0, ErrCannotInferFreq
	}
	return freq, nil
}

// Missing counts the time points absent from the slice when it is sampled every freq
// between its first and last point
func (t TimeSlice) Missing(freq time.Duration) int {
	if freq <= 0 {
		return 0
	}
	var missing int
	for i := 1; i < len(t); i++ {
		if steps := int(t[i].Sub(t[i-1]) / freq); steps > 1 {
			missing += steps - 1
		}
	}
	return missing
}
