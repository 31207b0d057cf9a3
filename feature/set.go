package feature

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrDataLenMismatch = errors.New("feature data length does not match the set")
	ErrUnknownFeature  = errors.New("feature not found in set")
	ErrEmptySet        = errors.New("no observations in feature set")
)

// Set stores the column data of each feature keyed by the string representation of
// the feature. Labels are kept in insertion order which also determines the column
// order of Matrix.
type Set struct {
	m      int
	set    map[string][]float64
	labels []Feature
}

// NewSet initializes an empty feature set
func NewSet() *Set {
	return &Set{
		set: make(map[string][]float64),
	}
}

// Len returns the number of observations tracked by each feature
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.m
}

// Set stores a copy of the feature data. Every feature in the set must have the same
// number of observations.
func (s *Set) Set(f Feature, data []float64) error {
	if s == nil {
		return ErrEmptySet
	}
	if len(s.labels) > 0 && len(data) != s.m {
		return fmt.Errorf("%s has %d observations, expected %d, %w", f, len(data), s.m, ErrDataLenMismatch)
	}

	dst := make([]float64, len(data))
	copy(dst, data)

	label := f.String()
	if _, exists := s.set[label]; !exists {
		s.labels = append(s.labels, f)
	}
	s.set[label] = dst
	s.m = len(data)
	return nil
}

// Get returns the feature data and whether the feature exists in the set
func (s *Set) Get(f Feature) ([]float64, bool) {
	if s == nil {
		return nil, false
	}
	data, exists := s.set[f.String()]
	return data, exists
}

// Labels returns the tracked features in insertion order
func (s *Set) Labels() []Feature {
	if s == nil {
		return nil
	}
	return append([]Feature{}, s.labels...)
}

// Names returns the string representation of each tracked feature in insertion order
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.labels))
	for _, f := range s.labels {
		names = append(names, f.String())
	}
	return names
}

// Matrix returns an m x n matrix of the requested features where m is the number of
// observations and columns follow the order of the input features. A feature missing
// from the set is reported by name.
func (s *Set) Matrix(features []Feature) (*mat.Dense, error) {
	if s == nil || s.m == 0 {
		return nil, ErrEmptySet
	}

	n := len(features)
	obs := make([]float64, s.m*n)
	for j, f := range features {
		data, exists := s.Get(f)
		if !exists {
			return nil, fmt.Errorf("%s, %w", f, ErrUnknownFeature)
		}
		for i := 0; i < s.m; i++ {
			obs[n*i+j] = data[i]
		}
	}
	return mat.NewDense(s.m, n, obs), nil
}
