// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath computes the median and bounds of a column of
// benchmark measurements.
package benchmath

import (
	"math"
	"math/big"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Sample is a set of measurements of one metric of one benchmark,
// typically one measurement per configuration run.
type Sample struct {
	// Values are the measured values, in ascending order.
	Values []float64
}

// NewSample constructs a Sample from a set of measurements.
// It does not modify values.
func NewSample(values []float64) *Sample {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return &Sample{sorted}
}

func (s *Sample) sample() stats.Sample {
	return stats.Sample{Xs: s.Values, Sorted: true}
}

// Len returns the number of measurements in s.
func (s *Sample) Len() int {
	return len(s.Values)
}

// Median returns the median of s. For an odd number of values this is
// the middle value; for an even number it is the mean of the two
// middle values. The median of an empty sample is NaN.
func (s *Sample) Median() float64 {
	n := len(s.Values)
	switch {
	case n == 0:
		return math.NaN()
	case n%2 == 1:
		return s.Values[n/2]
	}
	lo, hi := s.Values[n/2-1], s.Values[n/2]
	// Halve before adding so large values don't overflow.
	return lo/2 + hi/2
}

// Bounds returns the minimum and maximum values of s.
// Both are NaN for an empty sample.
func (s *Sample) Bounds() (min, max float64) {
	if len(s.Values) == 0 {
		return math.NaN(), math.NaN()
	}
	return s.sample().Bounds()
}

// A Summary summarizes a Sample.
type Summary struct {
	// Median is the median of the sample.
	Median float64

	// Min and Max are the bounds of the sample.
	Min, Max float64

	// N is the number of values in the sample.
	N int
}

// Summary returns the median and bounds of s.
func (s *Sample) Summary() Summary {
	lo, hi := s.Bounds()
	return Summary{Median: s.Median(), Min: lo, Max: hi, N: len(s.Values)}
}

// An IntSample is a set of integer measurements of one metric.
//
// Its bounds are exact for every int64. Its median is the exact
// midpoint rounded once to the nearest float64.
type IntSample struct {
	// Values are the measured values, in ascending order.
	Values []int64
}

// NewIntSample constructs an IntSample from integer measurements.
// It does not modify values.
func NewIntSample(values []int64) *IntSample {
	sorted := append([]int64(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &IntSample{sorted}
}

// Len returns the number of measurements in s.
func (s *IntSample) Len() int {
	return len(s.Values)
}

// Median returns the median of s: the middle value for an odd number
// of values, or the mean of the two middle values for an even number.
// The median of an empty sample is NaN.
func (s *IntSample) Median() float64 {
	n := len(s.Values)
	switch {
	case n == 0:
		return math.NaN()
	case n%2 == 1:
		return float64(s.Values[n/2])
	}
	sum := new(big.Int).SetInt64(s.Values[n/2-1])
	sum.Add(sum, big.NewInt(s.Values[n/2]))
	m, _ := new(big.Rat).SetFrac(sum, big.NewInt(2)).Float64()
	return m
}

// Bounds returns the minimum and maximum values of s.
// It panics if s is empty.
func (s *IntSample) Bounds() (min, max int64) {
	return s.Values[0], s.Values[len(s.Values)-1]
}

// An IntSummary summarizes an IntSample.
type IntSummary struct {
	Median   float64
	Min, Max int64
	N        int
}

// Summary returns the median and bounds of s. s must not be empty.
func (s *IntSample) Summary() IntSummary {
	lo, hi := s.Bounds()
	return IntSummary{Median: s.Median(), Min: lo, Max: hi, N: len(s.Values)}
}
