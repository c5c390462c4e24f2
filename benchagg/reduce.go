// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

import (
	"errors"
	"fmt"

	"golang.org/x/benchagg/benchmath"
)

// ErrNoSources is returned by Reduce for a record with no sources.
var ErrNoSources = errors.New("no sources")

// A ColumnMismatchError reports a source whose metric vector does not
// have the same number of columns as the first source of the record.
type ColumnMismatchError struct {
	Algorithm string
	Label     string // source with the unexpected vector
	Got, Want int    // column counts
}

func (e *ColumnMismatchError) Error() string {
	return fmt.Sprintf("%s: source %s has %d columns, want %d", e.Algorithm, e.Label, e.Got, e.Want)
}

// Reduce computes the statistics of every record in rs.
// It stops at the first record that cannot be reduced.
func (rs *ResultSet) Reduce() error {
	for _, name := range rs.Algorithms {
		if err := rs.Records[name].Reduce(); err != nil {
			return err
		}
	}
	return nil
}

// Reduce computes the column-wise median, maximum, and minimum of r's
// metric vectors across all of its sources, replacing any statistics
// computed earlier.
//
// The first source determines the number of columns. If any other
// source has a different number, Reduce returns a
// *ColumnMismatchError and leaves r unchanged.
func (r *Record) Reduce() error {
	if len(r.sources) == 0 {
		return fmt.Errorf("%s: %w", r.Name, ErrNoSources)
	}
	cols := len(r.sources[0].Values)
	for _, src := range r.sources[1:] {
		if len(src.Values) != cols {
			return &ColumnMismatchError{r.Name, src.Label, len(src.Values), cols}
		}
	}

	medians := make([]float64, 0, cols)
	maxes := make([]int64, 0, cols)
	mins := make([]int64, 0, cols)
	column := make([]int64, len(r.sources))
	for i := 0; i < cols; i++ {
		for j, src := range r.sources {
			column[j] = src.Values[i]
		}
		sum := benchmath.NewIntSample(column).Summary()
		medians = append(medians, sum.Median)
		maxes = append(maxes, sum.Max)
		mins = append(mins, sum.Min)
	}
	r.Medians, r.Maxes, r.Mins = medians, maxes, mins
	return nil
}
