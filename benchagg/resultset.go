// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg aggregates benchmark lines from several sources
// into per-algorithm records and summarizes them.
//
// A typical pipeline reads each source into a ResultSet, drops the
// algorithms that were not seen in enough sources, and then computes
// per-column statistics:
//
//	rs, err := benchagg.Aggregate(inputs...)
//	if err != nil { ... }
//	rs = rs.Filter(4)
//	if err := rs.Reduce(); err != nil { ... }
package benchagg

import (
	"bytes"
	"io"

	"golang.org/x/benchagg/benchline"
)

// A ResultSet maps algorithm names to their records.
//
// Algorithms are kept in the order they were first seen.
type ResultSet struct {
	// Algorithms lists the keys of Records in insertion order.
	Algorithms []string

	// Records holds the record of each algorithm.
	Records map[string]*Record
}

// A Record holds everything known about one algorithm: one metric
// vector per source and, once Reduce has run, the per-column
// statistics across those sources.
type Record struct {
	Name string

	sources []Source
	index   map[string]int // label -> index in sources

	// Medians, Maxes, and Mins are the column-wise statistics
	// computed by Reduce. They are nil until then.
	Medians []float64
	Maxes   []int64
	Mins    []int64
}

// A Source is the metric vector one source contributed to a Record.
type Source struct {
	Label  string
	Values []int64
}

// An Input is one labeled source of benchmark lines.
type Input struct {
	// Label identifies the source in the records it contributes to.
	Label string

	// Data is the full text of the source.
	Data []byte
}

// New returns an empty ResultSet.
func New() *ResultSet {
	return &ResultSet{Records: make(map[string]*Record)}
}

// Aggregate builds a ResultSet from inputs, processed in order.
// It stops at the first line that cannot be parsed.
func Aggregate(inputs ...Input) (*ResultSet, error) {
	rs := New()
	for _, in := range inputs {
		if err := rs.AddFile(in.Label, bytes.NewReader(in.Data)); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Len returns the number of algorithms in rs.
func (rs *ResultSet) Len() int {
	return len(rs.Algorithms)
}

// Get returns the record for the named algorithm, or nil.
func (rs *ResultSet) Get(name string) *Record {
	return rs.Records[name]
}

// record returns the record with the given name from rs,
// creating a new one if needed.
func (rs *ResultSet) record(name string) *Record {
	if rs.Records == nil {
		rs.Records = make(map[string]*Record)
	}
	if rec, ok := rs.Records[name]; ok {
		return rec
	}
	rec := NewRecord(name)
	rs.Records[name] = rec
	rs.Algorithms = append(rs.Algorithms, name)
	return rec
}

// Insert adds rec to rs. If rs already has a record with the same
// name, rec replaces it without changing the order of rs.
func (rs *ResultSet) Insert(rec *Record) {
	if rs.Records == nil {
		rs.Records = make(map[string]*Record)
	}
	if _, ok := rs.Records[rec.Name]; !ok {
		rs.Algorithms = append(rs.Algorithms, rec.Name)
	}
	rs.Records[rec.Name] = rec
}

// Add records line as the contribution of source label. If label
// already contributed to the same algorithm, the new values replace
// the old ones.
func (rs *ResultSet) Add(label string, line *benchline.Line) {
	rs.record(line.Name).Set(label, line.Values)
}

// AddFile adds every line read from r as a contribution of source
// label. It returns the first error encountered; lines before that
// error have already been added.
func (rs *ResultSet) AddFile(label string, r io.Reader) error {
	rd := benchline.NewReader(r, label)
	for rd.Scan() {
		rs.Add(label, rd.Line())
	}
	return rd.Err()
}

// NewRecord returns an empty record for the named algorithm.
func NewRecord(name string) *Record {
	return &Record{Name: name, index: make(map[string]int)}
}

// Set sets the metric vector of source label. A label that is already
// present keeps its position.
func (r *Record) Set(label string, values []int64) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[label]; ok {
		r.sources[i].Values = values
		return
	}
	r.index[label] = len(r.sources)
	r.sources = append(r.sources, Source{label, values})
}

// Sources returns the sources of r in the order they were added.
// The caller must not modify the result.
func (r *Record) Sources() []Source {
	return r.sources
}

// Source returns the metric vector of source label.
func (r *Record) Source(label string) (values []int64, ok bool) {
	i, ok := r.index[label]
	if !ok {
		return nil, false
	}
	return r.sources[i].Values, true
}

// NumSources returns the number of distinct sources that contributed
// to r.
func (r *Record) NumSources() int {
	return len(r.sources)
}

// Reduced reports whether the statistics of r have been computed.
func (r *Record) Reduced() bool {
	return r.Medians != nil
}
