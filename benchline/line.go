// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchline parses the per-algorithm lines of a benchmark
// results file.
//
// A line names an algorithm followed by a sequence of integer
// metrics, for example
//
//	  SHA-256                  :     116855 KiB/s,          17 cycles/byte
//
// Parsing first removes every whitespace character from the line and
// then splits the result on the delimiters ',', ';', '.' and ':'. The
// first field is the algorithm name, taken verbatim. Every following
// field is reduced to its decimal digits and parsed as an integer, so
// the line above yields the name "SHA-256" and the metrics
// [116855 17].
//
// Because whitespace is removed before splitting, a delimiter inside
// an algorithm name splits the name: "SHA,256:99,1" yields the name
// "SHA" and the metrics [256 99 1]. Lines that contain no delimiter at
// all would collapse into a single field, so those are split on
// whitespace instead: "AES 100 2" yields "AES" and [100 2].
package benchline

import (
	"fmt"
	"strconv"
	"strings"
)

// delims are the field delimiters of a collapsed line.
const delims = ",;.:"

// A Line is a single parsed benchmark line.
type Line struct {
	// Name is the algorithm name, the first field of the line.
	Name string

	// Values are the metrics following the name, in line order.
	Values []int64
}

// String returns l in the form "name: v1 v2 ...".
func (l *Line) String() string {
	var sb strings.Builder
	sb.WriteString(l.Name)
	sb.WriteByte(':')
	for _, v := range l.Values {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

// A SyntaxError represents a line that could not be parsed.
//
// Errors returned by Parse and ParseMetric have no position. Errors
// returned by a Reader carry the file name and 1-based line number.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	if e.FileName == "" && e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// Parse parses a single line of text.
// If the line cannot be parsed, Parse returns a *SyntaxError.
func Parse(text string) (*Line, error) {
	fields := Fields(text)
	if len(fields) == 0 || fields[0] == "" {
		return nil, &SyntaxError{Msg: "missing algorithm name"}
	}
	l := &Line{Name: fields[0], Values: make([]int64, 0, len(fields)-1)}
	for _, f := range fields[1:] {
		v, err := ParseMetric(f)
		if err != nil {
			return nil, err
		}
		l.Values = append(l.Values, v)
	}
	return l, nil
}

// Fields splits text into its name and metric fields without
// interpreting them.
//
// If text contains any delimiter, all whitespace is removed and the
// remainder is split at every delimiter. Empty fields are kept, so
// "a,,1" has three fields. Otherwise text is split around runs of
// whitespace.
func Fields(text string) []string {
	if !strings.ContainsAny(text, delims) {
		return strings.Fields(text)
	}
	collapsed := strings.Join(strings.Fields(text), "")
	var fields []string
	for {
		i := strings.IndexAny(collapsed, delims)
		if i < 0 {
			return append(fields, collapsed)
		}
		fields = append(fields, collapsed[:i])
		collapsed = collapsed[i+1:]
	}
}

// ParseMetric parses a single metric field. All characters other than
// the ASCII digits 0-9 are discarded and the remaining digits are
// parsed as a base-10 integer, so "116855KiB/s" is 116855.
//
// It returns a *SyntaxError if field contains no digits or if the
// value does not fit in an int64.
func ParseMetric(field string) (int64, error) {
	digits := strings.Map(func(r rune) rune {
		if '0' <= r && r <= '9' {
			return r
		}
		return -1
	}, field)
	if digits == "" {
		return 0, &SyntaxError{Msg: fmt.Sprintf("metric %q has no digits", field)}
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return 0, &SyntaxError{Msg: fmt.Sprintf("parsing metric %q: %v", field, err)}
	}
	return v, nil
}
