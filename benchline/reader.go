// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineLen is the longest line a Reader accepts.
const maxLineLen = 1 << 20

// A Reader reads the lines of a benchmark results file.
//
// Its API is modeled on bufio.Scanner. Blank lines are skipped. A
// Reader stops at the first line it cannot parse.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	line     int

	cur *Line
	err error
}

// NewReader returns a Reader that reads lines from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	if fileName == "" {
		fileName = "<unknown>"
	}
	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineLen)
	return &Reader{s: s, fileName: fileName}
}

// Scan advances the reader to the next line and reports whether a
// line was read. The caller should use the Line method to get it.
// If Scan reaches EOF, hits a malformed line, or an I/O error occurs,
// it returns false, in which case the caller should use the Err method
// to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	r.cur = nil
	for r.s.Scan() {
		r.line++
		text := r.s.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		l, err := Parse(text)
		if err != nil {
			var se *SyntaxError
			if errors.As(err, &se) {
				se.FileName, se.Line = r.fileName, r.line
			}
			r.err = err
			return false
		}
		r.cur = l
		return true
	}
	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
	}
	return false
}

// Line returns the line read by the last call to Scan, or nil if Scan
// has not returned true.
func (r *Reader) Line() *Line {
	return r.cur
}

// Err returns the first syntax or non-EOF I/O error encountered by
// the Reader.
func (r *Reader) Err() error {
	return r.err
}

// ReadAll reads every line from r. It returns the lines read before
// the first error along with that error.
func ReadAll(r io.Reader, fileName string) ([]*Line, error) {
	var lines []*Line
	rd := NewReader(r, fileName)
	for rd.Scan() {
		lines = append(lines, rd.Line())
	}
	return lines, rd.Err()
}
