// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchjson reads and writes aggregated benchmark results as
// JSON.
//
// A result file is a single JSON object keyed by algorithm name, in
// ResultSet order:
//
//	{"SHA-256":{"sources":{"config-thread.txt":[180238,14]},"medians":[180238.0,14.0],"maxes":[180238,14],"mins":[180238,14]}}
//
// Medians are always written as floating-point literals, even when
// they are whole numbers. The "medians", "maxes" and "mins" keys are
// omitted for records that have not been reduced.
package benchjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"golang.org/x/benchagg/benchagg"
)

// A Writer writes ResultSets as JSON.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter returns a writer that writes result sets to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes rs to w as a single line of JSON. Nothing is written if
// rs cannot be encoded.
func (w *Writer) Write(rs *benchagg.ResultSet) error {
	buf, err := appendResultSet(w.buf[:0], rs)
	if err != nil {
		return err
	}
	buf = append(buf, '\n')
	w.buf = buf
	_, err = w.w.Write(buf)
	return err
}

// Marshal returns the JSON encoding of rs, without a trailing newline.
func Marshal(rs *benchagg.ResultSet) ([]byte, error) {
	return appendResultSet(nil, rs)
}

// WriteFile writes rs to the named file, creating or truncating it.
// The file is not touched if rs cannot be encoded.
func WriteFile(name string, rs *benchagg.ResultSet) error {
	data, err := Marshal(rs)
	if err != nil {
		return err
	}
	return os.WriteFile(name, append(data, '\n'), 0o666)
}

func appendResultSet(b []byte, rs *benchagg.ResultSet) ([]byte, error) {
	var err error
	b = append(b, '{')
	for i, name := range rs.Algorithms {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendString(b, name)
		b = append(b, ':')
		if b, err = appendRecord(b, rs.Records[name]); err != nil {
			return nil, err
		}
	}
	return append(b, '}'), nil
}

func appendRecord(b []byte, rec *benchagg.Record) ([]byte, error) {
	b = append(b, `{"sources":{`...)
	for i, src := range rec.Sources() {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendString(b, src.Label)
		b = append(b, ':')
		b = appendInts(b, src.Values)
	}
	b = append(b, '}')
	if rec.Reduced() {
		b = append(b, `,"medians":[`...)
		for i, m := range rec.Medians {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			if b, err = appendFloat(b, m); err != nil {
				return nil, fmt.Errorf("%s: median %d: %w", rec.Name, i, err)
			}
		}
		b = append(b, `],"maxes":`...)
		b = appendInts(b, rec.Maxes)
		b = append(b, `,"mins":`...)
		b = appendInts(b, rec.Mins)
	}
	return append(b, '}'), nil
}

func appendString(b []byte, s string) []byte {
	// Marshaling a string cannot fail.
	enc, _ := json.Marshal(s)
	return append(b, enc...)
}

func appendInts(b []byte, xs []int64) []byte {
	b = append(b, '[')
	for i, x := range xs {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, x, 10)
	}
	return append(b, ']')
}

// appendFloat appends f in the shortest form that reads back as the
// same float64 and is recognizably a float: whole numbers get a ".0"
// suffix, and very large or small magnitudes use an exponent.
func appendFloat(b []byte, f float64) ([]byte, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("unsupported value %v", f)
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.AppendFloat(b, f, 'e', -1, 64), nil
	}
	n := len(b)
	b = strconv.AppendFloat(b, f, 'f', -1, 64)
	if !bytes.ContainsRune(b[n:], '.') {
		b = append(b, '.', '0')
	}
	return b, nil
}
