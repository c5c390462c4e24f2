// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/benchagg/benchagg"
)

// Read decodes a result file from r. Algorithms and sources keep the
// order in which they appear in the input, so writing the result back
// reproduces the input written by a Writer byte for byte.
func Read(r io.Reader) (*benchagg.ResultSet, error) {
	d := &decoder{json.NewDecoder(r)}
	d.UseNumber()
	rs := benchagg.New()
	err := d.object(func(name string) error {
		rec, err := d.record(name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		rs.Insert(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if _, err := d.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after result set")
	}
	return rs, nil
}

// ReadFile reads the named result file.
func ReadFile(name string) (*benchagg.ResultSet, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rs, nil
}

type decoder struct {
	*json.Decoder
}

// object reads a JSON object, calling field for each key. field must
// consume the key's value.
func (d *decoder) object(field func(key string) error) error {
	if err := d.delim('{'); err != nil {
		return err
	}
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := field(key); err != nil {
			return err
		}
	}
	return d.delim('}')
}

func (d *decoder) record(name string) (*benchagg.Record, error) {
	rec := benchagg.NewRecord(name)
	err := d.object(func(key string) error {
		var err error
		switch key {
		case "sources":
			err = d.object(func(label string) error {
				values, err := d.ints()
				if err != nil {
					return fmt.Errorf("source %s: %w", label, err)
				}
				rec.Set(label, values)
				return nil
			})
		case "medians":
			rec.Medians, err = d.floats()
		case "maxes":
			rec.Maxes, err = d.ints()
		case "mins":
			rec.Mins, err = d.ints()
		default:
			// Skip unknown keys.
			var v json.RawMessage
			err = d.Decode(&v)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := checkStats(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// checkStats reports whether rec carries either no statistics or
// medians, maxes and mins of the same length.
func checkStats(rec *benchagg.Record) error {
	hasMedians, hasMaxes, hasMins := rec.Medians != nil, rec.Maxes != nil, rec.Mins != nil
	if !hasMedians && !hasMaxes && !hasMins {
		return nil
	}
	if !hasMedians || !hasMaxes || !hasMins {
		return fmt.Errorf("medians, maxes and mins must appear together")
	}
	if len(rec.Maxes) != len(rec.Medians) || len(rec.Mins) != len(rec.Medians) {
		return fmt.Errorf("stats lengths differ: %d medians, %d maxes, %d mins",
			len(rec.Medians), len(rec.Maxes), len(rec.Mins))
	}
	return nil
}

func (d *decoder) ints() ([]int64, error) {
	xs := []int64{}
	err := d.array(func(n json.Number) error {
		x, err := n.Int64()
		xs = append(xs, x)
		return err
	})
	return xs, err
}

func (d *decoder) floats() ([]float64, error) {
	xs := []float64{}
	err := d.array(func(n json.Number) error {
		x, err := n.Float64()
		xs = append(xs, x)
		return err
	})
	return xs, err
}

// array reads a JSON array of numbers.
func (d *decoder) array(elem func(json.Number) error) error {
	if err := d.delim('['); err != nil {
		return err
	}
	for d.More() {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		n, ok := tok.(json.Number)
		if !ok {
			return fmt.Errorf("expected number, got %v", tok)
		}
		if err := elem(n); err != nil {
			return err
		}
	}
	return d.delim(']')
}

func (d *decoder) delim(want json.Delim) error {
	tok, err := d.Token()
	if err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	if got, ok := tok.(json.Delim); !ok || got != want {
		return fmt.Errorf("expected %v, got %v", want, tok)
	}
	return nil
}
