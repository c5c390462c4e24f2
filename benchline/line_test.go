// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchline

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		line string
		want *Line
	}{
		{"AES 100 2", &Line{"AES", []int64{100, 2}}},
		{"\tAES   100\t2  ", &Line{"AES", []int64{100, 2}}},
		{
			"  SHA-256                  :     116855 KiB/s,          17 cycles/byte",
			&Line{"SHA-256", []int64{116855, 17}},
		},
		{"  RSA-2048 : 2436 public/s", &Line{"RSA-2048", []int64{2436}}},
		// Delimiters split the name.
		{"SHA,256:99,1", &Line{"SHA", []int64{256, 99, 1}}},
		// Whitespace inside a name is removed.
		{"HMAC_DRBG SHA-256 (NOPR):  1024 KiB/s", &Line{"HMAC_DRBGSHA-256(NOPR)", []int64{1024}}},
		// '.' splits decimal values.
		{"ECDHE-secp256r1 : 1.25 handshake/s", &Line{"ECDHE-secp256r1", []int64{1, 25}}},
		{"ARIA", &Line{"ARIA", []int64{}}},
		{"ARIA:", nil},
		{"MD5; 0x10", &Line{"MD5", []int64{10}}},
	} {
		got, err := Parse(test.line)
		if test.want == nil {
			if err == nil {
				t.Errorf("Parse(%q) = %v, want error", test.line, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", test.line, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestParseValueCount(t *testing.T) {
	// For well-formed lines, the number of values equals the
	// number of fields after the name.
	for _, line := range []string{
		"A 1",
		"A 1 2 3 4 5",
		"A:1,2;3",
		"A : 1 x/s, 2 y/s, 3 z/s",
	} {
		l, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		if want := len(Fields(line)) - 1; len(l.Values) != want {
			t.Errorf("Parse(%q) has %d values, want %d", line, len(l.Values), want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		line, msg string
	}{
		{"", "missing algorithm name"},
		{"   \t", "missing algorithm name"},
		{":1", "missing algorithm name"},
		{"A,,1", `metric "" has no digits`},
		{"A: 1,", `metric "" has no digits`},
		{"A: n/a", `metric "n/a" has no digits`},
		{"A 99999999999999999999", `parsing metric "99999999999999999999": value out of range`},
	} {
		_, err := Parse(test.line)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) error = %v, want *SyntaxError", test.line, err)
			continue
		}
		if se.Msg != test.msg {
			t.Errorf("Parse(%q) error = %q, want %q", test.line, se.Msg, test.msg)
		}
	}
}

func TestParseMetric(t *testing.T) {
	check := func(field string, want int64) {
		t.Helper()
		got, err := ParseMetric(field)
		if err != nil {
			t.Errorf("ParseMetric(%q): %v", field, err)
		} else if got != want {
			t.Errorf("ParseMetric(%q) = %d, want %d", field, got, want)
		}
	}
	check("0", 0)
	check("42", 42)
	check("116855KiB/s", 116855)
	check("17cycles/byte", 17)
	check("-5", 5)
	check("1e3", 13)
	check("٣7", 7)
	check("9007199254740993", 1<<53+1)
	check("9223372036854775807B/s", math.MaxInt64)

	for _, field := range []string{"KiB/s", "9223372036854775808"} {
		if _, err := ParseMetric(field); err == nil {
			t.Errorf("ParseMetric(%q) succeeded, want error", field)
		}
	}
}

func TestFields(t *testing.T) {
	for _, test := range []struct {
		line string
		want []string
	}{
		{"a b  c", []string{"a", "b", "c"}},
		{"a : b , c", []string{"a", "b", "c"}},
		{"a,,b", []string{"a", "", "b"}},
		{"a:", []string{"a", ""}},
		{"", []string{}},
	} {
		got := Fields(test.line)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Fields(%q) mismatch (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestLineString(t *testing.T) {
	l := &Line{"SHA-256", []int64{116855, 17}}
	if got, want := l.String(), "SHA-256: 116855 17"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReader(t *testing.T) {
	const input = `  SHA-256 :  116855 KiB/s,  17 cycles/byte

  SHA-512 :  98789 KiB/s,  0 cycles/byte
AES 100 2
`
	lines, err := ReadAll(strings.NewReader(input), "in.txt")
	if err != nil {
		t.Fatal(err)
	}
	want := []*Line{
		{"SHA-256", []int64{116855, 17}},
		{"SHA-512", []int64{98789, 0}},
		{"AES", []int64{100, 2}},
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("ReadAll mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderSyntaxError(t *testing.T) {
	const input = "A 1 2\n\nB: x/s\nC 3 4\n"
	r := NewReader(strings.NewReader(input), "bad.txt")
	var names []string
	for r.Scan() {
		names = append(names, r.Line().Name)
	}
	if diff := cmp.Diff([]string{"A"}, names); diff != "" {
		t.Errorf("lines before error mismatch (-want +got):\n%s", diff)
	}
	err := r.Err()
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Err() = %v, want *SyntaxError", err)
	}
	if file, line := se.Pos(); file != "bad.txt" || line != 3 {
		t.Errorf("Pos() = %s:%d, want bad.txt:3", file, line)
	}
	if got, want := err.Error(), `bad.txt:3: metric "x/s" has no digits`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if r.Scan() {
		t.Errorf("Scan after error returned true")
	}
}

func TestReaderEmpty(t *testing.T) {
	r := NewReader(strings.NewReader(""), "")
	if r.Scan() {
		t.Fatalf("Scan on empty input returned true")
	}
	if r.Err() != nil {
		t.Fatalf("Err() = %v, want nil", r.Err())
	}
	if r.Line() != nil {
		t.Fatalf("Line() = %v, want nil", r.Line())
	}
}
