// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/benchagg/benchagg"
)

func reduced(t *testing.T) *benchagg.ResultSet {
	t.Helper()
	rs, err := benchagg.Aggregate(
		benchagg.Input{Label: "a", Data: []byte("AES 100 2\nSHA 10 20 30\n")},
		benchagg.Input{Label: "b", Data: []byte("AES 200 4\nSHA 12 22 32\n")},
		benchagg.Input{Label: "c", Data: []byte("AES 150 3\n")},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := rs.Reduce(); err != nil {
		t.Fatal(err)
	}
	return rs
}

func TestCollect(t *testing.T) {
	rs := reduced(t)

	b, err := collect(rs, 1)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"AES", "SHA"}, b.names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	x, y := b.XY(0)
	if x != 0 || y != 3 {
		t.Errorf("XY(0) = %v, %v, want 0, 3", x, y)
	}
	lo, hi := b.YError(0)
	if lo != 1 || hi != 1 {
		t.Errorf("YError(0) = %v, %v, want 1, 1", lo, hi)
	}

	// Only SHA has a third column.
	b, err = collect(rs, 2)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"SHA"}, b.names); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
}

func TestPlot(t *testing.T) {
	rs := reduced(t)
	pl, err := Plot(rs, 0, "linux column 0")
	if err != nil {
		t.Fatal(err)
	}
	if pl.Title.Text != "linux column 0" {
		t.Errorf("title = %q", pl.Title.Text)
	}
	if pl.Y.Min > 0 {
		t.Errorf("Y axis starts at %v, want 0", pl.Y.Min)
	}

	if _, err := Plot(rs, 3, ""); err == nil {
		t.Errorf("Plot of missing column succeeded")
	}
	if _, err := Plot(rs, -1, ""); err == nil {
		t.Errorf("Plot of negative column succeeded")
	}
}

func TestNotReduced(t *testing.T) {
	rs, err := benchagg.Aggregate(benchagg.Input{Label: "a", Data: []byte("AES 1 2\n")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Plot(rs, 0, ""); !errors.Is(err, ErrNotReduced) {
		t.Errorf("Plot: got %v, want ErrNotReduced", err)
	}
	if _, err := Save(rs, t.TempDir(), "linux"); !errors.Is(err, ErrNotReduced) {
		t.Errorf("Save: got %v, want ErrNotReduced", err)
	}
}

func TestSave(t *testing.T) {
	rs := reduced(t)
	dir := filepath.Join(t.TempDir(), "charts")
	files, err := Save(rs, dir, "linux")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "linux_col0.png"),
		filepath.Join(dir, "linux_col1.png"),
		filepath.Join(dir, "linux_col2.png"),
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
			t.Errorf("%s is not a PNG", f)
		}
	}
}
