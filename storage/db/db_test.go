// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/benchagg/benchagg"
	"golang.org/x/benchagg/benchjson"
	"golang.org/x/benchagg/storage/db/dbtest"
)

func resultSet(t *testing.T, reduce bool) *benchagg.ResultSet {
	t.Helper()
	rs, err := benchagg.Aggregate(
		benchagg.Input{Label: "linux/config-suite-b.txt", Data: []byte("SHA-256 : 94852 KiB/s, 30 cycles/byte\nARIA\nMD5 : 1 KiB/s, 2 cycles/byte\n")},
		benchagg.Input{Label: "linux/config-thread.txt", Data: []byte("SHA-256 : 103669 KiB/s, 28 cycles/byte\nARIA\n")},
	)
	if err != nil {
		t.Fatal(err)
	}
	if reduce {
		if err := rs.Reduce(); err != nil {
			t.Fatal(err)
		}
	}
	return rs
}

func marshal(t *testing.T, rs *benchagg.ResultSet) string {
	t.Helper()
	data, err := benchjson.Marshal(rs)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestInsertAndLoad(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	for _, reduce := range []bool{true, false} {
		rs := resultSet(t, reduce)
		u, err := db.InsertResultSet(ctx, "linux", 2, rs)
		if err != nil {
			t.Fatalf("InsertResultSet: %v", err)
		}
		if u.Algorithms != 3 || u.Platform != "linux" || u.Threshold != 2 {
			t.Errorf("upload = %+v", u)
		}

		got, err := db.LoadResultSet(ctx, u.ID)
		if err != nil {
			t.Fatalf("LoadResultSet: %v", err)
		}
		if diff := cmp.Diff(marshal(t, rs), marshal(t, got)); diff != "" {
			t.Errorf("reduce=%v: loaded result set mismatch (-want +got):\n%s", reduce, diff)
		}
	}

	n, err := db.CountUploads()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountUploads() = %d, want 2", n)
	}
}

// TestUploadIDs verifies that uploads get increasing IDs.
func TestUploadIDs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	last := int64(0)
	for i := 0; i < 3; i++ {
		u, err := db.InsertResultSet(ctx, "windows", 4, benchagg.New())
		if err != nil {
			t.Fatalf("InsertResultSet: %v", err)
		}
		id, err := strconv.ParseInt(u.ID, 10, 64)
		if err != nil {
			t.Fatalf("upload ID %q is not numeric", u.ID)
		}
		if id <= last {
			t.Errorf("upload ID %d after %d", id, last)
		}
		last = id
	}
}

func TestGetUpload(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	u, err := db.InsertResultSet(ctx, "linux", 4, resultSet(t, true))
	if err != nil {
		t.Fatal(err)
	}
	got, err := db.GetUpload(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(u, got); diff != "" {
		t.Errorf("GetUpload mismatch (-want +got):\n%s", diff)
	}

	for _, id := range []string{"12345", "x"} {
		if _, err := db.GetUpload(ctx, id); err == nil {
			t.Errorf("GetUpload(%q) succeeded", id)
		}
		if _, err := db.LoadResultSet(ctx, id); err == nil {
			t.Errorf("LoadResultSet(%q) succeeded", id)
		}
	}
}
