// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchagg

// Filter returns a new ResultSet holding only the algorithms that were
// seen in at least n distinct sources, in the same order as rs.
//
// rs is not modified. The returned ResultSet shares its records with
// rs, so reducing one is visible through the other.
func (rs *ResultSet) Filter(n int) *ResultSet {
	out := New()
	for _, name := range rs.Algorithms {
		rec := rs.Records[name]
		if rec.NumSources() < n {
			continue
		}
		out.Algorithms = append(out.Algorithms, name)
		out.Records[name] = rec
	}
	return out
}
