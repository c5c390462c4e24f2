// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchagg aggregates benchmark results collected on several platforms.
//
// Usage:
//
//	benchagg [-config file] [-v] run [-threshold n] [-platform name]...
//	benchagg show results.json...
//	benchagg parse file...
//
// Each source file holds one line per algorithm: the algorithm name
// followed by its metrics, for example
//
//	AES 100 2
//	SHA-256: 99, 1
//
// The run command reads the YAML configuration (benchagg.yaml by
// default), which groups source files into platforms. For every
// platform it collects the metric vectors of each algorithm across the
// sources, drops algorithms seen in fewer than threshold sources,
// computes the median, maximum and minimum of every metric column, and
// writes the results as JSON to the configured output file. When the
// configuration asks for it, run also draws a chart per metric column,
// stores the results in a SQL database and uploads the JSON file to a
// Google Cloud Storage bucket.
//
// The show command prints result files as text tables.
//
// The parse command prints the lines of source files as benchagg
// tokenizes them.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
