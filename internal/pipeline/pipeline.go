// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline runs the configured platforms of a benchagg
// configuration: it reads every source, aggregates, filters and
// reduces the results, and writes them out.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/benchagg/benchagg"
	"golang.org/x/benchagg/benchchart"
	"golang.org/x/benchagg/benchjson"
	"golang.org/x/benchagg/internal/config"
	"golang.org/x/benchagg/storage/db"
)

// A Store records reduced result sets. *db.DB implements Store.
type Store interface {
	InsertResultSet(ctx context.Context, platform string, threshold int, rs *benchagg.ResultSet) (*db.Upload, error)
}

// An Uploader publishes result files. *gcs.Uploader implements
// Uploader.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Options control optional steps of a run.
type Options struct {
	// Log receives progress. If nil, the standard logrus logger is
	// used.
	Log logrus.FieldLogger

	// Store, if non-nil, receives every reduced result set.
	Store Store

	// Uploader, if non-nil, uploads every result file.
	Uploader Uploader

	// Platforms restricts the run to the named platforms. If empty,
	// every configured platform runs.
	Platforms []string

	// Report, if non-nil, is called after each platform completes.
	Report func(*Summary)
}

func (o *Options) log() logrus.FieldLogger {
	if o.Log == nil {
		return logrus.StandardLogger()
	}
	return o.Log
}

// A Summary describes the result of one platform.
type Summary struct {
	Platform  string
	Threshold int

	// Sources is the number of sources read.
	Sources int
	// Parsed is the number of algorithms before filtering.
	Parsed int
	// Algorithms is the number of algorithms written.
	Algorithms int

	// Output is the result file.
	Output string
	// Charts lists the chart files, if charts are enabled.
	Charts []string
	// UploadID is the database upload, if a Store is set.
	UploadID string
	// Object is the uploaded result file, if an Uploader is set.
	Object string
}

// Select returns the platforms of cfg named by names, in configuration
// order. If names is empty, it returns every platform.
func Select(cfg *config.Config, names []string) ([]config.Platform, error) {
	if len(names) == 0 {
		return cfg.Platforms, nil
	}
	want := make(map[string]bool)
	for _, name := range names {
		if _, ok := cfg.Platform(name); !ok {
			return nil, fmt.Errorf("unknown platform %q", name)
		}
		want[name] = true
	}
	var ps []config.Platform
	for _, p := range cfg.Platforms {
		if want[p.Name] {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

// Run runs every selected platform of cfg in order. It stops at the
// first platform that fails and returns the summaries of the platforms
// that completed.
func Run(ctx context.Context, cfg *config.Config, opts Options) ([]Summary, error) {
	platforms, err := Select(cfg, opts.Platforms)
	if err != nil {
		return nil, err
	}
	var sums []Summary
	for _, p := range platforms {
		if err := ctx.Err(); err != nil {
			return sums, err
		}
		s, err := RunPlatform(ctx, cfg, p, opts)
		if err != nil {
			return sums, err
		}
		if opts.Report != nil {
			opts.Report(s)
		}
		sums = append(sums, *s)
	}
	return sums, nil
}

// RunPlatform processes a single platform. Every source is read before
// anything is written, so a failure leaves no output for p.
func RunPlatform(ctx context.Context, cfg *config.Config, p config.Platform, opts Options) (*Summary, error) {
	log := opts.log().WithField("platform", p.Name)

	inputs := make([]benchagg.Input, 0, len(p.Sources))
	for _, src := range p.Sources {
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		log.WithFields(logrus.Fields{"source": src.Label, "bytes": len(data)}).Debug("read source")
		inputs = append(inputs, benchagg.Input{Label: src.Label, Data: data})
	}

	all, err := benchagg.Aggregate(inputs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	rs := all.Filter(cfg.Threshold)
	log.WithFields(logrus.Fields{
		"sources":    len(inputs),
		"parsed":     all.Len(),
		"algorithms": rs.Len(),
		"threshold":  cfg.Threshold,
	}).Info("filtered algorithms")

	if err := rs.Reduce(); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	out, err := cfg.OutputPath(p.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
	}
	if err := benchjson.WriteFile(out, rs); err != nil {
		return nil, fmt.Errorf("%s: writing %s: %w", p.Name, out, err)
	}
	log.WithField("output", out).Info("saved results")

	sum := &Summary{
		Platform:   p.Name,
		Threshold:  cfg.Threshold,
		Sources:    len(inputs),
		Parsed:     all.Len(),
		Algorithms: rs.Len(),
		Output:     out,
	}

	if cfg.Chart.Enabled() {
		sum.Charts, err = benchchart.Save(rs, cfg.Chart.Dir, p.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: charts: %w", p.Name, err)
		}
		log.WithField("charts", len(sum.Charts)).Debug("saved charts")
	}

	if opts.Store != nil {
		u, err := opts.Store.InsertResultSet(ctx, p.Name, cfg.Threshold, rs)
		if err != nil {
			return nil, fmt.Errorf("%s: storing results: %w", p.Name, err)
		}
		sum.UploadID = u.ID
		log.WithField("upload", u.ID).Info("stored results")
	}

	if opts.Uploader != nil {
		sum.Object, err = opts.Uploader.Upload(ctx, out)
		if err != nil {
			return nil, fmt.Errorf("%s: uploading %s: %w", p.Name, out, err)
		}
		log.WithField("object", sum.Object).Info("uploaded results")
	}
	return sum, nil
}
