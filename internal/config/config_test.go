// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/benchagg/internal/config"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("testdata/minimal.yaml")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, config.DefaultOutput, cfg.Output)
	require.Len(t, cfg.Platforms, 1)
	src := cfg.Platforms[0].Sources[0]
	assert.Equal(t, "linux_data/config-suite-b.txt", src.Label, "label defaults to path")
	assert.False(t, cfg.Chart.Enabled())
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Upload.Enabled())

	out, err := cfg.OutputPath("linux")
	require.NoError(t, err)
	assert.Equal(t, "results_linux_4_or_more.json", out)
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("testdata/full.yaml")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Threshold)
	require.Len(t, cfg.Platforms, 2)
	assert.Equal(t, "thread", cfg.Platforms[0].Sources[1].Label)
	assert.True(t, cfg.Chart.Enabled())
	assert.Equal(t, config.Database{Driver: "sqlite3", DSN: "results.db"}, cfg.Database)
	assert.Equal(t, "key.json", cfg.Upload.CredentialsFile)

	p, ok := cfg.Platform("windows")
	require.True(t, ok)
	assert.Len(t, p.Sources, 1)
	_, ok = cfg.Platform("plan9")
	assert.False(t, ok)

	out, err := cfg.OutputPath("windows")
	require.NoError(t, err)
	assert.Equal(t, "out/windows-2.json", out)
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load("testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestParseZeroThreshold(t *testing.T) {
	cfg, err := config.Parse([]byte("threshold: 0\nplatforms: [{name: a, sources: [{path: x}]}]\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Threshold)
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name, yaml, err string
	}{
		{"negative threshold", "threshold: -1\nplatforms: [{name: a, sources: [{path: x}]}]", "threshold must not be negative"},
		{"no platforms", "threshold: 1", "no platforms defined"},
		{"unnamed platform", "platforms: [{sources: [{path: x}]}]", "platform 0: name is required"},
		{"duplicate platform", "platforms: [{name: a, sources: [{path: x}]}, {name: a, sources: [{path: y}]}]", `platform "a" defined more than once`},
		{"no sources", "platforms: [{name: a}]", `platform "a": no sources defined`},
		{"no path", "platforms: [{name: a, sources: [{label: x}]}]", `platform "a": source 0: path is required`},
		{"duplicate label", "platforms: [{name: a, sources: [{path: x}, {path: y, label: x}]}]", `duplicate source label "x"`},
		{"bad template", "output: '{{.Platform'\nplatforms: [{name: a, sources: [{path: x}]}]", "output:"},
		{"bad driver", "database: {driver: postgres, dsn: x}\nplatforms: [{name: a, sources: [{path: x}]}]", `unsupported driver "postgres"`},
		{"no dsn", "database: {driver: mysql}\nplatforms: [{name: a, sources: [{path: x}]}]", "dsn is required"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := config.Parse([]byte(test.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.err)
		})
	}
}

func TestOutputPathUnknownField(t *testing.T) {
	cfg := &config.Config{Output: "{{.Arch}}.json"}
	_, err := cfg.OutputPath("linux")
	assert.Error(t, err)

	cfg = &config.Config{Output: "{{if false}}x{{end}}"}
	_, err = cfg.OutputPath("linux")
	assert.Error(t, err)
}
