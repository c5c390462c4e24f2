// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the YAML configuration of a benchagg run.
package config

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// DefaultThreshold is the minimum number of sources an algorithm
// needs when the configuration does not say otherwise.
const DefaultThreshold = 4

// DefaultOutput is the default template for output file names.
const DefaultOutput = "results_{{.Platform}}_{{.Threshold}}_or_more.json"

// Config is the configuration of a benchagg run.
type Config struct {
	// Threshold is the minimum number of distinct sources an
	// algorithm must appear in to be kept.
	Threshold int `yaml:"threshold"`

	// Output is a text/template for the result file of each
	// platform. It is executed with an OutputParams.
	Output string `yaml:"output"`

	Platforms []Platform `yaml:"platforms"`
	Chart     Chart      `yaml:"chart"`
	Database  Database   `yaml:"database"`
	Upload    Upload     `yaml:"upload"`
}

// A Platform is an independent batch of sources, typically the runs
// of every configuration on one operating system.
type Platform struct {
	Name    string   `yaml:"name"`
	Sources []Source `yaml:"sources"`
}

// A Source is one benchmark results file.
type Source struct {
	// Label identifies the source in the results. It defaults to
	// Path.
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

// Chart configures PNG charts of the results. Charts are written only
// if Dir is set.
type Chart struct {
	Dir string `yaml:"dir"`
}

// Enabled reports whether charts are written.
func (c Chart) Enabled() bool { return c.Dir != "" }

// Database configures storing results in a SQL database. Results are
// stored only if Driver is set. Only "sqlite3" and "mysql" are
// supported.
type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Enabled reports whether results are stored in a database.
func (d Database) Enabled() bool { return d.Driver != "" }

// Upload configures copying result files to a Google Cloud Storage
// bucket. Files are uploaded only if Bucket is set.
type Upload struct {
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Enabled reports whether result files are uploaded.
func (u Upload) Enabled() bool { return u.Bucket != "" }

// OutputParams is the data passed to the Output template.
type OutputParams struct {
	Platform  string
	Threshold int
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses and validates a YAML configuration.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Threshold: DefaultThreshold}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &cfg, nil
}

// Validate checks cfg and fills in defaults.
func (cfg *Config) Validate() error {
	if cfg.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %d", cfg.Threshold)
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if _, err := parseOutput(cfg.Output); err != nil {
		return err
	}

	if len(cfg.Platforms) == 0 {
		return fmt.Errorf("no platforms defined")
	}
	names := make(map[string]bool)
	for i := range cfg.Platforms {
		p := &cfg.Platforms[i]
		if p.Name == "" {
			return fmt.Errorf("platform %d: name is required", i)
		}
		if names[p.Name] {
			return fmt.Errorf("platform %q defined more than once", p.Name)
		}
		names[p.Name] = true
		if len(p.Sources) == 0 {
			return fmt.Errorf("platform %q: no sources defined", p.Name)
		}
		labels := make(map[string]bool)
		for j := range p.Sources {
			s := &p.Sources[j]
			if s.Path == "" {
				return fmt.Errorf("platform %q: source %d: path is required", p.Name, j)
			}
			if s.Label == "" {
				s.Label = s.Path
			}
			if labels[s.Label] {
				return fmt.Errorf("platform %q: duplicate source label %q", p.Name, s.Label)
			}
			labels[s.Label] = true
		}
	}

	if cfg.Database.Enabled() {
		switch cfg.Database.Driver {
		case "sqlite3", "mysql":
		default:
			return fmt.Errorf("database: unsupported driver %q", cfg.Database.Driver)
		}
		if cfg.Database.DSN == "" {
			return fmt.Errorf("database: dsn is required")
		}
	}
	return nil
}

// Platform returns the named platform.
func (cfg *Config) Platform(name string) (Platform, bool) {
	for _, p := range cfg.Platforms {
		if p.Name == name {
			return p, true
		}
	}
	return Platform{}, false
}

// OutputPath returns the result file name for the named platform.
func (cfg *Config) OutputPath(platform string) (string, error) {
	tmpl, err := parseOutput(cfg.Output)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, OutputParams{Platform: platform, Threshold: cfg.Threshold}); err != nil {
		return "", fmt.Errorf("output: %w", err)
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("output: template %q produced an empty file name", cfg.Output)
	}
	return buf.String(), nil
}

func parseOutput(text string) (*template.Template, error) {
	if text == "" {
		text = DefaultOutput
	}
	tmpl, err := template.New("output").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}
	return tmpl, nil
}
