// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/benchagg/internal/config"
	"golang.org/x/benchagg/internal/pipeline"
	"golang.org/x/benchagg/storage/db"
	_ "golang.org/x/benchagg/storage/db/sqlite3"
	"golang.org/x/benchagg/storage/gcs"
)

func newRunCmd(f *rootFlags, log *logrus.Logger) *cobra.Command {
	var (
		threshold int
		platforms []string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Aggregate the sources of every configured platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.config)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("threshold") {
				cfg.Threshold = threshold
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			opts := pipeline.Options{Log: log, Platforms: platforms}
			if cfg.Database.Enabled() {
				d, err := db.OpenSQL(cfg.Database.Driver, cfg.Database.DSN)
				if err != nil {
					return err
				}
				defer d.Close()
				opts.Store = d
			}
			if cfg.Upload.Enabled() {
				u, err := gcs.NewUploader(ctx, cfg.Upload.Bucket, cfg.Upload.Prefix, cfg.Upload.CredentialsFile)
				if err != nil {
					return err
				}
				defer u.Close()
				opts.Uploader = u
			}

			out := cmd.OutOrStdout()
			opts.Report = func(s *pipeline.Summary) {
				fmt.Fprintf(out, "%s: Filtering entries with at least %d entries resulting in %d algorithms.\n",
					strings.ToUpper(s.Platform), s.Threshold, s.Algorithms)
				fmt.Fprintln(out, "Saving results as json...")
				fmt.Fprintln(out, "Done.")
			}
			_, err = pipeline.Run(ctx, cfg, opts)
			return err
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", config.DefaultThreshold, "minimum number of sources an algorithm must appear in (overrides the config)")
	cmd.Flags().StringSliceVarP(&platforms, "platform", "p", nil, "run only the named platforms")
	return cmd
}
