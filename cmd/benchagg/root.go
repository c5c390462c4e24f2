// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	config  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags
	log := logrus.New()

	root := &cobra.Command{
		Use:          "benchagg",
		Short:        "Aggregate benchmark results across configurations and platforms",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
			log.SetLevel(logrus.WarnLevel)
			if f.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&f.config, "config", "benchagg.yaml", "config file path")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log progress to stderr")
	root.AddCommand(newRunCmd(&f, log))
	root.AddCommand(newShowCmd())
	root.AddCommand(newParseCmd())
	return root
}
