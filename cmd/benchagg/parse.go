// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/benchagg/benchline"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse file...",
		Short: "Print source files as parsed lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				r := benchline.NewReader(f, name)
				for r.Scan() {
					fmt.Fprintln(out, r.Line())
				}
				f.Close()
				if err := r.Err(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
