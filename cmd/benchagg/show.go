// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/benchagg/benchagg"
	"golang.org/x/benchagg/benchjson"
	"golang.org/x/benchagg/internal/texttab"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show results.json...",
		Short: "Print result files as tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, name := range args {
				rs, err := benchjson.ReadFile(name)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "%s:\n", name)
				}
				if err := table(rs).Format(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// table lays out rs with one row per metric column of each algorithm.
func table(rs *benchagg.ResultSet) *texttab.Table {
	t := new(texttab.Table)
	for col := 1; col <= 5; col++ {
		t.SetAlign(col, texttab.Right)
	}
	t.Row().Cell("algorithm").Cell("sources").Cell("col").Cell("median").Cell("min").Cell("max")
	t.Rule()
	for _, name := range rs.Algorithms {
		rec := rs.Records[name]
		n := strconv.Itoa(rec.NumSources())
		if !rec.Reduced() {
			t.Row().Cell(name).Cell(n).Cell("-").Cell("-").Cell("-").Cell("-")
			continue
		}
		if len(rec.Medians) == 0 {
			t.Row().Cell(name).Cell(n)
			continue
		}
		for col, m := range rec.Medians {
			t.Row()
			if col == 0 {
				t.Cell(name).Cell(n)
			} else {
				t.Cell("").Cell("")
			}
			t.Cell(strconv.Itoa(col)).
				Cell(strconv.FormatFloat(m, 'f', -1, 64)).
				Cell(strconv.FormatInt(rec.Mins[col], 10)).
				Cell(strconv.FormatInt(rec.Maxes[col], 10))
		}
	}
	return t
}
