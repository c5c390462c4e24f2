// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out column-aligned text tables.
package texttab

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Table accumulates rows of cells and formats them with aligned
// columns.
//
// Row and Cell return the Table so calls can be chained.
type Table struct {
	rows  []row
	align []Align // per column, defaults to Left
}

type row struct {
	cells []string
	rule  bool
}

// Align is the alignment of a column.
type Align int

const (
	Left Align = iota
	Right
)

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, row{})
	return t
}

// Rule adds a horizontal line spanning the table.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, row{rule: true})
	return t
}

// Cell appends a cell to the current row, starting a row if there is
// none.
func (t *Table) Cell(value string) *Table {
	if len(t.rows) == 0 || t.rows[len(t.rows)-1].rule {
		t.Row()
	}
	r := &t.rows[len(t.rows)-1]
	r.cells = append(r.cells, value)
	return t
}

// SetAlign sets the alignment of column col, numbered from 0.
func (t *Table) SetAlign(col int, a Align) {
	for len(t.align) <= col {
		t.align = append(t.align, Left)
	}
	t.align[col] = a
}

func (t *Table) alignOf(col int) Align {
	if col < len(t.align) {
		return t.align[col]
	}
	return Left
}

// Format writes the table to w. Columns are separated by two spaces
// and trailing spaces are trimmed.
func (t *Table) Format(w io.Writer) error {
	var widths []int
	for _, r := range t.rows {
		for i, c := range r.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	total := 0
	for i, wd := range widths {
		if i > 0 {
			total += 2
		}
		total += wd
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for _, r := range t.rows {
		line.Reset()
		if r.rule {
			line.WriteString(strings.Repeat("─", total))
		}
		for i, c := range r.cells {
			if i > 0 {
				line.WriteString("  ")
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(c))
			if t.alignOf(i) == Right {
				line.WriteString(pad)
				line.WriteString(c)
			} else {
				line.WriteString(c)
				line.WriteString(pad)
			}
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
