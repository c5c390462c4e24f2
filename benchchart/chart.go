// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws reduced result sets as bar charts.
//
// Each metric column gets its own chart: one bar per algorithm showing
// the median across sources, with an error bar spanning min to max.
package benchchart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/benchagg/benchagg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNotReduced is returned when charting a result set whose
// statistics have not been computed.
var ErrNotReduced = errors.New("result set is not reduced")

const dpi = 150

// Plot returns a bar chart of column of every algorithm in rs that has
// that column.
func Plot(rs *benchagg.ResultSet, column int, title string) (*plot.Plot, error) {
	if column < 0 {
		return nil, fmt.Errorf("column %d out of range", column)
	}
	data, err := collect(rs, column)
	if err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, fmt.Errorf("no algorithm has column %d", column)
	}

	pl := plot.New()
	pl.Title.Text = title
	pl.Y.Label.Text = "median (min to max)"

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)

	bc, err := plotter.NewBarChart(data.medians, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bc.Color = color.NRGBA{0x33, 0x66, 0xCC, 0xFF}
	bc.LineStyle.Color = color.Black
	bc.LineStyle.Width = vg.Points(0.5)

	eb, err := plotter.NewYErrorBars(data)
	if err != nil {
		return nil, err
	}
	eb.LineStyle.Width = vg.Points(1)

	pl.Add(bc, eb)
	pl.NominalX(data.names...)
	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft
	if pl.Y.Min > 0 {
		pl.Y.Min = 0
	}
	return pl, nil
}

// Save writes one PNG per metric column of rs into dir, named
// <platform>_col<i>.png, and returns the file names in column order.
func Save(rs *benchagg.ResultSet, dir, platform string) ([]string, error) {
	cols := 0
	for _, name := range rs.Algorithms {
		rec := rs.Records[name]
		if !rec.Reduced() {
			return nil, fmt.Errorf("%s: %w", name, ErrNotReduced)
		}
		if n := len(rec.Medians); n > cols {
			cols = n
		}
	}
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, err
	}

	var files []string
	for col := 0; col < cols; col++ {
		pl, err := Plot(rs, col, fmt.Sprintf("%s column %d", platform, col))
		if err != nil {
			return files, err
		}
		file := filepath.Join(dir, fmt.Sprintf("%s_col%d.png", platform, col))
		if err := writePNG(pl, file, rs.Len()); err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func writePNG(pl *plot.Plot, file string, n int) error {
	// Width grows with the number of bars.
	width := 1.2 * float64(4+n)
	height := 12.0

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	pl.Draw(draw.New(can))

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// bars holds one column of a result set. It implements plotter.XYer
// and plotter.YErrorer for the error bars.
type bars struct {
	names   []string
	medians plotter.Values
	mins    []float64
	maxes   []float64
}

func collect(rs *benchagg.ResultSet, column int) (*bars, error) {
	b := new(bars)
	for _, name := range rs.Algorithms {
		rec := rs.Records[name]
		if !rec.Reduced() {
			return nil, fmt.Errorf("%s: %w", name, ErrNotReduced)
		}
		if column >= len(rec.Medians) {
			continue
		}
		b.names = append(b.names, name)
		b.medians = append(b.medians, rec.Medians[column])
		b.mins = append(b.mins, float64(rec.Mins[column]))
		b.maxes = append(b.maxes, float64(rec.Maxes[column]))
	}
	return b, nil
}

func (b *bars) Len() int { return len(b.medians) }

func (b *bars) XY(i int) (float64, float64) { return float64(i), b.medians[i] }

func (b *bars) YError(i int) (float64, float64) {
	return b.medians[i] - b.mins[i], b.maxes[i] - b.medians[i]
}
