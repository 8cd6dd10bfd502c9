/*
 * cgplot.go, part of goCG.
 *
 * Copyright 2026 The goCG authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package cgplot draws simple plots of coarse-grained topologies: the elastic
// network contact map, the distribution of its force constants and the
// secondary structure along the sequence.
package cgplot

import (
	"fmt"
	"image/color"
	"math"

	cg "github.com/rmera/gocg"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Size is the side of the saved plots.
var Size = 5 * vg.Inch

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// ContactMap plots each elastic term of T as a point (i, j), symmetrically, colored by its
// force constant, from blue (weakest) to red (strongest). The plot is saved to filename, whose
// extension (png, svg, pdf...) sets the format.
func ContactMap(T *cg.Topology, title, filename string) error {
	el := T.TermsOf(cg.Elastic)
	if len(el) == 0 {
		return fmt.Errorf("ContactMap: topology has no elastic terms")
	}
	pts := make(plotter.XYs, 0, 2*len(el))
	ks := make([]float64, 0, 2*len(el))
	kmin, kmax := math.Inf(1), math.Inf(-1)
	for _, t := range el {
		i, j := float64(t.Beads[0]), float64(t.Beads[1])
		pts = append(pts, plotter.XY{X: i, Y: j}, plotter.XY{X: j, Y: i})
		ks = append(ks, t.K, t.K)
		kmin = math.Min(kmin, t.K)
		kmax = math.Max(kmax, t.K)
	}
	cmap := moreland.SmoothBlueRed()
	if kmax > kmin {
		cmap.SetMin(kmin)
		cmap.SetMax(kmax)
	} else {
		//a single value would make the map empty.
		cmap.SetMin(kmin - 1)
		cmap.SetMax(kmax + 1)
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("ContactMap: %w", err)
	}
	s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cmap.At(ks[i])
		if err != nil {
			c = color.Black
		}
		return draw.GlyphStyle{Color: c, Radius: vg.Points(2), Shape: draw.BoxGlyph{}}
	}
	p := basicPlot(title, "Bead", "Bead")
	n := float64(T.Len())
	p.X.Min, p.X.Max = -1, n
	p.Y.Min, p.Y.Max = -1, n
	p.Add(s)
	if err := p.Save(Size, Size, filename); err != nil {
		return fmt.Errorf("ContactMap: %w", err)
	}
	return nil
}

// ForceHistogram plots the distribution of the force constants of the elastic terms
// of T, in bins bins, and saves it to filename.
func ForceHistogram(T *cg.Topology, bins int, title, filename string) error {
	el := T.TermsOf(cg.Elastic)
	if len(el) == 0 {
		return fmt.Errorf("ForceHistogram: topology has no elastic terms")
	}
	if bins <= 0 {
		bins = 20
	}
	vals := make(plotter.Values, len(el))
	for i, t := range el {
		vals[i] = t.K
	}
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return fmt.Errorf("ForceHistogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 70, G: 110, B: 200, A: 255}
	p := basicPlot(title, "K (kJ mol-1 nm-2)", "Count")
	p.Add(h)
	if err := p.Save(Size, Size/2, filename); err != nil {
		return fmt.Errorf("ForceHistogram: %w", err)
	}
	return nil
}

// SSTrack plots the secondary structure labels along the sequence, one row per
// label class, each class with its own color, and saves it to filename.
func SSTrack(labels cg.Labels, title, filename string) error {
	if len(labels) == 0 {
		return fmt.Errorf("SSTrack: no labels")
	}
	classes := []cg.Label{cg.Coil, cg.Bend, cg.Turn, cg.Bridge, cg.Sheet, cg.Helix310, cg.Helix, cg.PiHelix}
	names := make([]string, len(classes))
	for i, l := range classes {
		names[i] = string(l.Code())
	}
	p := basicPlot(title, "Residue", "")
	p.Y.Min, p.Y.Max = -1, float64(len(classes))
	p.X.Min, p.X.Max = -1, float64(len(labels))
	for i, l := range classes {
		var pts plotter.XYs
		for j, v := range labels {
			if v == l {
				pts = append(pts, plotter.XY{X: float64(j), Y: float64(i)})
			}
		}
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("SSTrack: %w", err)
		}
		r, g, b := colors(i, len(classes))
		s.GlyphStyle.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		p.Add(s)
	}
	ticks := make([]plot.Tick, len(names))
	for i, n := range names {
		ticks[i] = plot.Tick{Value: float64(i), Label: n}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	if err := p.Save(Size, Size/2, filename); err != nil {
		return fmt.Errorf("SSTrack: %w", err)
	}
	return nil
}

// hsv2rgb takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func hsv2rgb(h, v, s float64) (uint8, uint8, uint8) {
	conversion := 255.0 * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default:
		r, g, b = 1, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors returns the color of the key-th of steps series, spread over the hues
// while skipping the yellows, which are hard to see on white.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	h := hp + 20
	if hp < 55 {
		h = hp - 20
	}
	return hsv2rgb(h, 1, 1)
}
