/*
 * map.go, part of psigo.
 *
 * Copyright 2026 The psigo Authors
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

// Package psiplot draws traced streamlines with gonum/plot: a longitude-latitude map
// of the lines, and radial profiles along them.
package psiplot

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	psi "github.com/dstansby/psigo"
	"github.com/dstansby/psigo/linestat"
)

const deg = 180 / math.Pi

// MapRenderer draws streamlines on a longitude-latitude map and saves it to Path.
// The format follows the extension of Path (png, svg, pdf...).
// It implements psi.Renderer.
type MapRenderer struct {
	Path     string
	Title    string
	Polarity []linestat.Polarity //if not nil, one per line, used for the colors
	Width    vg.Length
	Height   vg.Length
}

// NewMapRenderer returns a renderer saving a 10x5 inch map to path.
func NewMapRenderer(path, title string) *MapRenderer {
	return &MapRenderer{Path: path, Title: title, Width: 10 * vg.Inch, Height: 5 * vg.Inch}
}

// segments splits line, in degrees, where it crosses phi=0, so the map
// shows no horizontal jumps.
func segments(line *psi.Streamline) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for i := 0; i < line.Len(); i++ {
		p := line.Point(i)
		if i > 0 && math.Abs(p[psi.Phi]-line.Point(i - 1)[psi.Phi]) > math.Pi {
			segs = append(segs, cur)
			cur = nil
		}
		cur = append(cur, plotter.XY{X: p[psi.Phi] * deg, Y: p[psi.Theta] * deg})
	}
	return append(segs, cur)
}

func (M *MapRenderer) lineColor(i, n int) color.Color {
	if M.Polarity != nil && i < len(M.Polarity) {
		return polarityColor(M.Polarity[i])
	}
	return palette(i, n)
}

// Plot builds the map without saving it.
func (M *MapRenderer) Plot(lines []*psi.Streamline) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = M.Title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Longitude (deg)"
	p.Y.Label.Text = "Latitude (deg)"
	p.X.Min, p.X.Max = 0, 360
	p.Y.Min, p.Y.Max = -90, 90
	p.Add(plotter.NewGrid())
	for i, l := range lines {
		if l == nil || l.Len() == 0 {
			continue
		}
		c := M.lineColor(i, len(lines))
		for _, seg := range segments(l) {
			if len(seg) == 1 {
				s, err := plotter.NewScatter(seg)
				if err != nil {
					return nil, fmt.Errorf("psiplot: line %d: %w", i, err)
				}
				s.GlyphStyle.Color = c
				s.GlyphStyle.Radius = vg.Points(1.5)
				p.Add(s)
				continue
			}
			ln, err := plotter.NewLine(seg)
			if err != nil {
				return nil, fmt.Errorf("psiplot: line %d: %w", i, err)
			}
			ln.Color = c
			ln.Width = vg.Points(1)
			p.Add(ln)
		}
	}
	return p, nil
}

// Render draws lines and saves the map.
func (M *MapRenderer) Render(lines []*psi.Streamline) error {
	p, err := M.Plot(lines)
	if err != nil {
		return err
	}
	w, h := M.Width, M.Height
	if w == 0 || h == 0 {
		w, h = 10*vg.Inch, 5*vg.Inch
	}
	if err := p.Save(w, h, M.Path); err != nil {
		return fmt.Errorf("psiplot: saving %s: %w", M.Path, err)
	}
	return nil
}
