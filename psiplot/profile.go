/*
 * profile.go, part of psigo.
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

package psiplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	psi "github.com/dstansby/psigo"
)

// MaxLegend is the largest number of lines that get a legend entry in a profile.
const MaxLegend = 10

// profile returns r against the distance along line from its first point.
func profile(line *psi.Streamline) plotter.XYs {
	C := line.Cartesian()
	xy := make(plotter.XYs, line.Len())
	var s float64
	for i := range xy {
		if i > 0 {
			a, b := C.Vec(i-1), C.Vec(i)
			s += math.Sqrt((b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1]) + (b[2]-a[2])*(b[2]-a[2]))
		}
		xy[i] = plotter.XY{X: s, Y: line.Point(i)[psi.R]}
	}
	return xy
}

// RadialProfile saves to path a plot of the radius along each line against the
// distance travelled from the start of the line.
func RadialProfile(lines []*psi.Streamline, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Distance along line"
	p.Y.Label.Text = "r"
	p.Add(plotter.NewGrid())
	for i, l := range lines {
		if l == nil || l.Len() < 2 {
			continue
		}
		ln, err := plotter.NewLine(profile(l))
		if err != nil {
			return fmt.Errorf("psiplot: line %d: %w", i, err)
		}
		ln.Color = palette(i, len(lines))
		ln.Width = vg.Points(1)
		p.Add(ln)
		if len(lines) <= MaxLegend {
			p.Legend.Add(fmt.Sprintf("line %d", i), ln)
		}
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("psiplot: saving %s: %w", path, err)
	}
	return nil
}
