/*
 * summary.go, part of psigo.
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

package linestat

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	psi "github.com/dstansby/psigo"
)

// Summary collects statistics of a set of streamlines.
type Summary struct {
	Lines      int            `json:"lines"`
	Points     int            `json:"points"`
	Forward    map[string]int `json:"forward"`
	Backward   map[string]int `json:"backward"`
	MeanLength float64        `json:"mean_length"`
	StdLength  float64        `json:"std_length"`
	MaxLength  float64        `json:"max_length"`
	Lengths    *Histogram     `json:"lengths,omitempty"`
	Polarity   map[string]int `json:"polarity,omitempty"`
	Connection map[string]int `json:"connectivity,omitempty"`
}

// Summarize computes the summary of lines, with a histogram of arc lengths in bins
// equal bins (no histogram if bins < 1).
func Summarize(lines []*psi.Streamline, bins int) *Summary {
	S := &Summary{Lines: len(lines), Forward: map[string]int{}, Backward: map[string]int{}}
	lengths := make([]float64, 0, len(lines))
	for _, l := range lines {
		if l == nil {
			continue
		}
		S.Points += l.Len()
		S.Forward[l.Forward.String()]++
		S.Backward[l.Backward.String()]++
		lengths = append(lengths, l.ArcLength())
	}
	lengths = finite(lengths)
	if len(lengths) == 0 {
		return S
	}
	S.MaxLength = floats.Max(lengths)
	if len(lengths) > 1 {
		S.MeanLength, S.StdLength = stat.MeanStdDev(lengths, nil)
	} else {
		S.MeanLength = lengths[0]
	}
	if bins > 0 {
		hi := S.MaxLength
		if hi <= 0 {
			hi = 1
		}
		//widen slightly so the longest line falls in the last bin
		S.Lengths, _ = NewHistogram(Span(bins, 0, hi*(1+1e-9)), lengths)
	}
	return S
}

// AddPolarity counts the polarity of each line in the summary.
func (S *Summary) AddPolarity(lines []*psi.Streamline, sample Sampler) []Polarity {
	p := ClassifyAll(lines, sample)
	S.Polarity = map[string]int{}
	for _, v := range p {
		S.Polarity[v.String()]++
	}
	return p
}

// AddConnectivity counts the connectivity of each line in the summary.
func (S *Summary) AddConnectivity(lines []*psi.Streamline, inner, outer, tol float64) {
	S.Connection = map[string]int{}
	for _, l := range lines {
		S.Connection[Connect(l, inner, outer, tol).String()]++
	}
}

func sortedCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(s, " ")
}

func (S *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lines: %d points: %d\n", S.Lines, S.Points)
	fmt.Fprintf(&b, "backward: %s\n", sortedCounts(S.Backward))
	fmt.Fprintf(&b, "forward: %s\n", sortedCounts(S.Forward))
	fmt.Fprintf(&b, "length: mean %.4g std %.4g max %.4g\n", S.MeanLength, S.StdLength, S.MaxLength)
	if S.Polarity != nil {
		fmt.Fprintf(&b, "polarity: %s\n", sortedCounts(S.Polarity))
	}
	if S.Connection != nil {
		fmt.Fprintf(&b, "connectivity: %s\n", sortedCounts(S.Connection))
	}
	if S.Lengths != nil {
		b.WriteString(S.Lengths.String())
		b.WriteString("\n")
	}
	return b.String()
}
