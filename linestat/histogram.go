/*
 * histogram.go, part of psigo.
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

// Package linestat summarizes sets of traced streamlines: histograms of their lengths,
// counts of how each direction ended, polarity and connectivity.
package linestat

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram is a histogram with arbitrary dividers. AddData counts values outside
// the dividers in the total, but in no bin. ReHisto drops them.
type Histogram struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

func (D *Histogram) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		ID:         D.id,
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (D *Histogram) UnmarshalJSON(b []byte) error {
	var a struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) > 0 && len(a.Histo) != len(a.Dividers)-1 {
		return fmt.Errorf("linestat: histogram with %d dividers and %d bins", len(a.Dividers), len(a.Histo))
	}
	D.id = a.ID
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// ID returns the ID of the histogram
func (D *Histogram) ID() int {
	return D.id
}

// String prints a -hopefully- pretty string representation of
// the histogram. The representation uses 3 lines of text
func (D *Histogram) String() string {
	ret := fmt.Sprintf("ID: %d, Normalized: %v, TotalData: %d\n", D.id, D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// NewHistogram returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// if an ID for the histogram is given, it will be set. If not, the ID will
// be set to -1. Dividers must be increasing, with at least 2 elements.
func NewHistogram(dividers []float64, rawdata []float64, ID ...int) (*Histogram, error) {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		return nil, fmt.Errorf("linestat: need at least 2 increasing dividers, got %v", dividers)
	}
	d := new(Histogram)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(d.dividers, rawdata)
	}
	d.id = -1
	if len(ID) > 0 {
		d.id = ID[0]
	}
	return d, nil
}

// Span returns n+1 dividers for n equal bins covering [lo, hi].
func Span(n int, lo, hi float64) []float64 {
	return floats.Span(make([]float64, n+1), lo, hi)
}

// AddData adds the given data point(s) to the histogram
func (D *Histogram) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	for _, v := range point {
		//values beyond the last divider are omitted.
		j := sort.SearchFloat64s(D.dividers, v)
		if j < len(D.dividers) && D.dividers[j] == v {
			j++
		}
		if j == 0 || j == len(D.dividers) {
			continue
		}
		D.histo[j-1]++
	}
	D.total += len(point)
	if norma {
		D.Normalize()
	}
}

// Normalized Returns true if the histogram is normalized
func (D *Histogram) Normalized() bool {
	return D.normalized
}

// Normalize normalizes the histogram
func (D *Histogram) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize un-normalizes the histogram
func (D *Histogram) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Histogram) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	D.normalized = false
	if normalize {
		n = 1 / float64(D.total)
		D.normalized = true
	}
	floats.Scale(n, D.histo)
}

// Total returns the number of data points given to the histogram.
func (D *Histogram) Total() int { return D.total }

// CopyDividers copies the dividers of the histogram
func (D *Histogram) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	return floats.ScaleTo(d, 1, D.dividers)
}

func (D *Histogram) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	return floats.ScaleTo(d, 1, D.histo)
}

func (D *Histogram) View() []float64 {
	return D.histo
}

// Add adds the histograms a and b putting the result in the receiver.
func (D *Histogram) Add(a, b *Histogram) error {
	if !floats.Equal(a.dividers, b.dividers) {
		return fmt.Errorf("linestat: dividers must match in added histograms")
	}
	D.dividers = a.CopyDividers()
	D.histo = make([]float64, len(a.histo))
	floats.AddTo(D.histo, a.histo, b.histo)
	D.total = a.total + b.total
	return nil
}

func (D *Histogram) Sum() float64 {
	return floats.Sum(D.histo)
}

// ReHisto rebuilds the histogram from rawdata. rawdata is not modified.
func (D *Histogram) ReHisto(dividers, rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(data, dividers[len(dividers)-1])
	mini := sort.SearchFloat64s(data, dividers[0])
	data = data[mini:maxi]
	D.dividers = append(D.dividers[:0], dividers...)
	D.total = len(data)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, data, nil)
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= N {
		return dest[0][:N]
	}
	return make([]float64, N)
}

// finite returns the finite values of x.
func finite(x []float64) []float64 {
	r := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			r = append(r, v)
		}
	}
	return r
}
