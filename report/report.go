// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report summarizes and ranks measurement results as a
// comparison table.
//
// Each candidate's sample series is summarized by its median and a
// quartile-based spread, then candidates are sorted by median
// ascending. Candidates whose medians fall within each other's spread
// are considered tied and keep their original input order.
package report

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/timeit-dev/timeit/driver"
	"github.com/timeit-dev/timeit/snippet"
)

// A Row is one ranked candidate.
type Row struct {
	Candidate snippet.Candidate

	// Center is the sample median in the base unit.
	Center float64

	// Spread is the relative quartile spread of the samples:
	// 0.05 means the middle half of the samples lies within ±5%
	// of the median.
	Spread float64

	// Ratio is Center relative to the fastest row's Center. The
	// fastest row has Ratio 1.
	Ratio float64

	// Tied reports whether this row is tied with the previous
	// row, i.e. their medians lie within each other's spread.
	Tied bool
}

// A Table is the ranked comparison of one successful run.
type Table struct {
	// Unit is the measurement unit of all Centers.
	Unit string

	// Rows is sorted by Center ascending, ties in input order.
	Rows []Row

	// Geomean and GeomeanRatio summarize the Centers and Ratios
	// across all rows. They are zero when any center is
	// non-positive.
	Geomean      float64
	GeomeanRatio float64
}

// Build summarizes and ranks results. results must be non-empty and
// share one unit, which the driver guarantees for a successful run.
func Build(results []driver.Result) *Table {
	t := &Table{Unit: results[0].Unit}
	for _, res := range results {
		xs := append([]float64(nil), res.Samples...)
		sort.Float64s(xs)
		center := quantile(xs, 0.5)
		t.Rows = append(t.Rows, Row{
			Candidate: res.Candidate,
			Center:    center,
			Spread:    relSpread(center, xs),
		})
	}

	rank(t.Rows)

	// The baseline is the smallest center, which the leading tie
	// group's input-order first row may not be.
	fastest := t.Rows[0].Center
	for _, r := range t.Rows[1:] {
		if r.Center < fastest {
			fastest = r.Center
		}
	}
	centers := make([]float64, len(t.Rows))
	ratios := make([]float64, len(t.Rows))
	positive := true
	for i := range t.Rows {
		t.Rows[i].Ratio = ratio(t.Rows[i].Center, fastest)
		centers[i] = t.Rows[i].Center
		ratios[i] = t.Rows[i].Ratio
		positive = positive && t.Rows[i].Center > 0
	}
	if positive {
		t.Geomean = stats.GeoMean(centers)
		t.GeomeanRatio = stats.GeoMean(ratios)
	}
	return t
}

// relSpread returns the larger one-sided distance from the median to
// the quartiles, relative to the median. xs must be sorted.
func relSpread(center float64, xs []float64) float64 {
	if center == 0 {
		return 0
	}
	lo, hi := quantile(xs, 0.25), quantile(xs, 0.75)
	d := center - lo
	if hi-center > d {
		d = hi - center
	}
	if d < 0 {
		d = 0
	}
	return d / center
}

// quantile returns the pth quantile of the sorted xs, interpolating
// linearly between order statistics. The estimator is pinned here so
// the rendered table is stable across library versions.
func quantile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	idx := p * float64(len(xs)-1)
	lo, hi := int(math.Floor(idx)), int(math.Ceil(idx))
	frac := idx - float64(lo)
	return xs[lo]*(1-frac) + xs[hi]*frac
}

// rank sorts rows by center ascending, then restores input order
// within each run of tied rows.
func rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Center < rows[j].Center
	})
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && tied(rows[i-1], rows[i]) {
			continue
		}
		group := rows[start:i]
		sort.SliceStable(group, func(a, b int) bool {
			return group[a].Candidate.Index < group[b].Candidate.Index
		})
		for j := start + 1; j < i; j++ {
			rows[j].Tied = true
		}
		start = i
	}
}

// tied reports whether two summaries are indistinguishable: each
// center lies within the other's spread band.
func tied(a, b Row) bool {
	return within(a.Center, b) && within(b.Center, a)
}

func within(x float64, r Row) bool {
	lo := r.Center * (1 - r.Spread)
	hi := r.Center * (1 + r.Spread)
	return x >= lo && x <= hi
}

func ratio(center, fastest float64) float64 {
	if fastest == 0 {
		if center == 0 {
			return 1
		}
		return 0
	}
	return center / fastest
}
