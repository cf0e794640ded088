// Copyright 2026 The timeit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// fastStyle highlights the leading tie group when color is enabled.
var fastStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

// ToText renders t as a fixed-width table: candidate text, scaled
// point estimate with spread, and the relative factor versus the
// fastest candidate. When color is true the fastest candidates are
// highlighted.
func (t *Table) ToText(w io.Writer, color bool) error {
	cells := make([][3]string, 0, len(t.Rows)+1)
	cells = append(cells, [3]string{"", t.Unit, "vs fastest"})
	for _, row := range t.Rows {
		cells = append(cells, [3]string{
			row.Candidate.Expr,
			fmt.Sprintf("%s ± %.0f%%", scale(row.Center), row.Spread*100),
			fmt.Sprintf("%.2fx", row.Ratio),
		})
	}

	if t.Geomean > 0 {
		cells = append(cells, [3]string{
			"geomean",
			scale(t.Geomean),
			fmt.Sprintf("%.2fx", t.GeomeanRatio),
		})
	}

	var width [3]int
	for _, line := range cells {
		for i, c := range line {
			if n := utf8.RuneCountInString(c); n > width[i] {
				width[i] = n
			}
		}
	}

	for i, line := range cells {
		s := fmt.Sprintf("%-*s  %*s  %*s",
			width[0], line[0], width[1], line[1], width[2], line[2])
		s = strings.TrimRight(s, " ")
		if color && highlight(t, i-1) {
			s = fastStyle.Render(s)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// highlight reports whether data row j belongs to the leading tie
// group: the fastest row and every row tied through to it.
func highlight(t *Table, j int) bool {
	if j < 0 || j >= len(t.Rows) {
		return false
	}
	for k := j; k > 0; k-- {
		if !t.Rows[k].Tied {
			return false
		}
	}
	return true
}

// scale formats a value with an SI prefix, the way the engine's units
// read best: 5e-8 sec renders as "50.00n", 1.2e6 instructions as
// "1.20M".
func scale(v float64) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	switch {
	case v == 0:
		return "0.00"
	case math.IsInf(v, 0) || math.IsNaN(v):
		return sign + fmt.Sprint(v)
	}
	prefixes := []struct {
		factor float64
		label  string
	}{
		{1e9, "G"}, {1e6, "M"}, {1e3, "k"}, {1, ""},
		{1e-3, "m"}, {1e-6, "µ"}, {1e-9, "n"}, {1e-12, "p"},
	}
	for _, p := range prefixes {
		if v >= p.factor {
			return fmt.Sprintf("%s%.2f%s", sign, v/p.factor, p.label)
		}
	}
	return fmt.Sprintf("%s%.2g", sign, v)
}
