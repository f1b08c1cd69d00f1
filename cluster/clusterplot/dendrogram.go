/*
 * dendrogram.go, part of somcyp.
 *
 * Copyright 2024 The somcyp authors
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

//Package clusterplot draws the dendrogram of a clustering, using gonum/plot.
package clusterplot

import (
	"fmt"
	"image/color"
	"sort"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cluster"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

//Merges higher than this get their height written on the plot.
const AnnotateAbove = 1.0

//Horizontal distance between leaves.
const leafSpacing = 10.0

var aboveColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}

//ColorThreshold returns the height below which the links of T are colored per cluster,
//so that there are k colored groups.
func ColorThreshold(T *cluster.Tree, k int) float64 {
	md := T.MaxHeights()
	if len(md) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(md)))
	if k <= 1 {
		//one group, everything colored.
		return md[0] + 1
	}
	if k-2 >= len(md) {
		return 0
	}
	return md[k-2]
}

//linkColors returns, for each merge, the color group it belongs to (0 for links at or above thr).
func linkColors(T *cluster.Tree, md []float64, thr float64) []int {
	groups := make([]int, len(T.Merges))
	next := 1
	var walk func(node, group int)
	walk = func(node, group int) {
		if T.IsLeaf(node) {
			return
		}
		k := node - T.N
		if group == 0 && md[k] < thr {
			group = next
			next++
		}
		groups[k] = group
		a, b := T.Children(node)
		walk(a, group)
		walk(b, group)
	}
	walk(T.Root(), 0)
	return groups
}

//Dendrogram returns a plot of the tree T, with the structures labeled with labels (in population order).
//Links lower than colorThreshold are colored by group, merges above AnnotateAbove are marked with their height.
func Dendrogram(T *cluster.Tree, labels []string, colorThreshold float64) (*plot.Plot, error) {
	if len(labels) != T.N {
		return nil, somcyp.Errorf(somcyp.ErrShapeMismatch, "Dendrogram", "%d labels for %d structures", len(labels), T.N)
	}
	p := plot.New()
	p.Title.Text = "Hierarchical clustering dendrogram"
	p.Title.Padding = 3 * vg.Millimeter
	p.Y.Label.Text = "Distance"
	p.Y.Min = 0

	xs := make([]float64, T.N+len(T.Merges))
	ys := make([]float64, T.N+len(T.Merges))
	ticks := make([]plot.Tick, 0, T.N)
	for pos, leaf := range T.Order() {
		xs[leaf] = leafSpacing/2 + leafSpacing*float64(pos)
		ticks = append(ticks, plot.Tick{Value: xs[leaf], Label: labels[leaf]})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = 0
	p.X.Max = leafSpacing * float64(T.N)

	md := T.MaxHeights()
	groups := linkColors(T, md, colorThreshold)
	var marks plotter.XYs
	var marklabels []string
	for k, m := range T.Merges {
		node := T.N + k
		xs[node] = (xs[m.A] + xs[m.B]) / 2
		ys[node] = m.Height
		u := plotter.XYs{
			{X: xs[m.A], Y: ys[m.A]},
			{X: xs[m.A], Y: m.Height},
			{X: xs[m.B], Y: m.Height},
			{X: xs[m.B], Y: ys[m.B]},
		}
		l, err := plotter.NewLine(u)
		if err != nil {
			return nil, somcyp.Errorf(somcyp.ErrShapeMismatch, "Dendrogram", "%s", err.Error())
		}
		l.LineStyle.Width = vg.Points(1.2)
		if groups[k] == 0 {
			l.LineStyle.Color = aboveColor
		} else {
			l.LineStyle.Color = plotutil.Color(groups[k] - 1)
		}
		p.Add(l)
		if m.Height > AnnotateAbove {
			marks = append(marks, plotter.XY{X: xs[node], Y: m.Height})
			marklabels = append(marklabels, fmt.Sprintf("%.3g", m.Height))
		}
	}
	if len(marks) > 0 {
		s, err := plotter.NewScatter(marks)
		if err != nil {
			return nil, somcyp.Errorf(somcyp.ErrShapeMismatch, "Dendrogram", "%s", err.Error())
		}
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Color = aboveColor
		lab, err := plotter.NewLabels(plotter.XYLabels{XYs: marks, Labels: marklabels})
		if err != nil {
			return nil, somcyp.Errorf(somcyp.ErrShapeMismatch, "Dendrogram", "%s", err.Error())
		}
		for i := range lab.TextStyle {
			lab.TextStyle[i].XAlign = text.XCenter
			lab.TextStyle[i].YAlign = text.YTop
		}
		p.Add(s, lab)
	}
	return p, nil
}

//Save writes the dendrogram of the clustering A to filename. The format is taken from
//the extension (pdf, png, svg, eps...). The links are colored per flat cluster.
func Save(A *cluster.Assignment, filename string) error {
	T := A.Tree()
	p, err := Dendrogram(T, A.Labels(), ColorThreshold(T, A.FlatCount()))
	if err != nil {
		return somcyp.ErrDecorate(err, "Save")
	}
	width := vg.Length(T.N)*vg.Millimeter*6 + 4*vg.Centimeter
	if width < 12*vg.Centimeter {
		width = 12 * vg.Centimeter
	}
	return p.Save(width, 10*vg.Centimeter, filename)
}
