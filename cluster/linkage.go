/*
 * linkage.go, part of somcyp.
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

package cluster

import (
	"math"
	"strconv"
	"strings"

	somcyp "github.com/md-studio/somcyp"
)

//Method is an agglomerative linkage method.
type Method int

const (
	Single Method = iota
	Complete
	Average
	Weighted
	Centroid
	Median
	Ward
)

var methodNames = [...]string{
	Single:   "single",
	Complete: "complete",
	Average:  "average",
	Weighted: "weighted",
	Centroid: "centroid",
	Median:   "median",
	Ward:     "ward",
}

//Valid returns true if m is a supported linkage method.
func (m Method) Valid() bool { return m >= 0 && int(m) < len(methodNames) }

func (m Method) String() string {
	if !m.Valid() {
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
	return methodNames[m]
}

//ParseMethod returns the linkage method with the given name (case-insensitive).
func ParseMethod(name string) (Method, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range methodNames {
		if v == n {
			return Method(i), nil
		}
	}
	return -1, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "ParseMethod", "unknown linkage method %q", name)
}

//Merge is one step of an agglomerative clustering: the clusters A and B, A<B, are joined at
//the distance Height into a new cluster with Size structures. Clusters 0 to N-1 are the
//original structures, the cluster created in step k has the id N+k.
type Merge struct {
	A, B   int
	Height float64
	Size   int
}

//Tree is the result of an agglomerative clustering of N structures: N-1 merges.
type Tree struct {
	N      int
	Merges []Merge
	Method Method
}

//Root returns the id of the last cluster formed, which contains every structure.
func (T *Tree) Root() int { return T.N + len(T.Merges) - 1 }

//Children returns the two clusters joined to form node. It panics if node is a leaf.
func (T *Tree) Children(node int) (int, int) {
	m := T.Merges[node-T.N]
	return m.A, m.B
}

//IsLeaf returns true if node is one of the original structures.
func (T *Tree) IsLeaf(node int) bool { return node < T.N }

//Leaves returns the structures under node, left (smaller id) branch first.
func (T *Tree) Leaves(node int) []int {
	var ret []int
	stack := []int{node}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if T.IsLeaf(c) {
			ret = append(ret, c)
			continue
		}
		a, b := T.Children(c)
		stack = append(stack, b, a)
	}
	return ret
}

//Order returns the order of the structures in a dendrogram of the tree.
func (T *Tree) Order() []int { return T.Leaves(T.Root()) }

//lanceWilliams returns the distance between the cluster formed by x and y, and the cluster i.
//dxi and dyi are the distances of x and y to i, dxy the distance between x and y; sx, sy, si the sizes.
func lanceWilliams(m Method, dxi, dyi, dxy float64, sx, sy, si int) float64 {
	fx, fy, fi := float64(sx), float64(sy), float64(si)
	var sq float64
	switch m {
	case Single:
		return math.Min(dxi, dyi)
	case Complete:
		return math.Max(dxi, dyi)
	case Average:
		return (fx*dxi + fy*dyi) / (fx + fy)
	case Weighted:
		return 0.5 * (dxi + dyi)
	case Centroid:
		sq = (fx*dxi*dxi+fy*dyi*dyi)/(fx+fy) - fx*fy*dxy*dxy/((fx+fy)*(fx+fy))
	case Median:
		sq = 0.5*(dxi*dxi+dyi*dyi) - 0.25*dxy*dxy
	case Ward:
		t := 1 / (fx + fy + fi)
		sq = (fi+fx)*t*dxi*dxi + (fi+fy)*t*dyi*dyi - fi*t*dxy*dxy
	}
	if sq < 0 {
		//rounding, for what should be a zero distance
		sq = 0
	}
	return math.Sqrt(sq)
}

//Linkage performs an agglomerative hierarchical clustering of the structures in D with
//the method m. At each step the closest pair of active clusters is merged; ties go to the
//pair with the lowest indexes.
func Linkage(D *DistanceMatrix, m Method) (*Tree, error) {
	if D == nil || D.Len() < 2 {
		return nil, somcyp.NewError(somcyp.ErrInvalidPopulation, "Linkage", "at least 2 structures needed")
	}
	if !m.Valid() {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Linkage", "no linkage method with id %d", int(m))
	}
	n := D.Len()
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		for j := range d[i] {
			d[i][j] = D.At(i, j)
		}
	}
	active := make([]bool, n)
	ids := make([]int, n)
	sizes := make([]int, n)
	for i := 0; i < n; i++ {
		active[i] = true
		ids[i] = i
		sizes[i] = 1
	}
	T := &Tree{N: n, Merges: make([]Merge, 0, n-1), Method: m}
	for k := 0; k < n-1; k++ {
		x, y := -1, -1
		best := math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if active[j] && (x < 0 || d[i][j] < best) {
					x, y, best = i, j, d[i][j]
				}
			}
		}
		a, b := ids[x], ids[y]
		if a > b {
			a, b = b, a
		}
		T.Merges = append(T.Merges, Merge{A: a, B: b, Height: best, Size: sizes[x] + sizes[y]})
		for i := 0; i < n; i++ {
			if !active[i] || i == x || i == y {
				continue
			}
			nd := lanceWilliams(m, d[x][i], d[y][i], best, sizes[x], sizes[y], sizes[i])
			d[x][i], d[i][x] = nd, nd
		}
		active[y] = false
		ids[x] = n + k
		sizes[x] += sizes[y]
	}
	return T, nil
}
