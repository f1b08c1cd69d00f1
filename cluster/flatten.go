/*
 * flatten.go, part of somcyp.
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
	"sort"
	"strconv"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"gonum.org/v1/gonum/stat"
)

//Criterion is the rule used to cut a Tree into flat clusters.
type Criterion int

const (
	//At most int(threshold) clusters, using the lowest possible cut.
	MaxClust Criterion = iota
	//No two structures in a cluster farther than threshold in the tree (cophenetic distance).
	Distance
	//Inconsistency coefficients (depth 2) of the merges in a cluster not above threshold.
	Inconsistent
)

var criterionNames = [...]string{
	MaxClust:     "maxclust",
	Distance:     "distance",
	Inconsistent: "inconsistent",
}

//Depth used for the inconsistency coefficients.
const InconsistencyDepth = 2

//Valid returns true if c is a supported criterion.
func (c Criterion) Valid() bool { return c >= 0 && int(c) < len(criterionNames) }

func (c Criterion) String() string {
	if !c.Valid() {
		return "Criterion(" + strconv.Itoa(int(c)) + ")"
	}
	return criterionNames[c]
}

//ParseCriterion returns the flattening criterion with the given name (case-insensitive).
func ParseCriterion(name string) (Criterion, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, v := range criterionNames {
		if v == n {
			return Criterion(i), nil
		}
	}
	return -1, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "ParseCriterion", "unknown flattening criterion %q", name)
}

//MaxHeights returns, for each merge of T, the largest height among the merge and
//all the merges below it. Unlike the heights themselves, these never decrease
//towards the root, even for centroid and median linkage.
func (T *Tree) MaxHeights() []float64 {
	h := make([]float64, len(T.Merges))
	for k, m := range T.Merges {
		h[k] = m.Height
	}
	return T.subtreeMax(h)
}

//Inconsistency returns the inconsistency statistics of each merge of T, computed over the merge
//and the merges below it, up to depth levels: mean height, standard deviation, number of merges
//and the inconsistency coefficient (height-mean)/std, which is 0 when std is 0.
func (T *Tree) Inconsistency(depth int) [][4]float64 {
	ret := make([][4]float64, len(T.Merges))
	for k := range T.Merges {
		var heights []float64
		level := []int{T.N + k}
		for d := 0; d < depth && len(level) > 0; d++ {
			var next []int
			for _, node := range level {
				m := T.Merges[node-T.N]
				heights = append(heights, m.Height)
				for _, c := range []int{m.A, m.B} {
					if !T.IsLeaf(c) {
						next = append(next, c)
					}
				}
			}
			level = next
		}
		mean, std := stat.MeanStdDev(heights, nil)
		if len(heights) < 2 || math.IsNaN(std) {
			std = 0
		}
		coef := 0.0
		if std > 0 {
			coef = (T.Merges[k].Height - mean) / std
		}
		ret[k] = [4]float64{mean, std, float64(len(heights)), coef}
	}
	return ret
}

//cut assigns flat cluster ids, starting at 1, walking the tree from the root, left branch first.
//Every node for which merge(k) is true becomes one cluster with all its leaves.
func (T *Tree) cut(merge func(k int) bool) []int {
	flat := make([]int, T.N)
	next := 1
	stack := []int{T.Root()}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if T.IsLeaf(c) {
			flat[c] = next
			next++
			continue
		}
		if merge(c - T.N) {
			for _, l := range T.Leaves(c) {
				flat[l] = next
			}
			next++
			continue
		}
		a, b := T.Children(c)
		stack = append(stack, b, a)
	}
	return flat
}

//monocrit cuts the tree merging the nodes with crit at most t.
func (T *Tree) monocrit(crit []float64, t float64) []int {
	return T.cut(func(k int) bool { return crit[k] <= t })
}

func countClusters(flat []int) int {
	max := 0
	for _, v := range flat {
		if v > max {
			max = v
		}
	}
	return max
}

//subtreeMax returns, for each merge, the maximum of vals over the merge and all merges below it.
func (T *Tree) subtreeMax(vals []float64) []float64 {
	ret := make([]float64, len(vals))
	for k, m := range T.Merges {
		ret[k] = vals[k]
		for _, c := range []int{m.A, m.B} {
			if !T.IsLeaf(c) && ret[c-T.N] > ret[k] {
				ret[k] = ret[c-T.N]
			}
		}
	}
	return ret
}

//Flatten cuts T into flat clusters following c, with the threshold t.
//It returns the flat cluster of each structure, numbered from 1 following the order
//of the dendrogram. Structures at zero distance from each other always share a cluster.
func (T *Tree) Flatten(c Criterion, t float64) ([]int, error) {
	if math.IsNaN(t) {
		return nil, somcyp.NewError(somcyp.ErrUnsupportedClusteringOption, "Tree.Flatten", "threshold is NaN")
	}
	switch c {
	case MaxClust:
		maxc := int(t)
		if maxc < 1 {
			return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Tree.Flatten", "maxclust needs a threshold of at least 1, got %v", t)
		}
		md := T.MaxHeights()
		cuts := append([]float64{0}, md...)
		sort.Float64s(cuts)
		//the last cut is the root's height, which always gives one cluster.
		lo, hi := 0, len(cuts)-1
		for lo < hi {
			mid := (lo + hi) / 2
			if countClusters(T.monocrit(md, cuts[mid])) <= maxc {
				hi = mid
			} else {
				lo = mid + 1
			}
		}
		return T.monocrit(md, cuts[lo]), nil
	case Distance:
		if t < 0 {
			return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Tree.Flatten", "negative distance threshold %v", t)
		}
		return T.monocrit(T.MaxHeights(), t), nil
	case Inconsistent:
		if t < 0 {
			return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Tree.Flatten", "negative inconsistency threshold %v", t)
		}
		inc := T.Inconsistency(InconsistencyDepth)
		coef := make([]float64, len(inc))
		for k, v := range inc {
			coef[k] = v[3]
		}
		return T.monocrit(T.subtreeMax(coef), t), nil
	}
	return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Tree.Flatten", "no criterion with id %d", int(c))
}
