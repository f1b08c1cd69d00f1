/*
 * cluster.go, part of somcyp.
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

//Package cluster groups a population of poses into structurally distinct clusters
//and picks a representative (medoid) pose for each.
//
//The work is done in two steps. NewDistanceMatrix computes, once, the distances between every
//pair of poses. Cluster then builds a hierarchical tree from those distances, cuts it into flat
//clusters, drops the clusters that are too small and picks the medoids. Cluster does not
//modify the DistanceMatrix, so it can be called many times, and concurrently, with different Params.
package cluster

import (
	"fmt"
	"math"
	"sort"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

//Params are the parameters for a clustering.
type Params struct {
	//Meaning depends on the criterion: maximum number of clusters for MaxClust,
	//maximum cophenetic distance for Distance, maximum inconsistency for Inconsistent.
	Threshold float64
	Method    Method
	Criterion Criterion
	//Flat clusters with fewer members are dropped (cluster 0).
	MinClusterCount int
}

//DefaultParams returns at most 5 clusters from a single linkage tree, keeping every cluster.
func DefaultParams() Params {
	return Params{Threshold: 5, Method: Single, Criterion: MaxClust, MinClusterCount: 1}
}

//DockingParams returns the parameters used to cluster docking poses: at most 8 clusters,
//none with fewer than 2 poses.
func DockingParams() Params {
	return Params{Threshold: 8, Method: Single, Criterion: MaxClust, MinClusterCount: 2}
}

func (P Params) String() string {
	return fmt.Sprintf("method %s, criterion %s with parameter %g, minimum cluster size %d", P.Method, P.Criterion, P.Threshold, P.MinClusterCount)
}

//Member is the clustering result for one structure.
type Member struct {
	Cluster int  `json:"cluster"` //0 means the structure was dropped.
	Medoid  bool `json:"medoid"`
}

//Assignment is the result of a clustering: a cluster (and medoid flag) for each structure.
type Assignment struct {
	labels    []string
	members   []Member
	index     map[string]int
	nclusters int
	nflat     int
	tree      *Tree
	params    Params
	metric    string
}

//Cluster clusters the structures in D with the parameters P. The result covers every structure;
//the ones in flat clusters smaller than P.MinClusterCount get the cluster 0. The retained clusters
//are numbered 1 to k in the order of the dendrogram, and each has exactly one medoid.
func Cluster(D *DistanceMatrix, P Params, opts ...*Options) (*Assignment, error) {
	O := options(opts)
	if D == nil {
		return nil, somcyp.NewError(somcyp.ErrInvalidPopulation, "Cluster", "nil distance matrix")
	}
	if !P.Method.Valid() || !P.Criterion.Valid() {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Cluster", "unsupported method or criterion: %s, %s", P.Method, P.Criterion)
	}
	if P.MinClusterCount < 0 {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedClusteringOption, "Cluster", "negative minimum cluster size %d", P.MinClusterCount)
	}
	T, err := Linkage(D, P.Method)
	if err != nil {
		return nil, somcyp.ErrDecorate(err, "Cluster")
	}
	flat, err := T.Flatten(P.Criterion, P.Threshold)
	if err != nil {
		return nil, somcyp.ErrDecorate(err, "Cluster")
	}
	n := D.Len()
	byflat := make(map[int][]int)
	for i, f := range flat {
		byflat[f] = append(byflat[f], i)
	}
	A := &Assignment{
		labels:  D.Labels(),
		members: make([]Member, n),
		index:   make(map[string]int, n),
		tree:    T,
		params:  P,
		metric:  D.Metric().String(),
	}
	for i, l := range A.labels {
		A.index[l] = i
	}
	A.nflat = countClusters(flat)
	for f := 1; f <= A.nflat; f++ {
		idx := byflat[f]
		if len(idx) < P.MinClusterCount {
			O.Logger().Debug("dropping cluster", zap.Int("flat", f), zap.Int("size", len(idx)), zap.Int("min", P.MinClusterCount))
			continue
		}
		A.nclusters++
		for _, i := range idx {
			A.members[i].Cluster = A.nclusters
		}
		A.members[medoid(D, idx)].Medoid = true
	}
	O.Logger().Info("clustered structures",
		zap.Int("structures", n), zap.String("metric", A.metric), zap.Stringer("method", P.Method),
		zap.Stringer("criterion", P.Criterion), zap.Float64("threshold", P.Threshold),
		zap.Int("min_cluster_count", P.MinClusterCount), zap.Int("clusters", A.nclusters),
		zap.Float64("coverage", A.Coverage()))
	return A, nil
}

//medoid returns the member of idx (population indexes, in increasing order) whose distances to the
//other members include the one closest to the mean distance within the cluster. Ties go to the
//lowest index.
func medoid(D *DistanceMatrix, idx []int) int {
	if len(idx) == 1 {
		return idx[0]
	}
	lower := make([]float64, 0, len(idx)*(len(idx)-1)/2)
	for a := 1; a < len(idx); a++ {
		for b := 0; b < a; b++ {
			lower = append(lower, D.At(idx[a], idx[b]))
		}
	}
	mean := stat.Mean(lower, nil)
	best := idx[0]
	bestdev := math.Inf(1)
	for _, i := range idx {
		for _, j := range idx {
			if dev := math.Abs(D.At(i, j) - mean); dev < bestdev {
				best, bestdev = i, dev
			}
		}
	}
	return best
}

//Len returns the number of structures.
func (A *Assignment) Len() int { return len(A.labels) }

//Labels returns the labels of the structures, in population order.
func (A *Assignment) Labels() []string {
	r := make([]string, len(A.labels))
	copy(r, A.labels)
	return r
}

//Of returns the result for the structure with the given label, and false if there is no such structure.
func (A *Assignment) Of(label string) (Member, bool) {
	i, ok := A.index[label]
	if !ok {
		return Member{}, false
	}
	return A.members[i], true
}

//At returns the result for the ith structure.
func (A *Assignment) At(i int) Member { return A.members[i] }

//ClusterCount returns the number of retained clusters.
func (A *Assignment) ClusterCount() int { return A.nclusters }

//FlatCount returns the number of flat clusters cut from the tree, including the dropped ones.
func (A *Assignment) FlatCount() int { return A.nflat }

//Coverage returns the fraction of structures in a retained cluster.
func (A *Assignment) Coverage() float64 {
	return float64(len(A.Clustered())) / float64(len(A.labels))
}

func (A *Assignment) filter(keep func(Member) bool) []string {
	var r []string
	for i, m := range A.members {
		if keep(m) {
			r = append(r, A.labels[i])
		}
	}
	return r
}

//Clustered returns the labels of the structures in a retained cluster, in population order.
func (A *Assignment) Clustered() []string {
	return A.filter(func(m Member) bool { return m.Cluster != 0 })
}

//Dropped returns the labels of the structures with cluster 0.
func (A *Assignment) Dropped() []string {
	return A.filter(func(m Member) bool { return m.Cluster == 0 })
}

//Medoids maps each retained cluster to the label of its medoid.
func (A *Assignment) Medoids() map[int]string {
	r := make(map[int]string, A.nclusters)
	for i, m := range A.members {
		if m.Medoid {
			r[m.Cluster] = A.labels[i]
		}
	}
	return r
}

//Sizes maps each retained cluster to its number of members.
func (A *Assignment) Sizes() map[int]int {
	r := make(map[int]int, A.nclusters)
	for _, m := range A.members {
		if m.Cluster != 0 {
			r[m.Cluster]++
		}
	}
	return r
}

//Members returns the labels of the structures in cluster c (0 for the dropped ones).
func (A *Assignment) Members(c int) []string {
	return A.filter(func(m Member) bool { return m.Cluster == c })
}

//Tree returns the hierarchical tree the clusters were cut from.
func (A *Assignment) Tree() *Tree { return A.tree }

//Params returns the parameters used for the clustering.
func (A *Assignment) Params() Params { return A.params }

//String returns a summary of the clustering.
func (A *Assignment) String() string {
	summary := []string{
		fmt.Sprintf("Clustering %d structures", len(A.labels)),
		fmt.Sprintf("Metric for pairwise distance matrix: %s", A.metric),
		fmt.Sprintf("Metric for hierarchical clustering: %s", A.params.Method),
		fmt.Sprintf("Cluster selection criterion: %s with parameter %g\n", A.params.Criterion, A.params.Threshold),
		fmt.Sprintf("Clusters: %d, coverage: %.2f%%", A.nclusters, A.Coverage()*100),
	}
	med := A.Medoids()
	keys := make([]int, 0, len(med))
	for k := range med {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	sizes := A.Sizes()
	for _, k := range keys {
		summary = append(summary, fmt.Sprintf("  cluster %d: %d structures, medoid %s", k, sizes[k], med[k]))
	}
	return strings.Join(summary, "\n")
}
