/*
 * distance.go, part of somcyp.
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
	"sync"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/geom"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

//DistanceMatrix is a condensed matrix of the structural distances between
//every pair of poses in a population. It is not modified after construction.
type DistanceMatrix struct {
	n         int
	condensed []float64
	metric    geom.Metric
	labels    []string
}

//CondensedIndex returns the position of the pair (i,j), i!=j, in the
//condensed matrix for n elements, where pairs are ordered (0,1), (0,2)...(0,n-1), (1,2)...
func CondensedIndex(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	if i == j || i < 0 || j >= n {
		panic("cluster: invalid pair for condensed index")
	}
	return n*i - i*(i+1)/2 + (j - i - 1)
}

type pairRow struct {
	i      int
	values []float64
	err    error
}

//NewDistanceMatrix computes the metric m between every pair of poses in p.
//The pairs are distributed among O.Cpus() gorutines; each pair has its own slot, so the result
//does not depend on the scheduling.
func NewDistanceMatrix(p *somcyp.Population, m geom.Metric, opts ...*Options) (*DistanceMatrix, error) {
	O := options(opts)
	if p == nil {
		return nil, somcyp.NewError(somcyp.ErrInvalidPopulation, "NewDistanceMatrix", "nil population")
	}
	f, err := m.Func()
	if err != nil {
		return nil, somcyp.ErrDecorate(err, "NewDistanceMatrix")
	}
	n := p.Len()
	D := &DistanceMatrix{n: n, condensed: make([]float64, n*(n-1)/2), metric: m, labels: p.Labels()}
	rows := make(chan int)
	results := make(chan *pairRow)
	var wg sync.WaitGroup
	workers := O.Cpus()
	if workers > n-1 {
		workers = n - 1
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				r := &pairRow{i: i, values: make([]float64, n-i-1)}
				for j := i + 1; j < n; j++ {
					r.values[j-i-1], r.err = f(p.Coords(i), p.Coords(j))
					if r.err != nil {
						break
					}
				}
				results <- r
			}
		}()
	}
	go func() {
		for i := 0; i < n-1; i++ {
			rows <- i
		}
		close(rows)
		wg.Wait()
		close(results)
	}()
	var firsterr error
	for r := range results {
		if r.err != nil {
			if firsterr == nil {
				firsterr = r.err
			}
			continue
		}
		copy(D.condensed[CondensedIndex(n, r.i, r.i+1):], r.values)
	}
	if firsterr != nil {
		return nil, somcyp.ErrDecorate(firsterr, "NewDistanceMatrix")
	}
	O.Logger().Debug("pairwise distance matrix built",
		zap.Int("structures", n), zap.Int("pairs", len(D.condensed)), zap.Stringer("metric", m), zap.Int("cpus", workers))
	return D, nil
}

//NewDistanceMatrixFromCondensed builds a DistanceMatrix from precomputed condensed
//distances, in the order given by CondensedIndex. The values are copied.
func NewDistanceMatrixFromCondensed(labels []string, condensed []float64, m geom.Metric) (*DistanceMatrix, error) {
	n := len(labels)
	if n < 2 {
		return nil, somcyp.Errorf(somcyp.ErrInvalidPopulation, "NewDistanceMatrixFromCondensed", "%d labels given, at least 2 needed", n)
	}
	if len(condensed) != n*(n-1)/2 {
		return nil, somcyp.Errorf(somcyp.ErrInvalidPopulation, "NewDistanceMatrixFromCondensed", "%d distances for %d structures, expected %d", len(condensed), n, n*(n-1)/2)
	}
	if !m.Valid() {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedMetric, "NewDistanceMatrixFromCondensed", "no metric with id %d", int(m))
	}
	seen := make(map[string]bool, n)
	for _, l := range labels {
		if seen[l] {
			return nil, somcyp.Errorf(somcyp.ErrInvalidPopulation, "NewDistanceMatrixFromCondensed", "label %q repeated", l)
		}
		seen[l] = true
	}
	for i, v := range condensed {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, somcyp.Errorf(somcyp.ErrInvalidPopulation, "NewDistanceMatrixFromCondensed", "distance %d is %v", i, v)
		}
	}
	D := &DistanceMatrix{n: n, condensed: make([]float64, len(condensed)), metric: m, labels: make([]string, n)}
	copy(D.condensed, condensed)
	copy(D.labels, labels)
	return D, nil
}

//Len returns the number of structures.
func (D *DistanceMatrix) Len() int { return D.n }

//Size returns the number of pairs, N(N-1)/2.
func (D *DistanceMatrix) Size() int { return len(D.condensed) }

//At returns the distance between structures i and j.
func (D *DistanceMatrix) At(i, j int) float64 {
	if i == j {
		return 0
	}
	return D.condensed[CondensedIndex(D.n, i, j)]
}

//Condensed returns a copy of the condensed distances.
func (D *DistanceMatrix) Condensed() []float64 {
	r := make([]float64, len(D.condensed))
	copy(r, D.condensed)
	return r
}

//Square returns the full symmetric distance matrix.
func (D *DistanceMatrix) Square() *mat.SymDense {
	S := mat.NewSymDense(D.n, nil)
	for i := 0; i < D.n; i++ {
		for j := i + 1; j < D.n; j++ {
			S.SetSym(i, j, D.At(i, j))
		}
	}
	return S
}

//Metric returns the metric the distances were computed with.
func (D *DistanceMatrix) Metric() geom.Metric { return D.metric }

//Labels returns a copy of the labels of the structures.
func (D *DistanceMatrix) Labels() []string {
	r := make([]string, len(D.labels))
	copy(r, D.labels)
	return r
}
