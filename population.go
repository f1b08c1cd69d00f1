/*
 * population.go, part of somcyp.
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

package somcyp

import (
	"strconv"

	v3 "github.com/md-studio/somcyp/v3"
)

//Population is an ordered set of poses of the same ligand, each a set of
//coordinates with the same atom order, plus one unique label per pose.
//A Population is not modified after construction.
type Population struct {
	sets   []*v3.Matrix
	labels []string
	index  map[string]int
}

//NewPopulation returns a Population with the given coordinate sets and labels.
//If labels is nil, the poses are labeled "1" to "N".
//There must be at least 2 sets, all non-nil and with the same (non-zero) number of atoms,
//and the labels, if given, must be unique and as many as the sets.
func NewPopulation(sets []*v3.Matrix, labels []string) (*Population, error) {
	if len(sets) < 2 {
		return nil, Errorf(ErrInvalidPopulation, "NewPopulation", "%d coordinate sets given, at least 2 needed", len(sets))
	}
	natoms := -1
	for i, s := range sets {
		if s == nil || s.Dense == nil {
			return nil, Errorf(ErrInvalidPopulation, "NewPopulation", "coordinate set %d is nil", i)
		}
		n, c := s.Dims()
		if c != 3 {
			return nil, Errorf(ErrInvalidPopulation, "NewPopulation", "coordinate set %d has %d columns, expected 3", i, c)
		}
		if natoms < 0 {
			natoms = n
		}
		if n == 0 || n != natoms {
			return nil, Errorf(ErrInvalidPopulation, "NewPopulation", "coordinate set %d has %d atoms, expected %d", i, n, natoms)
		}
	}
	if labels == nil {
		labels = make([]string, len(sets))
		for i := range labels {
			labels[i] = strconv.Itoa(i + 1)
		}
	}
	if len(labels) != len(sets) {
		return nil, Errorf(ErrInvalidPopulation, "NewPopulation", "%d labels for %d coordinate sets", len(labels), len(sets))
	}
	p := &Population{
		sets:   make([]*v3.Matrix, len(sets)),
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	copy(p.sets, sets)
	copy(p.labels, labels)
	for i, l := range p.labels {
		if j, ok := p.index[l]; ok {
			return nil, Errorf(ErrInvalidPopulation, "NewPopulation", "label %q repeated (sets %d and %d)", l, j, i)
		}
		p.index[l] = i
	}
	return p, nil
}

//Len returns the number of poses in the population.
func (P *Population) Len() int { return len(P.sets) }

//NAtoms returns the number of atoms in each pose.
func (P *Population) NAtoms() int { return P.sets[0].NVecs() }

//Coords returns the coordinates of the ith pose. They should not be modified.
func (P *Population) Coords(i int) *v3.Matrix { return P.sets[i] }

//Label returns the label of the ith pose.
func (P *Population) Label(i int) string { return P.labels[i] }

//Labels returns a copy of the labels, in population order.
func (P *Population) Labels() []string {
	r := make([]string, len(P.labels))
	copy(r, P.labels)
	return r
}

//Index returns the position of the pose with the given label, and false if there is no such pose.
func (P *Population) Index(label string) (int, bool) {
	i, ok := P.index[label]
	return i, ok
}
