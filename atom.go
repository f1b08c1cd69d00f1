/*
 * atom.go, part of somcyp.
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
	"strings"
)

//Atom contains the information of a Tripos MOL2 atom record except
//for the coordinates, which go in a v3.Matrix.
type Atom struct {
	Serial    int //the atom_id field, used as the atom key everywhere in somcyp.
	Name      string
	Type      string //Tripos atom type, i.e. C.ar, N.pl3, Cl
	Symbol    string
	SubstID   int
	SubstName string
	Charge    float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	r := *A
	return &r
}

//ElementFromTripos returns the element symbol encoded in the Tripos atom type tripos,
//i.e. "C" for "C.ar", "Cl" for "Cl" or "CL".
func ElementFromTripos(tripos string) string {
	el := tripos
	if i := strings.Index(tripos, "."); i >= 0 {
		el = tripos[:i]
	}
	if el == "" {
		return el
	}
	if strings.EqualFold(el, "lp") {
		return "LP"
	}
	return strings.ToUpper(el[:1]) + strings.ToLower(el[1:])
}

//MolecularWeight returns the sum of the masses of the atoms, derived from their
//Tripos types. It returns an error if an element is unknown.
func MolecularWeight(atoms []*Atom) (float64, error) {
	var mw float64
	for _, at := range atoms {
		sym := at.Symbol
		if sym == "" {
			sym = ElementFromTripos(at.Type)
		}
		m, ok := Mass(sym)
		if !ok {
			return 0, Errorf(ErrMol2, "MolecularWeight", "no mass for atom %d of type %q", at.Serial, at.Type)
		}
		mw += m
	}
	return mw, nil
}

//HydrophobicCount returns the number of atoms whose Tripos type is in the hydrophobic set.
func HydrophobicCount(atoms []*Atom) int {
	var n int
	for _, at := range atoms {
		if IsHydrophobicType(at.Type) {
			n++
		}
	}
	return n
}
