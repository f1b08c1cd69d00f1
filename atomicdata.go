/*
 * atomicdata.go, part of somcyp.
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

//A map for assigning mass to elements.
//Note that just common drug-like elements are present.
//Tripos lone pairs and dummy atoms weight nothing.
var symbolMass = map[string]float64{
	"H":  1.008,
	"B":  10.81,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Na": 22.99,
	"Mg": 24.305,
	"Si": 28.085,
	"P":  30.974,
	"S":  32.06,
	"Cl": 35.45,
	"K":  39.098,
	"Ca": 40.078,
	"Fe": 55.845,
	"Zn": 65.38,
	"As": 74.922,
	"Se": 78.971,
	"Br": 79.904,
	"I":  126.904,
	"LP": 0,
	"Du": 0,
}

//Tripos atom types counted as hydrophobic by the conformation decision trees:
//non-polar carbons, halogens and thioether sulfur.
var hydrophobicTypes = map[string]bool{
	"C.3":  true,
	"C.2":  true,
	"C.1":  true,
	"C.ar": true,
	"S.3":  true,
	"F":    true,
	"Cl":   true,
	"Br":   true,
	"I":    true,
}

//Mass returns the mass for the element symbol, and false if the symbol is unknown.
func Mass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}

//IsHydrophobicType returns true if the Tripos atom type tripos is in the hydrophobic set.
func IsHydrophobicType(tripos string) bool {
	return hydrophobicTypes[tripos]
}
