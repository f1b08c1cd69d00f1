/*
 * doc.go, part of somcyp.
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

/*
Package somcyp is the root package of the somcyp library, which predicts the sites of
metabolism (SOM) of a small ligand for a Cytochrome P450 isoform by combining
reactivity scores with the contacts to the heme iron seen in an ensemble of docking poses.

The root package contains what everything else shares: the error type and error kinds,
the Tripos atom, MOL2 reading and the Population of poses.


	**somcyp Capabilities**

    Reads Tripos MOL2 files, single and multi-molecule.

    Calculates plain and superimposed (Kabsch) RMSD between poses (package geom).

    Builds a pairwise distance matrix over a population of poses concurrently and
	clusters it hierarchically, with the usual linkage methods and flattening criteria.
	Every retained cluster gets a medoid pose (package cluster). The tree can be
	plotted as a dendrogram (package cluster/clusterplot).

    Folds docking contact counts, reactivity scores and any other per-atom
	predictor into one table of values between 0 and 1 (package signal).

    Selects the protein conformation to dock against from the isoform, molecular
	weight and hydrophobicity of the ligand (package cypconf).

    Writes tables and cluster assignments as CSV or JSON, optionally compressed (package export).

The somcyp command (cmd/somcyp) puts the above together.

Errors

All packages return errors of type *Error, which wrap one of the Err* kinds in this
package, so errors.Is(err, somcyp.ErrAtomKeyMismatch) and so on work. Errors also carry
a trail of the functions they passed through.
*/
package somcyp
