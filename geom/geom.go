/*
 * geom.go, part of somcyp.
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

//Package geom contains the structural distance metrics between two poses
//of the same ligand.
package geom

import (
	"math"

	somcyp "github.com/md-studio/somcyp"
	v3 "github.com/md-studio/somcyp/v3"
	"gonum.org/v1/gonum/mat"
)

func checkShapes(caller string, test, templa *v3.Matrix) (int, error) {
	if test == nil || templa == nil || test.Dense == nil || templa.Dense == nil {
		return 0, somcyp.NewError(somcyp.ErrShapeMismatch, caller, "nil coordinate set")
	}
	tsr, tsc := test.Dims()
	tmr, tmc := templa.Dims()
	if tsr != tmr || tsc != 3 || tmc != 3 {
		return 0, somcyp.Errorf(somcyp.ErrShapeMismatch, caller, "ill formed matrices: %dx%d and %dx%d", tsr, tsc, tmr, tmc)
	}
	if tsr == 0 {
		return 0, somcyp.NewError(somcyp.ErrShapeMismatch, caller, "empty coordinate sets")
	}
	return tsr, nil
}

//rmsd assumes the shapes have been checked.
func rmsd(test, templa mat.Matrix, n int) float64 {
	var sq float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			d := test.At(i, j) - templa.At(i, j)
			sq += d * d
		}
	}
	return math.Sqrt(sq / float64(n))
}

//RMSD returns the root of the mean square deviation between the sets of
//cartesian coordinates test and templa, atom by atom and without superimposing them.
func RMSD(test, templa *v3.Matrix) (float64, error) {
	n, err := checkShapes("RMSD", test, templa)
	if err != nil {
		return 0, err
	}
	return rmsd(test, templa, n), nil
}

//KabschRMSD returns the RMSD between test and templa after the optimal
//superposition of test onto templa (Kabsch algorithm). Only proper rotations
//are considered, so mirror images are not superimposed. Neither input is modified.
func KabschRMSD(test, templa *v3.Matrix) (float64, error) {
	n, err := checkShapes("KabschRMSD", test, templa)
	if err != nil {
		return 0, err
	}
	ctest := test.Clone()
	ctest.SubVec(ctest, test.Centroid())
	ctempla := templa.Clone()
	ctempla.SubVec(ctempla, templa.Centroid())

	//covariance, C = ctest^T ctempla = U S V^T
	C := mat.NewDense(3, 3, nil)
	C.Mul(ctest.Dense.T(), ctempla.Dense)
	var svd mat.SVD
	if ok := svd.Factorize(C, mat.SVDFull); !ok {
		return 0, somcyp.NewError(somcyp.ErrShapeMismatch, "KabschRMSD", "SVD of the covariance matrix failed")
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)
	if v3.Det3(&U)*v3.Det3(&V) < 0 {
		for i := 0; i < 3; i++ {
			U.Set(i, 2, -U.At(i, 2))
		}
	}
	R := mat.NewDense(3, 3, nil)
	R.Mul(&U, V.T())
	ctest.Mul(ctest, R)
	return rmsd(ctest, ctempla, n), nil
}
