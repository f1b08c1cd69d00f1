/*
 * mol2.go, part of somcyp.
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
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/md-studio/somcyp/v3"
)

const mol2Atom = "@<TRIPOS>ATOM"

//mol2Record is one parsed line of an ATOM block.
type mol2Record struct {
	atom   *Atom
	coords [3]float64
}

//parseMol2AtomLine reads a Tripos atom line:
//atom_id atom_name x y z atom_type [subst_id [subst_name [charge ...]]]
func parseMol2AtomLine(line string, lineno int) (*mol2Record, error) {
	fields := strings.Fields(line)
	if len(fields) < 6 {
		return nil, Errorf(ErrMol2, "parseMol2AtomLine", "line %d has %d fields, at least 6 needed", lineno, len(fields))
	}
	r := &mol2Record{atom: new(Atom)}
	var err error
	r.atom.Serial, err = strconv.Atoi(fields[0])
	if err != nil {
		return nil, Errorf(ErrMol2, "parseMol2AtomLine", "line %d: bad atom id %q", lineno, fields[0])
	}
	r.atom.Name = fields[1]
	for i := 0; i < 3; i++ {
		r.coords[i], err = strconv.ParseFloat(fields[2+i], 64)
		if err != nil {
			return nil, Errorf(ErrMol2, "parseMol2AtomLine", "line %d: bad coordinate %q", lineno, fields[2+i])
		}
	}
	r.atom.Type = fields[5]
	r.atom.Symbol = ElementFromTripos(fields[5])
	//the optional fields are not checked too strictly, many programs fill them with junk.
	if len(fields) > 6 {
		r.atom.SubstID, _ = strconv.Atoi(fields[6])
	}
	if len(fields) > 7 {
		r.atom.SubstName = fields[7]
	}
	if len(fields) > 8 {
		r.atom.Charge, _ = strconv.ParseFloat(fields[8], 64)
	}
	return r, nil
}

//readMol2 reads every ATOM block in r, one slice of records per molecule.
//If only the first molecule is wanted, first should be true.
func readMol2(r io.Reader, first bool) ([][]*mol2Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var mols [][]*mol2Record
	var current []*mol2Record
	reading := false
	lineno := 0
	flush := func() {
		if len(current) > 0 {
			mols = append(mols, current)
		}
		current = nil
	}
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "@<TRIPOS>") {
			if reading {
				reading = false
				flush()
				if first && len(mols) > 0 {
					return mols, nil
				}
			}
			if line == mol2Atom {
				reading = true
			}
			continue
		}
		if !reading {
			continue
		}
		rec, err := parseMol2AtomLine(line, lineno)
		if err != nil {
			return nil, err
		}
		current = append(current, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, Errorf(ErrMol2, "readMol2", "reading: %s", err.Error())
	}
	flush()
	if len(mols) == 0 {
		return nil, NewError(ErrMol2, "readMol2", "no "+mol2Atom+" records found")
	}
	return mols, nil
}

//ReadMol2Atoms returns the atoms of the first molecule in the Tripos MOL2 stream r.
func ReadMol2Atoms(r io.Reader) ([]*Atom, error) {
	mols, err := readMol2(r, true)
	if err != nil {
		return nil, ErrDecorate(err, "ReadMol2Atoms")
	}
	atoms := make([]*Atom, len(mols[0]))
	for i, rec := range mols[0] {
		atoms[i] = rec.atom
	}
	return atoms, nil
}

//ReadMol2Coords returns the coordinates of every molecule in the (possibly multi-molecule)
//Tripos MOL2 stream r, one Matrix per molecule.
func ReadMol2Coords(r io.Reader) ([]*v3.Matrix, error) {
	mols, err := readMol2(r, false)
	if err != nil {
		return nil, ErrDecorate(err, "ReadMol2Coords")
	}
	ret := make([]*v3.Matrix, 0, len(mols))
	for _, m := range mols {
		data := make([]float64, 0, 3*len(m))
		for _, rec := range m {
			data = append(data, rec.coords[:]...)
		}
		c, err := v3.NewMatrix(data)
		if err != nil {
			return nil, Errorf(ErrMol2, "ReadMol2Coords", "%s", err.Error())
		}
		ret = append(ret, c)
	}
	return ret, nil
}

//Mol2FileAtoms opens the file name and reads the atoms of its first molecule.
func Mol2FileAtoms(name string) ([]*Atom, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	atoms, err := ReadMol2Atoms(f)
	if err != nil {
		return nil, ErrDecorate(err, "Mol2FileAtoms "+name)
	}
	return atoms, nil
}

//Mol2FileCoords opens the file name and reads the coordinates of all its molecules.
func Mol2FileCoords(name string) ([]*v3.Matrix, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ReadMol2Coords(f)
	if err != nil {
		return nil, ErrDecorate(err, "Mol2FileCoords "+name)
	}
	return c, nil
}

//PopulationFromMol2 builds a Population from pose files. Each file contributes
//all its molecules, in order. If labels is nil, a file with a single molecule is labeled
//with its name, and multi-molecule files with name:index (starting from 1).
func PopulationFromMol2(files []string, labels []string) (*Population, error) {
	var sets []*v3.Matrix
	var deflabels []string
	for _, name := range files {
		c, err := Mol2FileCoords(name)
		if err != nil {
			return nil, ErrDecorate(err, "PopulationFromMol2")
		}
		for i, m := range c {
			sets = append(sets, m)
			if len(c) == 1 {
				deflabels = append(deflabels, name)
			} else {
				deflabels = append(deflabels, name+":"+strconv.Itoa(i+1))
			}
		}
	}
	if labels == nil {
		labels = deflabels
	}
	p, err := NewPopulation(sets, labels)
	if err != nil {
		return nil, ErrDecorate(err, "PopulationFromMol2")
	}
	return p, nil
}
