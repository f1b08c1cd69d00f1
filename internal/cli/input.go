/*
 * input.go, part of somcyp.
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

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/signal"
)

//ParseAtom reads an atom serial number, given either as an integer or
//as an element and a number joined by a dot ("C.12").
func ParseAtom(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, somcyp.Errorf(somcyp.ErrAtomKeyMismatch, "ParseAtom", "invalid atom identifier %q", s)
	}
	return n, nil
}

//parseValue reads a float. Empty fields, null and NaN are missing values.
func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "nan", "na":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

//csvTable is a CSV file with a header row. Column names are case insensitive.
type csvTable struct {
	name   string
	header map[string]int
	rows   [][]string
}

func readCSV(r io.Reader, name string, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s is empty", name)
	}
	T := &csvTable{name: name, header: make(map[string]int), rows: recs[1:]}
	for i, h := range recs[0] {
		T.header[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range required {
		if _, ok := T.header[c]; !ok {
			return nil, fmt.Errorf("%s has no %q column", name, c)
		}
	}
	return T, nil
}

//field returns the field of column col in row, and false if the row doesn't have that column.
func (T *csvTable) field(row []string, col string) (string, bool) {
	i, ok := T.header[col]
	if !ok || i >= len(row) {
		return "", false
	}
	return row[i], true
}

//ReadScores reads a reactivity table: one row per atom, with the atom in the
//"atom" column and the raw score in column scoreCol.
func ReadScores(r io.Reader, name, scoreCol string) ([]signal.Score, error) {
	scoreCol = strings.ToLower(scoreCol)
	T, err := readCSV(r, name, "atom", scoreCol)
	if err != nil {
		return nil, err
	}
	ret := make([]signal.Score, 0, len(T.rows))
	for i, row := range T.rows {
		a, _ := T.field(row, "atom")
		atom, err := ParseAtom(a)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+2, err)
		}
		s, _ := T.field(row, scoreCol)
		v, err := parseValue(s)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+2, err)
		}
		ret = append(ret, signal.Score{Atom: atom, Value: v})
	}
	return ret, nil
}

//ReadContacts reads contact events, with columns pose, atom and, optionally, kind.
func ReadContacts(r io.Reader, name string) ([]signal.Contact, error) {
	T, err := readCSV(r, name, "pose", "atom")
	if err != nil {
		return nil, err
	}
	ret := make([]signal.Contact, 0, len(T.rows))
	for i, row := range T.rows {
		p, _ := T.field(row, "pose")
		a, _ := T.field(row, "atom")
		atom, err := ParseAtom(a)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+2, err)
		}
		k, _ := T.field(row, "kind")
		ret = append(ret, signal.Contact{Pose: strings.TrimSpace(p), Atom: atom, Kind: strings.TrimSpace(k)})
	}
	return ret, nil
}

//ReadAuxiliary reads the values of an auxiliary predictor, with columns atom, value and,
//optionally, label.
func ReadAuxiliary(r io.Reader, name string) ([]signal.AuxValue, error) {
	T, err := readCSV(r, name, "atom", "value")
	if err != nil {
		return nil, err
	}
	ret := make([]signal.AuxValue, 0, len(T.rows))
	for i, row := range T.rows {
		a, _ := T.field(row, "atom")
		atom, err := ParseAtom(a)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+2, err)
		}
		s, _ := T.field(row, "value")
		v, err := parseValue(s)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+2, err)
		}
		l, _ := T.field(row, "label")
		ret = append(ret, signal.AuxValue{Atom: atom, Value: v, Label: strings.TrimSpace(l)})
	}
	return ret, nil
}

//readFile opens name and reads it with read.
func readFile[T any](name string, read func(io.Reader, string) (T, error)) (T, error) {
	f, err := os.Open(name)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()
	return read(f, name)
}
