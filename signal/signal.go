/*
 * signal.go, part of somcyp.
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

//Package signal folds the evidence for each ligand atom being a site of metabolism
//(reactivity scores, contacts with the heme iron in docking poses, other predictors)
//into a single table of values between 0 and 1.
//
//The reactivity table defines the atoms of the ligand. Every other input
//must refer to those atoms only.
package signal

import (
	"math"
	"strconv"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cluster"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

//Score is the raw reactivity score for one atom. NaN means no score.
type Score struct {
	Atom  int
	Value float64
}

//Convention tells how to turn raw reactivity scores into values in [0,1].
type Convention int

const (
	_ Convention = iota
	//Higher score means less reactive: 1-score/max(score).
	Ranking
	//Lower energy means more reactive: min(score)/score. Scores at or above the sentinel are missing.
	Energy
)

func (c Convention) String() string {
	switch c {
	case Ranking:
		return "ranking"
	case Energy:
		return "energy"
	}
	return "Convention(" + strconv.Itoa(int(c)) + ")"
}

//ParseConvention returns the Convention named name ("ranking" or "energy").
func ParseConvention(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ranking":
		return Ranking, nil
	case "energy":
		return Energy, nil
	}
	return 0, somcyp.Errorf(somcyp.ErrUnsupportedConvention, "ParseConvention", "unknown score convention %q", name)
}

//Contact is one contact event between a ligand atom and the heme in a docking pose.
//Kind is not used for anything, every event counts.
type Contact struct {
	Pose string
	Atom int
	Kind string
}

//AuxValue is the value of an auxiliary predictor for one atom, with an optional categorical label.
type AuxValue struct {
	Atom  int
	Value float64
	Label string
}

//Aggregator builds a Table, one column at a time. A failed step leaves the table as it was.
type Aggregator struct {
	table *Table
	o     *Options
}

//NewAggregator returns an Aggregator whose table has one atom per score and a first column
//with the scores normalized following conv.
func NewAggregator(scores []Score, conv Convention, opts ...*Options) (*Aggregator, error) {
	O := options(opts)
	if conv != Ranking && conv != Energy {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedConvention, "NewAggregator", "unsupported score convention %s", conv)
	}
	if len(scores) == 0 {
		return nil, somcyp.NewError(somcyp.ErrAtomKeyMismatch, "NewAggregator", "empty reactivity table")
	}
	atoms := make([]int, len(scores))
	raw := make([]float64, len(scores))
	seen := make(map[int]bool, len(scores))
	for i, s := range scores {
		if seen[s.Atom] {
			return nil, somcyp.Errorf(somcyp.ErrAtomKeyMismatch, "NewAggregator", "atom %d repeated in the reactivity table", s.Atom)
		}
		seen[s.Atom] = true
		atoms[i] = s.Atom
		raw[i] = s.Value
		if conv == Energy && raw[i] >= O.Sentinel() {
			raw[i] = math.NaN()
		}
	}
	var vals []float64
	switch conv {
	case Ranking:
		vals = normRanking(raw)
	case Energy:
		vals = normEnergy(raw)
	}
	if n := clamp(vals); n > 0 {
		O.Logger().Warn("reactivity values out of [0,1] clamped", zap.Int("atoms", n), zap.Stringer("convention", conv))
	}
	T := newTable(atoms)
	T.add(&Column{Name: O.ReactivityName(), Cutoff: O.ReactivityCutoff(), Values: vals})
	O.Logger().Debug("reactivity column added", zap.Int("atoms", len(atoms)), zap.Stringer("convention", conv))
	return &Aggregator{table: T, o: O}, nil
}

//present returns the non-missing values in v.
func present(v []float64) []float64 {
	r := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			r = append(r, x)
		}
	}
	return r
}

func normRanking(raw []float64) []float64 {
	vals := make([]float64, len(raw))
	p := present(raw)
	max := 0.0
	if len(p) > 0 {
		max = floats.Max(p)
	}
	for i, s := range raw {
		switch {
		case math.IsNaN(s):
			vals[i] = s
		case max == 0:
			vals[i] = 1
		default:
			vals[i] = 1 - s/max
		}
	}
	return vals
}

func normEnergy(raw []float64) []float64 {
	vals := make([]float64, len(raw))
	p := present(raw)
	min := 0.0
	if len(p) > 0 {
		min = floats.Min(p)
	}
	for i, s := range raw {
		switch {
		case math.IsNaN(s):
			vals[i] = s
		case s == min:
			vals[i] = 1
		default:
			vals[i] = min / s
		}
	}
	return vals
}

//clamp puts every non-missing value of v in [0,1] and returns how many had to be changed.
func clamp(v []float64) int {
	var n int
	for i, x := range v {
		switch {
		case math.IsNaN(x):
		case x < 0:
			v[i] = 0
			n++
		case x > 1:
			v[i] = 1
			n++
		}
	}
	return n
}

//Table returns the table built so far.
func (A *Aggregator) Table() *Table { return A.table }

func (A *Aggregator) checkName(caller, name string) error {
	if _, ok := A.table.byname[name]; ok {
		return somcyp.Errorf(somcyp.ErrDuplicateColumn, caller, "column %q already in the table", name)
	}
	return nil
}

//AddDocking adds a column with, for each atom, the number of distinct poses in which it had a contact
//event, divided by poseCount and then by the largest of those ratios, so the atom with most
//evidence gets 1. If no atom has contacts, every atom gets 0.
func (A *Aggregator) AddDocking(contacts []Contact, poseCount int) error {
	name := A.o.DockingName()
	if err := A.checkName("AddDocking", name); err != nil {
		return err
	}
	T := A.table
	if poseCount < 0 || (poseCount == 0 && len(contacts) > 0) {
		return somcyp.Errorf(somcyp.ErrInvalidPoseCount, "AddDocking", "pose count %d for %d contact events", poseCount, len(contacts))
	}
	var poses []string
	posidx := make(map[string]int)
	for _, c := range contacts {
		if !T.Has(c.Atom) {
			return somcyp.Errorf(somcyp.ErrAtomKeyMismatch, "AddDocking", "atom %d in pose %s is not in the reactivity table", c.Atom, c.Pose)
		}
		if _, ok := posidx[c.Pose]; !ok {
			posidx[c.Pose] = len(poses)
			poses = append(poses, c.Pose)
		}
	}
	if len(poses) > poseCount {
		return somcyp.Errorf(somcyp.ErrInvalidPoseCount, "AddDocking", "%d poses with contacts, but a pose count of %d", len(poses), poseCount)
	}
	incidence := make([][]bool, len(poses))
	for i := range incidence {
		incidence[i] = make([]bool, len(T.atoms))
	}
	counts := make([]float64, len(T.atoms))
	for _, c := range contacts {
		p, a := posidx[c.Pose], T.index[c.Atom]
		if !incidence[p][a] {
			incidence[p][a] = true
			counts[a]++
		}
	}
	if poseCount > 0 {
		floats.Scale(1/float64(poseCount), counts)
	}
	if max := floats.Max(counts); max > 0 {
		floats.Scale(1/max, counts)
	}
	T.poses = poses
	T.contact = incidence
	T.add(&Column{Name: name, Cutoff: A.o.DockingCutoff(), Values: counts})
	A.o.Logger().Debug("docking column added", zap.Int("contacts", len(contacts)), zap.Int("poses", len(poses)), zap.Int("pose_count", poseCount))
	return nil
}

//AddAuxiliary adds a column with the values of another predictor, as given. The values must be in [0,1]
//or NaN (missing). Atoms not in values are missing. cutoff is the highlight cutoff for the column.
func (A *Aggregator) AddAuxiliary(name string, values []AuxValue, cutoff float64) error {
	if name == "" {
		return somcyp.NewError(somcyp.ErrDuplicateColumn, "AddAuxiliary", "empty column name")
	}
	if err := A.checkName("AddAuxiliary", name); err != nil {
		return err
	}
	T := A.table
	c := &Column{Name: name, Cutoff: cutoff, Values: make([]float64, len(T.atoms))}
	for i := range c.Values {
		c.Values[i] = math.NaN()
	}
	for _, v := range values {
		i, ok := T.index[v.Atom]
		if !ok {
			return somcyp.Errorf(somcyp.ErrAtomKeyMismatch, "AddAuxiliary", "atom %d in %s is not in the reactivity table", v.Atom, name)
		}
		if !math.IsNaN(v.Value) && (v.Value < 0 || v.Value > 1) {
			return somcyp.Errorf(somcyp.ErrSignalRange, "AddAuxiliary", "value %g for atom %d in %s out of [0,1]", v.Value, v.Atom, name)
		}
		c.Values[i] = v.Value
		if v.Label != "" {
			if c.Labels == nil {
				c.Labels = make([]string, len(T.atoms))
			}
			c.Labels[i] = v.Label
		}
	}
	T.add(c)
	return nil
}

//FilterContacts returns the contact events that happened in poses belonging to a retained cluster
//of A, and the number of such poses.
func FilterContacts(contacts []Contact, A *cluster.Assignment) ([]Contact, int) {
	var r []Contact
	for _, c := range contacts {
		if m, ok := A.Of(c.Pose); ok && m.Cluster != 0 {
			r = append(r, c)
		}
	}
	return r, len(A.Clustered())
}
