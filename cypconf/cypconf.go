/*
 * cypconf.go, part of somcyp.
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

//Package cypconf selects the conformation of a Cytochrome P450 isoform to dock a ligand against,
//from the molecular weight of the ligand and its number of hydrophobic atoms.
//
//Each isoform has an ordered list of rules. Every rule that matches the ligand overrides the ones
//before it, so the last matching rule is the one selected.
package cypconf

import (
	"io"
	"path"
	"sort"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"gopkg.in/yaml.v3"
)

//Rule selects Structure for ligands with MinMW < molecular weight < MaxMW and no more than
//MaxHydrophobic hydrophobic atoms. A MaxMW or MaxHydrophobic of 0 means no upper limit.
type Rule struct {
	MinMW          float64 `yaml:"min_mw" json:"min_mw"`
	MaxMW          float64 `yaml:"max_mw" json:"max_mw"`
	MaxHydrophobic int     `yaml:"max_hydrophobic" json:"max_hydrophobic"`
	Structure      string  `yaml:"structure" json:"structure"`
}

//Matches returns true if a ligand with molecular weight mw and nhydrophobic hydrophobic atoms fits the rule.
func (R Rule) Matches(mw float64, nhydrophobic int) bool {
	if !(R.MinMW < mw) {
		return false
	}
	if R.MaxMW > 0 && !(mw < R.MaxMW) {
		return false
	}
	return R.MaxHydrophobic <= 0 || nhydrophobic <= R.MaxHydrophobic
}

//Choice is a selected conformation, with the limits of the rule that selected it.
type Choice struct {
	Isoform        string
	MinMW          float64
	MaxMW          float64
	MaxHydrophobic int
	Structure      string
}

//Table maps isoform names (which may be shell patterns) to their ordered rules.
type Table map[string][]Rule

//DefaultTable returns the decision trees for the 3A4, 1A2 and 2D6 isoforms.
//
//	CYP   Mol Weight / nr Hfob    Conformation
//	3A4   < 354                   3UA1_apo_5901
//	3A4   354 - 500               3UA1_apo_6091
//	3A4   > 500                   3UA1_BCP_3521
//	1A2   overall                 1A2_nathan
//	2D6   < 280                   2D6_PPD_70_216
//	2D6   > 280, < 18 n_hydroph   2D6_CHZ_170_79
//	2D6   > 280, > 18 n_hydroph   2D6_TMF_70_3
//
//As the last match wins, the 3A4 354-500 and 2D6 CHZ rules are shadowed by the rules after them.
func DefaultTable() Table {
	return Table{
		"3A4": {
			{MinMW: 0, MaxMW: 354, Structure: "3UA1_apo_5901.mol2"},
			{MinMW: 354, MaxMW: 500, Structure: "3UA1_apo_6091.mol2"},
			{MinMW: 354, MaxMW: 9999, Structure: "3UA1_BCP_3521.mol2"},
		},
		"1A2": {
			{Structure: "1A2_nathan.mol2"},
		},
		"2D6": {
			{MinMW: 0, MaxMW: 280, Structure: "2D6_PPD_70_216.mol2"},
			{MinMW: 280, MaxMW: 9999, MaxHydrophobic: 18, Structure: "2D6_CHZ_170_79.mol2"},
			{MinMW: 280, MaxMW: 9999, Structure: "2D6_TMF_70_3.mol2"},
		},
	}
}

//normalize upper-cases isoform and removes a leading CYP.
func normalize(isoform string) string {
	s := strings.ToUpper(strings.TrimSpace(isoform))
	return strings.TrimPrefix(s, "CYP")
}

//Resolve returns the key of the table that the isoform name corresponds to. The name is
//upper-cased and a leading "CYP" is removed. Table keys are taken as shell patterns: an exact key
//is preferred, then keys without wildcards, then the rest, each in alphabetical order.
func (T Table) Resolve(isoform string) (string, error) {
	name := normalize(isoform)
	if _, ok := T[name]; ok && name != "" {
		return name, nil
	}
	var plain, wild []string
	for k := range T {
		ok, err := path.Match(normalize(k), name)
		if err != nil || !ok {
			continue
		}
		if strings.ContainsAny(k, "*?[") {
			wild = append(wild, k)
		} else {
			plain = append(plain, k)
		}
	}
	sort.Strings(plain)
	sort.Strings(wild)
	all := append(plain, wild...)
	if len(all) == 0 {
		return "", somcyp.Errorf(somcyp.ErrUnsupportedIsoform, "Resolve", "unsupported CYP isoform %q", isoform)
	}
	return all[0], nil
}

//Select returns the conformation for a ligand with molecular weight mw and nhydrophobic hydrophobic
//atoms, for the given isoform. The last matching rule of the isoform is the one selected.
func (T Table) Select(isoform string, mw float64, nhydrophobic int) (*Choice, error) {
	key, err := T.Resolve(isoform)
	if err != nil {
		return nil, somcyp.ErrDecorate(err, "Select")
	}
	var choice *Choice
	for _, r := range T[key] {
		if !r.Matches(mw, nhydrophobic) {
			continue
		}
		choice = &Choice{Isoform: key, MinMW: r.MinMW, MaxMW: r.MaxMW, MaxHydrophobic: r.MaxHydrophobic, Structure: r.Structure}
	}
	if choice == nil {
		return nil, somcyp.Errorf(somcyp.ErrNoConformation, "Select", "no %s conformation for molecular weight %.3f and %d hydrophobic atoms", key, mw, nhydrophobic)
	}
	return choice, nil
}

//SelectForAtoms is like Select, with the molecular weight and hydrophobic atoms
//taken from the Tripos types of atoms.
func (T Table) SelectForAtoms(isoform string, atoms []*somcyp.Atom) (*Choice, float64, int, error) {
	mw, err := somcyp.MolecularWeight(atoms)
	if err != nil {
		return nil, 0, 0, somcyp.ErrDecorate(err, "SelectForAtoms")
	}
	nh := somcyp.HydrophobicCount(atoms)
	c, err := T.Select(isoform, mw, nh)
	if err != nil {
		return nil, mw, nh, somcyp.ErrDecorate(err, "SelectForAtoms")
	}
	return c, mw, nh, nil
}

//LoadTable reads a table in YAML format: a mapping from isoform names to lists of rules.
//Rule order is kept.
func LoadTable(r io.Reader) (Table, error) {
	T := Table{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&T); err != nil {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedIsoform, "LoadTable", "reading conformation table: %s", err.Error())
	}
	if len(T) == 0 {
		return nil, somcyp.NewError(somcyp.ErrUnsupportedIsoform, "LoadTable", "empty conformation table")
	}
	for k, rules := range T {
		for i, rule := range rules {
			if rule.Structure == "" {
				return nil, somcyp.Errorf(somcyp.ErrNoConformation, "LoadTable", "rule %d of %s has no structure", i, k)
			}
		}
	}
	return T, nil
}
