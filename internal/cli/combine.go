/*
 * combine.go, part of somcyp.
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
	"fmt"
	"io"
	"sort"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/export"
	"github.com/md-studio/somcyp/signal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type combineFlags struct {
	reactivity  string
	scoreColumn string
	contacts    string
	poses       []string
	poseCount   int
	aux         []string
}

func newCombineCmd() *cobra.Command {
	fl := new(combineFlags)
	cmd := &cobra.Command{
		Use:   "combine --reactivity SCORES.csv [--contacts CONTACTS.csv [--poses POSE.mol2...]] [--aux NAME=VALUES.csv...]",
		Short: "Combine reactivity, docking and other predictions per atom",
		Long: "Normalizes the reactivity scores of the ligand atoms and adds, for each atom, the fraction\n" +
			"of docking poses in which it contacted the heme. If pose files are given and cluster\n" +
			"filtering is on, only poses in retained clusters are counted. Other per-atom predictions\n" +
			"can be added with --aux. The combined table is written to a new run directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, fl)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.reactivity, "reactivity", "", "reactivity table, CSV with atom and score columns")
	f.StringVar(&fl.scoreColumn, "score-column", "score", "column of the reactivity table with the raw scores")
	f.StringVar(&fl.contacts, "contacts", "", "heme contact events, CSV with pose, atom and (optionally) kind columns")
	f.StringSliceVar(&fl.poses, "poses", nil, "docking pose MOL2 files, used to cluster the poses")
	f.IntVar(&fl.poseCount, "pose-count", 0, "number of evaluated poses (0: taken from the poses or the contacts)")
	f.StringArrayVar(&fl.aux, "aux", nil, "auxiliary predictor as NAME=FILE, CSV with atom, value and (optionally) label columns")
	f.String("convention", "ranking", "reactivity score convention (ranking, energy)")
	f.Float64("sentinel", 999, "energies from this value on are missing (energy convention)")
	f.Float64("reactivity-cutoff", 0.75, "highlight cutoff for the reactivity column")
	f.Float64("docking-cutoff", 0.75, "highlight cutoff for the docking column")
	f.Float64("auxiliary-cutoff", 0.5, "highlight cutoff for auxiliary columns")
	f.Bool("filter", true, "count only poses in retained clusters")
	clusterFlags(cmd)
	_ = cmd.MarkFlagRequired("reactivity")
	return cmd
}

func runCombine(cmd *cobra.Command, fl *combineFlags) error {
	e := getEnv(cmd)
	conv, err := e.cfg.Convention()
	if err != nil {
		return err
	}
	scores, err := readFile(fl.reactivity, func(r io.Reader, name string) ([]signal.Score, error) {
		return ReadScores(r, name, fl.scoreColumn)
	})
	if err != nil {
		return err
	}
	O := e.cfg.SignalOptions()
	O.Logger(e.log)
	Ag, err := signal.NewAggregator(scores, conv, O)
	if err != nil {
		return err
	}
	var A *cluster.Assignment
	if fl.contacts != "" {
		contacts, err := readFile(fl.contacts, ReadContacts)
		if err != nil {
			return err
		}
		count := fl.poseCount
		if len(fl.poses) > 0 {
			A, err = clusterPoses(e, fl.poses)
			if err != nil {
				return err
			}
			if err := matchContacts(contacts, A.Labels()); err != nil {
				return err
			}
			var n int
			if e.cfg.Cluster.Filter {
				contacts, n = signal.FilterContacts(contacts, A)
			} else {
				n = A.Len()
			}
			if count == 0 {
				count = n
			}
		}
		if A == nil {
			for i := range contacts {
				contacts[i].Pose = poseKey(contacts[i].Pose)
			}
		}
		if count == 0 {
			count = distinctPoses(contacts)
		}
		e.log.Info("adding docking evidence", zap.Int("contacts", len(contacts)), zap.Int("pose_count", count), zap.Bool("filtered", A != nil && e.cfg.Cluster.Filter))
		if err := Ag.AddDocking(contacts, count); err != nil {
			return err
		}
	}
	for _, a := range fl.aux {
		name, file, ok := strings.Cut(a, "=")
		if !ok || name == "" || file == "" {
			return fmt.Errorf("invalid --aux %q, expected NAME=FILE", a)
		}
		vals, err := readFile(file, ReadAuxiliary)
		if err != nil {
			return err
		}
		if err := Ag.AddAuxiliary(name, vals, e.cfg.Signal.AuxiliaryCutoff); err != nil {
			return err
		}
	}
	T := Ag.Table()
	dir, err := newRunDir(e.cfg.Output.Dir, "combine")
	if err != nil {
		return err
	}
	err = writeTable(outName(e.cfg, dir, "prediction.csv"), func(w io.Writer) error { return export.WriteTableCSV(w, T, true) })
	if err != nil {
		return err
	}
	err = writeTable(outName(e.cfg, dir, "prediction.json"), func(w io.Writer) error { return export.WriteJSON(w, T, A) })
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if A != nil {
		if err := writeAssignment(e, dir, A); err != nil {
			return err
		}
		fmt.Fprintln(out, A)
	}
	printHighlights(out, T)
	fmt.Fprintln(out, "Results in", dir)
	return nil
}

//matchContacts renames the pose of each contact to the label of the clustered pose
//it refers to. A contact may name its pose by the label itself, by the file path
//with or without the .mol2 extension, or by its poseKey, as long as that name
//points to a single pose.
func matchContacts(contacts []signal.Contact, labels []string) error {
	exact := make(map[string]bool, len(labels))
	alias := make(map[string]string, 2*len(labels))
	ambiguous := make(map[string]bool)
	add := func(name, label string) {
		if l, ok := alias[name]; ok && l != label {
			ambiguous[name] = true
			return
		}
		alias[name] = label
	}
	for _, l := range labels {
		exact[l] = true
		add(strings.Replace(l, ".mol2", "", 1), l)
		add(poseKey(l), l)
	}
	for i, c := range contacts {
		if exact[c.Pose] {
			continue
		}
		name := strings.Replace(c.Pose, ".mol2", "", 1)
		if _, ok := alias[name]; !ok {
			name = poseKey(c.Pose)
		}
		l, ok := alias[name]
		switch {
		case ambiguous[name]:
			return somcyp.Errorf(somcyp.ErrInvalidPopulation, "matchContacts", "contact pose %q matches more than one pose file, give its path", c.Pose)
		case !ok:
			return somcyp.Errorf(somcyp.ErrInvalidPopulation, "matchContacts", "contact pose %q is not among the clustered poses", c.Pose)
		}
		contacts[i].Pose = l
	}
	return nil
}

func distinctPoses(contacts []signal.Contact) int {
	seen := make(map[string]bool)
	for _, c := range contacts {
		seen[c.Pose] = true
	}
	return len(seen)
}

//printHighlights writes, for each column of T, the atoms at or above the column's cutoff.
func printHighlights(w io.Writer, T *signal.Table) {
	for _, name := range T.Columns() {
		atoms := T.Highlight(name)
		sort.Ints(atoms)
		s := make([]string, len(atoms))
		for i, a := range atoms {
			s[i] = fmt.Sprint(a)
		}
		fmt.Fprintf(w, "%s: %s\n", name, strings.Join(s, " "))
	}
}
