/*
 * cluster.go, part of somcyp.
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
	"path/filepath"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/cluster/clusterplot"
	"github.com/md-studio/somcyp/export"
	v3 "github.com/md-studio/somcyp/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster POSE.mol2...",
		Short: "Cluster docking poses",
		Long: "Clusters the docking poses in the given MOL2 files (each file may hold several poses)\n" +
			"and writes the cluster of each pose, the medoids and a dendrogram to a new run directory.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			A, err := clusterPoses(e, args)
			if err != nil {
				return err
			}
			dir, err := newRunDir(e.cfg.Output.Dir, "cluster")
			if err != nil {
				return err
			}
			if err := writeAssignment(e, dir, A); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, A)
			fmt.Fprintln(out, "Results in", dir)
			return nil
		},
	}
	clusterFlags(cmd)
	return cmd
}

//poseKey is the name a pose is matched by: its file name without directories
//and without the .mol2 extension, plus the :index suffix of multi-molecule files.
func poseKey(label string) string {
	return strings.Replace(filepath.Base(label), ".mol2", "", 1)
}

//relabel returns P with each pose labeled by its poseKey, or P itself if
//those keys are not unique.
func relabel(P *somcyp.Population) (*somcyp.Population, error) {
	keys := make([]string, P.Len())
	sets := make([]*v3.Matrix, P.Len())
	seen := make(map[string]bool, P.Len())
	for i, l := range P.Labels() {
		keys[i] = poseKey(l)
		if seen[keys[i]] {
			return P, nil
		}
		seen[keys[i]] = true
		sets[i] = P.Coords(i)
	}
	return somcyp.NewPopulation(sets, keys)
}

//clusterPoses reads the poses in files and clusters them following e.cfg.
func clusterPoses(e *env, files []string) (*cluster.Assignment, error) {
	P, err := somcyp.PopulationFromMol2(files, nil)
	if err != nil {
		return nil, err
	}
	P, err = relabel(P)
	if err != nil {
		return nil, err
	}
	m, err := e.cfg.Metric()
	if err != nil {
		return nil, err
	}
	params, err := e.cfg.ClusterParams()
	if err != nil {
		return nil, err
	}
	O := cluster.DefaultOptions()
	O.Cpus(e.cfg.Cpus)
	O.Logger(e.log)
	e.log.Info("clustering poses", zap.Int("poses", P.Len()), zap.Int("atoms", P.NAtoms()), zap.Stringer("metric", m), zap.Stringer("params", params))
	D, err := cluster.NewDistanceMatrix(P, m, O)
	if err != nil {
		return nil, err
	}
	return cluster.Cluster(D, params, O)
}

//writeTable writes a table to path with write, compressing it as the path extension says.
func writeTable(path string, write func(io.Writer) error) error {
	w, err := export.Create(path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

//writeAssignment writes A, as CSV and JSON, and its dendrogram to dir.
func writeAssignment(e *env, dir string, A *cluster.Assignment) error {
	err := writeTable(outName(e.cfg, dir, "clusters.csv"), func(w io.Writer) error { return export.WriteAssignmentCSV(w, A) })
	if err != nil {
		return err
	}
	err = writeTable(outName(e.cfg, dir, "clusters.json"), func(w io.Writer) error { return export.WriteJSON(w, nil, A) })
	if err != nil {
		return err
	}
	if e.cfg.Output.Plot != "" {
		name := filepath.Join(dir, "cluster_dendrogram."+e.cfg.Output.Plot)
		if err := clusterplot.Save(A, name); err != nil {
			return err
		}
		e.log.Debug("dendrogram written", zap.String("file", name))
	}
	return nil
}
