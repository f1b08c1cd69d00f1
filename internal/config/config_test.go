/*
 * config_test.go, part of somcyp.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/geom"
	"github.com/md-studio/somcyp/signal"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(Te *testing.T, content string) string {
	path := filepath.Join(Te.TempDir(), "somcyp.yaml")
	require.NoError(Te, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(Te *testing.T) {
	c, err := Load("", nil)
	require.NoError(Te, err)
	assert.Equal(Te, 8.0, c.Cluster.Threshold)
	assert.Equal(Te, "maxclust", c.Cluster.Criterion)
	assert.Equal(Te, 2, c.Cluster.MinClusterSize)
	assert.Equal(Te, "rmsd", c.Cluster.Metric)
	assert.True(Te, c.Cluster.Filter)
	assert.Equal(Te, "3A4", c.Conformation.Isoform)
	assert.Equal(Te, "ranking", c.Signal.Convention)

	P, err := c.ClusterParams()
	require.NoError(Te, err)
	assert.Equal(Te, cluster.DockingParams(), P)
	m, err := c.Metric()
	require.NoError(Te, err)
	assert.Equal(Te, geom.PlainRMSD, m)
	conv, err := c.Convention()
	require.NoError(Te, err)
	assert.Equal(Te, signal.Ranking, conv)
	assert.Equal(Te, 0.75, c.SignalOptions().DockingCutoff())
}

const fileConfig = `
cluster:
  threshold: 2.5
  method: average
  criterion: distance
  metric: kabsch
signal:
  convention: energy
  docking_cutoff: 0.5
conformation:
  isoform: 2D6
log:
  level: debug
  format: json
`

func TestLoadFileEnvFlags(Te *testing.T) {
	path := writeConfig(Te, fileConfig)
	c, err := Load(path, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 2.5, c.Cluster.Threshold)
	assert.Equal(Te, "average", c.Cluster.Method)
	assert.Equal(Te, 2, c.Cluster.MinClusterSize, "keys not in the file keep their defaults")
	assert.Equal(Te, 0.5, c.Signal.DockingCutoff)
	assert.Equal(Te, "json", c.Log.Format)

	Te.Setenv("SOMCYP_CLUSTER_METHOD", "ward")
	Te.Setenv("SOMCYP_CONFORMATION_ISOFORM", "1A2")
	c, err = Load(path, nil)
	require.NoError(Te, err)
	assert.Equal(Te, "ward", c.Cluster.Method)
	assert.Equal(Te, "1A2", c.Conformation.Isoform)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("method", "single", "")
	fs.Int("min-cluster-size", 2, "")
	require.NoError(Te, fs.Parse([]string{"--method=complete", "--min-cluster-size=3"}))
	c, err = Load(path, fs)
	require.NoError(Te, err)
	assert.Equal(Te, "complete", c.Cluster.Method)
	assert.Equal(Te, 3, c.Cluster.MinClusterSize)
	P, err := c.ClusterParams()
	require.NoError(Te, err)
	assert.Equal(Te, cluster.Params{Threshold: 2.5, Method: cluster.Complete, Criterion: cluster.Distance, MinClusterCount: 3}, P)
}

func TestLoadInvalid(Te *testing.T) {
	for name, content := range map[string]string{
		"method":    "cluster:\n  method: upgma\n",
		"metric":    "cluster:\n  metric: tanimoto\n",
		"size":      "cluster:\n  min_cluster_size: 0\n",
		"maxclust":  "cluster:\n  threshold: 0.5\n",
		"cutoff":    "signal:\n  reactivity_cutoff: 1.5\n",
		"names":     "signal:\n  docking_name: Reactivity\n",
		"isoform":   "conformation:\n  isoform: \"\"\n",
		"log":       "log:\n  level: verbose\n",
		"compress":  "output:\n  compression: bz2\n",
		"plot":      "output:\n  plot: jpg\n",
		"negcpus":   "cpus: -1\n",
		"threshold": "cluster:\n  criterion: distance\n  threshold: -1\n",
	} {
		_, err := Load(writeConfig(Te, content), nil)
		assert.Error(Te, err, name)
	}
	_, err := Load(filepath.Join(Te.TempDir(), "missing.yaml"), nil)
	assert.Error(Te, err)
}

func TestValidateMessages(Te *testing.T) {
	c := Default()
	c.Cluster.Method = "upgma"
	err := c.Validate()
	require.Error(Te, err)
	assert.Contains(Te, err.Error(), "cluster.method must be one of")
	c = Default()
	c.Output.Plot = ""
	assert.NoError(Te, c.Validate(), "no plot is allowed")
}
