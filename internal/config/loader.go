/*
 * loader.go, part of somcyp.
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
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//EnvPrefix is the prefix of the environment variables read. The key
//cluster.min_cluster_size is set by SOMCYP_CLUSTER_MIN_CLUSTER_SIZE.
const EnvPrefix = "SOMCYP"

//FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"threshold":         "cluster.threshold",
	"method":            "cluster.method",
	"criterion":         "cluster.criterion",
	"min-cluster-size":  "cluster.min_cluster_size",
	"metric":            "cluster.metric",
	"filter":            "cluster.filter",
	"convention":        "signal.convention",
	"sentinel":          "signal.sentinel",
	"reactivity-cutoff": "signal.reactivity_cutoff",
	"docking-cutoff":    "signal.docking_cutoff",
	"auxiliary-cutoff":  "signal.auxiliary_cutoff",
	"isoform":           "conformation.isoform",
	"table":             "conformation.table",
	"output":            "output.dir",
	"compression":       "output.compression",
	"plot":              "output.plot",
	"log-level":         "log.level",
	"log-format":        "log.format",
	"cpus":              "cpus",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("cluster.threshold", d.Cluster.Threshold)
	v.SetDefault("cluster.method", d.Cluster.Method)
	v.SetDefault("cluster.criterion", d.Cluster.Criterion)
	v.SetDefault("cluster.min_cluster_size", d.Cluster.MinClusterSize)
	v.SetDefault("cluster.metric", d.Cluster.Metric)
	v.SetDefault("cluster.filter", d.Cluster.Filter)
	v.SetDefault("signal.convention", d.Signal.Convention)
	v.SetDefault("signal.sentinel", d.Signal.Sentinel)
	v.SetDefault("signal.reactivity_name", d.Signal.ReactivityName)
	v.SetDefault("signal.docking_name", d.Signal.DockingName)
	v.SetDefault("signal.reactivity_cutoff", d.Signal.ReactivityCutoff)
	v.SetDefault("signal.docking_cutoff", d.Signal.DockingCutoff)
	v.SetDefault("signal.auxiliary_cutoff", d.Signal.AuxiliaryCutoff)
	v.SetDefault("conformation.isoform", d.Conformation.Isoform)
	v.SetDefault("conformation.table", d.Conformation.Table)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.compression", d.Output.Compression)
	v.SetDefault("output.plot", d.Output.Plot)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("cpus", d.Cpus)
}

//Load builds a Config from the defaults, the YAML file at path (if path is not empty),
//the SOMCYP_ environment variables and the flags in fs named in FlagKeys (if fs is not nil).
//Later sources override earlier ones. The result is validated.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := newViper()
	setDefaults(v, Default())
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	if fs != nil {
		for name, key := range FlagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: failed to bind flag %q: %w", name, err)
			}
		}
	}
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}
