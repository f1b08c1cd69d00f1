/*
 * config.go, part of somcyp.
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

//Package config loads the settings of the somcyp command from a YAML file,
//SOMCYP_ environment variables and command line flags, in increasing order of priority.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/geom"
	"github.com/md-studio/somcyp/signal"
)

//Config is the complete configuration of a run.
type Config struct {
	Cluster      ClusterConfig      `mapstructure:"cluster"`
	Signal       SignalConfig       `mapstructure:"signal"`
	Conformation ConformationConfig `mapstructure:"conformation"`
	Output       OutputConfig       `mapstructure:"output"`
	Log          LogConfig          `mapstructure:"log"`
	Cpus         int                `mapstructure:"cpus" validate:"gte=0"`
}

//ClusterConfig holds the settings for the clustering of docking poses.
type ClusterConfig struct {
	Threshold      float64 `mapstructure:"threshold" validate:"gte=0"`
	Method         string  `mapstructure:"method" validate:"oneof=single complete average weighted centroid median ward"`
	Criterion      string  `mapstructure:"criterion" validate:"oneof=maxclust distance inconsistent"`
	MinClusterSize int     `mapstructure:"min_cluster_size" validate:"gte=1"`
	Metric         string  `mapstructure:"metric" validate:"oneof=rmsd kabsch kabsch_rmsd"`
	Filter         bool    `mapstructure:"filter"`
}

//SignalConfig holds the settings for combining the per-atom signals.
type SignalConfig struct {
	Convention       string  `mapstructure:"convention" validate:"oneof=ranking energy"`
	Sentinel         float64 `mapstructure:"sentinel" validate:"gt=0"`
	ReactivityName   string  `mapstructure:"reactivity_name" validate:"required"`
	DockingName      string  `mapstructure:"docking_name" validate:"required,nefield=ReactivityName"`
	ReactivityCutoff float64 `mapstructure:"reactivity_cutoff" validate:"gte=0,lte=1"`
	DockingCutoff    float64 `mapstructure:"docking_cutoff" validate:"gte=0,lte=1"`
	AuxiliaryCutoff  float64 `mapstructure:"auxiliary_cutoff" validate:"gte=0,lte=1"`
}

//ConformationConfig holds the settings for picking the CYP conformation.
//An empty Table means the built-in decision table.
type ConformationConfig struct {
	Isoform string `mapstructure:"isoform" validate:"required"`
	Table   string `mapstructure:"table"`
}

//OutputConfig tells where and how results are written.
type OutputConfig struct {
	Dir         string `mapstructure:"dir" validate:"required"`
	Compression string `mapstructure:"compression" validate:"oneof=none gz zst"`
	Plot        string `mapstructure:"plot" validate:"omitempty,oneof=png svg pdf"`
}

//LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

//Default returns the configuration used when nothing else is given.
//The clustering defaults are those used for docking poses.
func Default() *Config {
	dp := cluster.DockingParams()
	so := signal.DefaultOptions()
	return &Config{
		Cluster: ClusterConfig{
			Threshold:      dp.Threshold,
			Method:         dp.Method.String(),
			Criterion:      dp.Criterion.String(),
			MinClusterSize: dp.MinClusterCount,
			Metric:         geom.PlainRMSD.String(),
			Filter:         true,
		},
		Signal: SignalConfig{
			Convention:       signal.Ranking.String(),
			Sentinel:         so.Sentinel(),
			ReactivityName:   so.ReactivityName(),
			DockingName:      so.DockingName(),
			ReactivityCutoff: so.ReactivityCutoff(),
			DockingCutoff:    so.DockingCutoff(),
			AuxiliaryCutoff:  0.5,
		},
		Conformation: ConformationConfig{Isoform: "3A4"},
		Output:       OutputConfig{Dir: ".", Compression: "none", Plot: "png"},
		Log:          LogConfig{Level: "info", Format: "console"},
		Cpus:         runtime.NumCPU(),
	}
}

var validate = validator.New()

//Validate checks every field of c, and that the clustering settings make sense together.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Cluster.Criterion == "maxclust" && c.Cluster.Threshold < 1 {
		return fmt.Errorf("cluster.threshold must be at least 1 for the maxclust criterion, got %g", c.Cluster.Threshold)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(strings.TrimPrefix(e.Namespace(), "Config."))
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s, got %v", field, e.Param(), e.Value()))
		case "nefield":
			msgs = append(msgs, fmt.Sprintf("%s must differ from %s", field, strings.ToLower(e.Param())))
		default:
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s, got %v", field, e.Tag(), e.Param(), e.Value()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

//ClusterParams returns the clustering parameters in c.
func (c *Config) ClusterParams() (cluster.Params, error) {
	m, err := cluster.ParseMethod(c.Cluster.Method)
	if err != nil {
		return cluster.Params{}, err
	}
	cr, err := cluster.ParseCriterion(c.Cluster.Criterion)
	if err != nil {
		return cluster.Params{}, err
	}
	return cluster.Params{Threshold: c.Cluster.Threshold, Method: m, Criterion: cr, MinClusterCount: c.Cluster.MinClusterSize}, nil
}

//Metric returns the distance metric in c.
func (c *Config) Metric() (geom.Metric, error) {
	return geom.ParseMetric(c.Cluster.Metric)
}

//Convention returns the reactivity score convention in c.
func (c *Config) Convention() (signal.Convention, error) {
	return signal.ParseConvention(c.Signal.Convention)
}

//SignalOptions returns the aggregator options in c.
func (c *Config) SignalOptions() *signal.Options {
	O := signal.DefaultOptions()
	O.ReactivityName(c.Signal.ReactivityName)
	O.DockingName(c.Signal.DockingName)
	O.ReactivityCutoff(c.Signal.ReactivityCutoff)
	O.DockingCutoff(c.Signal.DockingCutoff)
	O.Sentinel(c.Signal.Sentinel)
	return O
}
