/*
 * root.go, part of somcyp.
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

//Package cli implements the somcyp command.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/md-studio/somcyp/internal/config"
	"github.com/md-studio/somcyp/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//Set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type envKey struct{}

//env is what every subcommand gets from the root command.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

func getEnv(cmd *cobra.Command) *env {
	if e, ok := cmd.Context().Value(envKey{}).(*env); ok {
		return e
	}
	return &env{cfg: config.Default(), log: zap.NewNop()}
}

//NewRootCommand returns the somcyp command with all its subcommands.
func NewRootCommand() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "somcyp",
		Short: "Site of metabolism prediction for Cytochrome P450 substrates",
		Long: "somcyp clusters docking poses of a ligand in a CYP binding site, picks the CYP\n" +
			"conformation to dock against, and combines reactivity and docking evidence\n" +
			"into a per-atom site of metabolism prediction.",
		Version:       fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			l, err := logging.New(c.Log)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, envKey{}, &env{cfg: c, log: l}))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = getEnv(cmd).log.Sync()
		},
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfgPath, "config", "c", "", "YAML configuration file")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.Int("cpus", 0, "goroutines used for the distance matrix (0: all CPUs)")
	pf.StringP("output", "o", ".", "directory where run directories are created")
	pf.String("compression", "none", "compression of the output tables (none, gz, zst)")
	cmd.AddCommand(newClusterCmd(), newCombineCmd(), newConformationCmd(), newVersionCmd())
	return cmd
}

//clusterFlags adds the clustering flags to cmd.
func clusterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("threshold", 8, "flattening threshold (maximum number of clusters for maxclust)")
	f.String("method", "single", "linkage method (single, complete, average, weighted, centroid, median, ward)")
	f.String("criterion", "maxclust", "flattening criterion (maxclust, distance, inconsistent)")
	f.Int("min-cluster-size", 2, "clusters with fewer poses are dropped")
	f.String("metric", "rmsd", "distance between poses (rmsd, kabsch)")
	f.String("plot", "png", "dendrogram format (png, svg, pdf), empty for none")
}

//newRunDir creates a uniquely named directory for the results of one run, under base.
func newRunDir(base, prefix string) (string, error) {
	dir := filepath.Join(base, prefix+"-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

//outName returns the path of a table called name in dir, with the extension
//of the configured compression.
func outName(c *config.Config, dir, name string) string {
	p := filepath.Join(dir, name)
	switch c.Output.Compression {
	case "gz":
		p += ".gz"
	case "zst":
		p += ".zst"
	}
	return p
}

//Execute runs the somcyp command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "somcyp:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "somcyp %s (commit: %s)\n", Version, GitCommit)
			return nil
		},
	}
}
