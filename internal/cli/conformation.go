/*
 * conformation.go, part of somcyp.
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
	"os"

	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cypconf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConformationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conformation LIGAND.mol2",
		Short: "Pick the CYP conformation to dock a ligand against",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e := getEnv(cmd)
			T, err := loadConfTable(e.cfg.Conformation.Table)
			if err != nil {
				return err
			}
			atoms, err := somcyp.Mol2FileAtoms(args[0])
			if err != nil {
				return err
			}
			ch, mw, nh, err := T.SelectForAtoms(e.cfg.Conformation.Isoform, atoms)
			if err != nil {
				return err
			}
			e.log.Info("conformation selected", zap.String("isoform", ch.Isoform), zap.String("structure", ch.Structure), zap.Float64("mw", mw), zap.Int("hydrophobic", nh))
			fmt.Fprintf(cmd.OutOrStdout(), "Use %s conformation %s, molecular weight: %.3f and hydrophobic atom count: %d\n", ch.Isoform, ch.Structure, mw, nh)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("isoform", "3A4", "CYP isoform")
	f.String("table", "", "YAML conformation table (default: the built-in one)")
	return cmd
}

func loadConfTable(name string) (cypconf.Table, error) {
	if name == "" {
		return cypconf.DefaultTable(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cypconf.LoadTable(f)
}
