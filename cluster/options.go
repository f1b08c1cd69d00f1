/*
 * options.go, part of somcyp.
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

package cluster

import (
	"runtime"

	"go.uber.org/zap"
)

//Options contains the options for the NewDistanceMatrix and Cluster functions
type Options struct {
	cpus   int
	logger *zap.Logger
}

//DefaultOptions return options that use all logical CPUs and log nothing.
func DefaultOptions() *Options {
	r := new(Options)
	r.cpus = runtime.NumCPU()
	r.logger = zap.NewNop()
	return r
}

//Returns the number of gorutines to be used,
//and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

//Returns the logger in use, and sets it to a new one, if given.
func (O *Options) Logger(l ...*zap.Logger) *zap.Logger {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return O.logger
}

//options returns the first non-nil element of o, or the default options.
func options(o []*Options) *Options {
	if len(o) > 0 && o[0] != nil {
		if o[0].cpus <= 0 {
			o[0].cpus = runtime.NumCPU()
		}
		if o[0].logger == nil {
			o[0].logger = zap.NewNop()
		}
		return o[0]
	}
	return DefaultOptions()
}
