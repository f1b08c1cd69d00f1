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

package signal

import "go.uber.org/zap"

//Options contains the options for an Aggregator.
type Options struct {
	logger           *zap.Logger
	reactivityName   string
	dockingName      string
	reactivityCutoff float64
	dockingCutoff    float64
	sentinel         float64
}

//DefaultOptions returns the options used by default: columns named "Reactivity" and "Docking",
//both highlighted from 0.75, and energies of 999 or more taken as missing.
func DefaultOptions() *Options {
	return &Options{
		logger:           zap.NewNop(),
		reactivityName:   "Reactivity",
		dockingName:      "Docking",
		reactivityCutoff: 0.75,
		dockingCutoff:    0.75,
		sentinel:         999,
	}
}

//Returns the logger in use, and sets it to a new one, if given.
func (O *Options) Logger(l ...*zap.Logger) *zap.Logger {
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return O.logger
}

//Returns the name of the reactivity column, and sets it to a new value, if given.
func (O *Options) ReactivityName(name ...string) string {
	if len(name) > 0 && name[0] != "" {
		O.reactivityName = name[0]
	}
	return O.reactivityName
}

//Returns the name of the docking column, and sets it to a new value, if given.
func (O *Options) DockingName(name ...string) string {
	if len(name) > 0 && name[0] != "" {
		O.dockingName = name[0]
	}
	return O.dockingName
}

//Returns the highlight cutoff of the reactivity column, and sets it to a new value, if given.
func (O *Options) ReactivityCutoff(c ...float64) float64 {
	if len(c) > 0 {
		O.reactivityCutoff = c[0]
	}
	return O.reactivityCutoff
}

//Returns the highlight cutoff of the docking column, and sets it to a new value, if given.
func (O *Options) DockingCutoff(c ...float64) float64 {
	if len(c) > 0 {
		O.dockingCutoff = c[0]
	}
	return O.dockingCutoff
}

//Returns the energy from which reactivity scores are taken as missing, and sets
//it to a new value, if given. Only used with the Energy convention.
func (O *Options) Sentinel(s ...float64) float64 {
	if len(s) > 0 {
		O.sentinel = s[0]
	}
	return O.sentinel
}

func options(o []*Options) *Options {
	d := DefaultOptions()
	if len(o) == 0 || o[0] == nil {
		return d
	}
	r := *o[0]
	if r.logger == nil {
		r.logger = d.logger
	}
	if r.reactivityName == "" {
		r.reactivityName = d.reactivityName
	}
	if r.dockingName == "" {
		r.dockingName = d.dockingName
	}
	if r.sentinel == 0 {
		r.sentinel = d.sentinel
	}
	return &r
}
