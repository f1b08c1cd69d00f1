/*
 * metric.go, part of somcyp.
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

package geom

import (
	"strconv"
	"strings"

	somcyp "github.com/md-studio/somcyp"
	v3 "github.com/md-studio/somcyp/v3"
)

//Func is a structural distance between two coordinate sets.
type Func func(test, templa *v3.Matrix) (float64, error)

//Metric identifies one of the supported structural distances.
type Metric int

const (
	PlainRMSD Metric = iota //RMSD without superposition
	Kabsch                  //RMSD after optimal superposition
)

var metricFuncs = [...]Func{
	PlainRMSD: RMSD,
	Kabsch:    KabschRMSD,
}

var metricNames = [...]string{
	PlainRMSD: "rmsd",
	Kabsch:    "kabsch",
}

//Valid returns true if m is one of the supported metrics.
func (m Metric) Valid() bool {
	return m >= 0 && int(m) < len(metricFuncs)
}

func (m Metric) String() string {
	if !m.Valid() {
		return "Metric(" + strconv.Itoa(int(m)) + ")"
	}
	return metricNames[m]
}

//Func returns the function that computes the metric.
func (m Metric) Func() (Func, error) {
	if !m.Valid() {
		return nil, somcyp.Errorf(somcyp.ErrUnsupportedMetric, "Metric.Func", "no metric with id %d", int(m))
	}
	return metricFuncs[m], nil
}

//Distance computes the metric m between test and templa.
func (m Metric) Distance(test, templa *v3.Matrix) (float64, error) {
	f, err := m.Func()
	if err != nil {
		return 0, err
	}
	return f(test, templa)
}

//ParseMetric returns the metric with the given name. "rmsd", "kabsch" and
//"kabsch_rmsd" are understood, regardless of case.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rmsd":
		return PlainRMSD, nil
	case "kabsch", "kabsch_rmsd":
		return Kabsch, nil
	}
	return -1, somcyp.Errorf(somcyp.ErrUnsupportedMetric, "ParseMetric", "unknown metric %q", name)
}
