/*
 * export.go, part of somcyp.
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

//Package export writes signal tables and cluster assignments as CSV or JSON,
//to plain or compressed files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	somcyp "github.com/md-studio/somcyp"
	"github.com/md-studio/somcyp/cluster"
	"github.com/md-studio/somcyp/signal"
)

//Missing is written in place of values that are not available.
const Missing = "null"

type file struct {
	io.WriteCloser
	f *os.File
}

func (F *file) Close() error {
	err := F.WriteCloser.Close()
	if err2 := F.f.Close(); err == nil {
		err = err2
	}
	return err
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

//Create creates the file name for writing. Files ending in .zst are compressed with
//z-standard, files ending in .gz, with gzip. Any other file is written as is.
//Closing the returned writer flushes the compressor and closes the file.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	var w io.WriteCloser
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case ".gz":
		w, err = gzip.NewWriterLevel(f, gzip.DefaultCompression)
	default:
		w = nopCloser{f}
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return &file{WriteCloser: w, f: f}, nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return Missing
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

//WriteTableCSV writes T to w, one row per atom. Columns with categorical labels get an
//extra "<name>_label" column. If poses is true, there is also one 0/1 column per docking
//pose, named "pose:<name>", telling whether the atom had a contact in that pose.
func WriteTableCSV(w io.Writer, T *signal.Table, poses bool) error {
	cw := csv.NewWriter(w)
	names := T.Columns()
	cols := make([]signal.Column, len(names))
	header := []string{"atom"}
	for i, n := range names {
		cols[i], _ = T.Column(n)
		header = append(header, n)
		if cols[i].Labels != nil {
			header = append(header, n+"_label")
		}
	}
	var plist []string
	if poses {
		plist = T.Poses()
		for _, p := range plist {
			header = append(header, "pose:"+p)
		}
	}
	if err := cw.Write(header); err != nil {
		return somcyp.ErrDecorate(err, "WriteTableCSV")
	}
	for i, a := range T.Atoms() {
		row := []string{strconv.Itoa(a)}
		for _, c := range cols {
			row = append(row, formatValue(c.Values[i]))
			if c.Labels != nil {
				row = append(row, c.Labels[i])
			}
		}
		for _, p := range plist {
			if T.Contact(p, a) {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		if err := cw.Write(row); err != nil {
			return somcyp.ErrDecorate(err, "WriteTableCSV")
		}
	}
	cw.Flush()
	return cw.Error()
}

//WriteAssignmentCSV writes A to w as pose,cluster,medoid rows, in population order.
//Poses in dropped clusters have cluster 0.
func WriteAssignmentCSV(w io.Writer, A *cluster.Assignment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"pose", "cluster", "medoid"}); err != nil {
		return err
	}
	for i, l := range A.Labels() {
		m := A.At(i)
		if err := cw.Write([]string{l, strconv.Itoa(m.Cluster), strconv.FormatBool(m.Medoid)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

//AtomRecord is the JSON form of one row of a signal table.
type AtomRecord struct {
	Atom   int                 `json:"atom"`
	Values map[string]*float64 `json:"values"`
	Labels map[string]string   `json:"labels,omitempty"`
	Poses  []string            `json:"poses,omitempty"`
}

//ClusterRecord is the JSON form of one retained cluster.
type ClusterRecord struct {
	ID      int      `json:"id"`
	Medoid  string   `json:"medoid"`
	Members []string `json:"members"`
}

//AssignmentRecord is the JSON form of a cluster assignment.
type AssignmentRecord struct {
	Params   string                    `json:"params"`
	Coverage float64                   `json:"coverage"`
	Clusters []ClusterRecord           `json:"clusters"`
	Dropped  []string                  `json:"dropped"`
	Members  map[string]cluster.Member `json:"members"`
}

//Report is what WriteJSON writes. Either part may be absent.
type Report struct {
	Columns    []string          `json:"columns,omitempty"`
	Highlight  map[string][]int  `json:"highlight,omitempty"`
	Atoms      []AtomRecord      `json:"atoms,omitempty"`
	Assignment *AssignmentRecord `json:"assignment,omitempty"`
}

//NewReport builds the report for T and A, either of which can be nil.
func NewReport(T *signal.Table, A *cluster.Assignment) *Report {
	R := new(Report)
	if T != nil {
		R.Columns = T.Columns()
		R.Highlight = make(map[string][]int, len(R.Columns))
		for _, n := range R.Columns {
			R.Highlight[n] = T.Highlight(n)
		}
		poses := T.Poses()
		for _, a := range T.Atoms() {
			rec := AtomRecord{Atom: a, Values: make(map[string]*float64, len(R.Columns))}
			for _, n := range R.Columns {
				var p *float64
				if v, _ := T.Value(a, n); !math.IsNaN(v) {
					p = &v
				}
				rec.Values[n] = p
				if l := T.Label(a, n); l != "" {
					if rec.Labels == nil {
						rec.Labels = make(map[string]string)
					}
					rec.Labels[n] = l
				}
			}
			for _, p := range poses {
				if T.Contact(p, a) {
					rec.Poses = append(rec.Poses, p)
				}
			}
			R.Atoms = append(R.Atoms, rec)
		}
	}
	if A != nil {
		ar := &AssignmentRecord{Params: A.Params().String(), Coverage: A.Coverage(), Dropped: A.Dropped(), Members: make(map[string]cluster.Member, A.Len())}
		if ar.Dropped == nil {
			ar.Dropped = []string{}
		}
		medoids := A.Medoids()
		ids := make([]int, 0, len(medoids))
		for id := range medoids {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			ar.Clusters = append(ar.Clusters, ClusterRecord{ID: id, Medoid: medoids[id], Members: A.Members(id)})
		}
		for i, l := range A.Labels() {
			ar.Members[l] = A.At(i)
		}
		R.Assignment = ar
	}
	return R
}

//WriteJSON writes the report for T and A to w, indented. Either can be nil.
//Missing values are written as null.
func WriteJSON(w io.Writer, T *signal.Table, A *cluster.Assignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewReport(T, A))
}
