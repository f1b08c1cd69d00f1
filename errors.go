/*
 * errors.go, part of somcyp.
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

package somcyp

import (
	"errors"
	"fmt"
	"strings"
)

//Error kinds. Every error returned by the somcyp packages wraps exactly one
//of these, so callers can use errors.Is to tell them apart.
var (
	//Geometry inputs inconsistent. Fatal to a single metric call.
	ErrShapeMismatch = errors.New("shape mismatch")
	//Clustering preconditions violated.
	ErrInvalidPopulation = errors.New("invalid population")
	ErrUnsupportedMetric = errors.New("unsupported metric")
	//Unknown linkage method or flattening criterion, or a threshold the
	//criterion can't use.
	ErrUnsupportedClusteringOption = errors.New("unsupported clustering option")
	//An aggregation input references an atom outside the canonical atom index.
	ErrAtomKeyMismatch    = errors.New("atom key mismatch")
	ErrUnsupportedIsoform = errors.New("unsupported isoform")

	ErrUnsupportedConvention = errors.New("unsupported score convention")
	ErrInvalidPoseCount      = errors.New("invalid pose count")
	ErrSignalRange           = errors.New("signal out of range")
	ErrDuplicateColumn       = errors.New("duplicate column")
	ErrNoConformation        = errors.New("no matching conformation")
	ErrMol2                  = errors.New("malformed mol2")
)

//Error is the error type used in all somcyp packages. Besides the kind (one of the Err* values
//above) and a message, it carries a "decoration": the list of functions the error went through
//on its way up, each optionally followed by some extra information, as "FunctionName: Extra info".
type Error struct {
	kind    error
	message string
	deco    []string
}

//NewError returns an error of the given kind, with the message msg, created in the function caller.
func NewError(kind error, caller, msg string) *Error {
	return &Error{kind: kind, message: msg, deco: []string{caller}}
}

//Errorf is like NewError, with a fmt-style message.
func Errorf(kind error, caller, format string, args ...interface{}) *Error {
	return NewError(kind, caller, fmt.Sprintf(format, args...))
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	return fmt.Sprintf("somcyp: %s: %s", err.kind, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. An empty dec just returns the current decoration.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Trail returns the decoration as a single string, most recent caller first.
func (err *Error) Trail() string {
	r := make([]string, len(err.deco))
	for i, v := range err.deco {
		r[len(r)-1-i] = v
	}
	return strings.Join(r, " <- ")
}

//Kind returns the sentinel error this error wraps.
func (err *Error) Kind() error { return err.kind }

//Unwrap allows errors.Is(err, ErrShapeMismatch) and friends.
func (err *Error) Unwrap() error { return err.kind }

//ErrDecorate decorates err with the caller's name if it is a *Error, and returns it.
//Other errors are returned untouched.
func ErrDecorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
