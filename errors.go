/*
 * errors.go, part of goCG.
 *
 * Copyright 2026 The goCG authors
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

package cg

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the class of a goCG error.
type ErrorKind int

const (
	UnknownResidueType ErrorKind = iota + 1
	UnmappedResidue
	MissingAtom
	LabelLengthMismatch
	IndexRemapError
	InvalidForceFieldConfig
)

// Sentinels, one per ErrorKind, so callers can use errors.Is.
var (
	ErrUnknownResidueType      = errors.New("unknown residue type")
	ErrUnmappedResidue         = errors.New("unmapped residue")
	ErrMissingAtom             = errors.New("missing atom")
	ErrLabelLengthMismatch     = errors.New("label length mismatch")
	ErrIndexRemap              = errors.New("index remap error")
	ErrInvalidForceFieldConfig = errors.New("invalid force field configuration")
)

func (K ErrorKind) String() string {
	if err := K.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(K))
}

func (K ErrorKind) sentinel() error {
	switch K {
	case UnknownResidueType:
		return ErrUnknownResidueType
	case UnmappedResidue:
		return ErrUnmappedResidue
	case MissingAtom:
		return ErrMissingAtom
	case LabelLengthMismatch:
		return ErrLabelLengthMismatch
	case IndexRemapError:
		return ErrIndexRemap
	case InvalidForceFieldConfig:
		return ErrInvalidForceFieldConfig
	}
	return nil
}

// Critical returns true for the kinds that abort a whole run instead of
// a single chain.
func (K ErrorKind) Critical() bool {
	switch K {
	case LabelLengthMismatch, IndexRemapError, InvalidForceFieldConfig:
		return true
	}
	return false
}

// Error is the error type returned by goCG packages. Besides the kind and message,
// it can carry the chain and residue where the problem was found, and a list
// of "decorations": the functions the error went through, plus any extra information
// they added, in the "FunctionName: Extra info" format.
type Error struct {
	Kind    ErrorKind
	Msg     string
	Chain   string
	Residue string
	deco    []string
}

// NewError returns a new *Error of the given kind. chain and residue can be empty.
func NewError(kind ErrorKind, chain, residue, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Chain: chain, Residue: residue}
}

func (E *Error) Error() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "goCG: %s", E.Kind)
	if E.Chain != "" {
		fmt.Fprintf(b, ": chain %s", E.Chain)
	}
	if E.Residue != "" {
		fmt.Fprintf(b, ": residue %s", E.Residue)
	}
	if E.Msg != "" {
		fmt.Fprintf(b, ": %s", E.Msg)
	}
	if len(E.deco) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(E.deco, " <- "))
	}
	return b.String()
}

// Decorate adds dec to the decoration slice, unless dec is empty, and returns the
// current slice.
func (E *Error) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

// Unwrap returns the sentinel for the error's kind.
func (E *Error) Unwrap() error { return E.Kind.sentinel() }

// Critical returns true if the error should abort the whole run.
func (E *Error) Critical() bool { return E.Kind.Critical() }

// Decorate adds caller to err's decorations, if err is (or wraps) a *Error.
// It returns err unchanged, so it can be used in return statements.
func Decorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// KindOf returns the kind of err, and whether err is (or wraps) a *Error at all.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
