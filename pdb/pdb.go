/*
 * pdb.go, part of goCG.
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

// Package pdb reads protein chains from PDB files, and writes coarse-grained
// beads in the same format.
package pdb

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/internal/zio"
)

// Options for reading PDB files.
type Options struct {
	altloc    byte
	hydrogens bool
	het       bool
}

// DefaultOptions returns the default options: only the first alternate location ('A')
// is read, hydrogens are dropped and HETATM records are kept only if they belong to amino acids.
func DefaultOptions() *Options {
	return &Options{altloc: 'A'}
}

// AltLoc returns the alternate location read, besides the blank one, and sets it, if given.
func (O *Options) AltLoc(a ...byte) byte {
	ret := O.altloc
	if len(a) > 0 {
		O.altloc = a[0]
	}
	return ret
}

// Hydrogens returns whether hydrogens are kept, and sets it, if given.
func (O *Options) Hydrogens(h ...bool) bool {
	ret := O.hydrogens
	if len(h) > 0 {
		O.hydrogens = h[0]
	}
	return ret
}

// Het returns whether all HETATM records are kept, and sets it, if given.
func (O *Options) Het(h ...bool) bool {
	ret := O.het
	if len(h) > 0 {
		O.het = h[0]
	}
	return ret
}

// Error is a problem in a given line of a PDB file.
type Error struct {
	Line int
	Msg  string
	err  error
}

func (E *Error) Error() string {
	return fmt.Sprintf("pdb: line %d: %s", E.Line, E.Msg)
}

func (E *Error) Unwrap() error { return E.err }

type resKey struct {
	seq   int
	icode byte
}

type reader struct {
	O      *Options
	chains []*cg.Chain
	cur    []*cg.Residue
	curID  string
	res    *cg.Residue
	key    resKey
	line   int
}

func (R *reader) closeChain() error {
	R.res = nil
	if len(R.cur) == 0 {
		return nil
	}
	c, err := cg.NewChain(R.curID, R.cur)
	R.cur = nil
	if err != nil {
		return &Error{Line: R.line, Msg: err.Error(), err: err}
	}
	R.chains = append(R.chains, c)
	return nil
}

// Read returns the protein chains in the first model of the PDB data in r. A new chain
// starts on each TER record and each change of chain ID, so several chains may share an ID.
// Waters, ions and ligands are left out (see Options.Het).
// Elements are read from columns 77-78 or, if missing, guessed from the atom names.
func Read(r io.Reader, opts ...*Options) ([]*cg.Chain, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	R := &reader{O: O}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		R.line++
		l := sc.Text()
		switch {
		case strings.HasPrefix(l, "END"): //END or ENDMDL
			if err := R.closeChain(); err != nil {
				return nil, err
			}
			return R.chains, nil
		case strings.HasPrefix(l, "TER"):
			if err := R.closeChain(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(l, "ATOM  "), strings.HasPrefix(l, "HETATM"):
			if err := R.atom(l); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if err := R.closeChain(); err != nil {
		return nil, err
	}
	return R.chains, nil
}

func (R *reader) atom(l string) error {
	if len(l) < 54 {
		return &Error{Line: R.line, Msg: "atom record too short"}
	}
	if alt := l[16]; alt != ' ' && alt != R.O.altloc {
		return nil
	}
	resname := strings.TrimSpace(l[17:20])
	het := strings.HasPrefix(l, "HETATM")
	if het && !R.O.het && !cg.IsKnownResidue(resname) {
		return nil
	}
	at := &cg.Atom{Name: strings.TrimSpace(l[12:16]), Het: het, Occupancy: 1}
	var err error
	at.Serial, err = strconv.Atoi(strings.TrimSpace(l[6:11]))
	if err != nil {
		//serials overflow in large files, and nothing depends on them.
		at.Serial = -1
	}
	seq, err := strconv.Atoi(strings.TrimSpace(l[22:26]))
	if err != nil {
		return &Error{Line: R.line, Msg: "bad residue number", err: err}
	}
	for j, f := range [][2]int{{30, 38}, {38, 46}, {46, 54}} {
		at.Coord[j], err = strconv.ParseFloat(strings.TrimSpace(l[f[0]:f[1]]), 64)
		if err != nil {
			return &Error{Line: R.line, Msg: "bad coordinates", err: err}
		}
	}
	if len(l) >= 60 {
		if o, err := strconv.ParseFloat(strings.TrimSpace(l[54:60]), 64); err == nil {
			at.Occupancy = o
		}
	}
	if len(l) >= 66 {
		if b, err := strconv.ParseFloat(strings.TrimSpace(l[60:66]), 64); err == nil {
			at.BFactor = b
		}
	}
	if len(l) >= 78 {
		at.Element = strings.TrimSpace(l[76:78])
		if len(at.Element) == 2 {
			at.Element = at.Element[:1] + strings.ToLower(at.Element[1:])
		}
	}
	if at.Element == "" {
		at.Element = cg.ElementFromName(at.Name, resname)
	}
	if !R.O.hydrogens && (at.Element == "H" || at.Element == "D") {
		return nil
	}
	chain := strings.TrimSpace(l[21:22])
	if chain != R.curID && len(R.cur) > 0 {
		if err := R.closeChain(); err != nil {
			return err
		}
	}
	R.curID = chain
	icode := byte(' ')
	if len(l) > 26 {
		icode = l[26]
	}
	key := resKey{seq, icode}
	if R.res == nil || key != R.key {
		R.res = cg.NewResidue(resname, seq)
		R.res.ICode = icode
		R.key = key
		R.cur = append(R.cur, R.res)
	}
	//only the first of several alternate locations
	if R.res.Atom(at.Name) != nil {
		return nil
	}
	R.res.AddAtom(at)
	return nil
}

// ReadFile reads the file name, which may be compressed with gzip (.gz) or zstd (.zst).
func ReadFile(name string, opts ...*Options) ([]*cg.Chain, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, opts...)
}

// WriteBeads writes the beads of T as PDB ATOM records, one chain after another, with
// TER records between chains. Coordinates are in Angstrom.
func WriteBeads(w io.Writer, T *cg.Topology, title string) error {
	bw := bufio.NewWriter(w)
	if title != "" {
		fmt.Fprintf(bw, "TITLE     %s\n", title)
	}
	for i, b := range T.Beads {
		if i > 0 && !b.SameChain(T.Beads[i-1]) {
			fmt.Fprintf(bw, "TER\n")
		}
		ch := b.Chain
		if ch == "" {
			ch = " "
		}
		c := b.Coord
		fmt.Fprintf(bw, "%-6s%5d %4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s  \n",
			"ATOM", (i+1)%100000, b.Name, b.ResName, ch[:1], b.ResSeq%10000, c[0], c[1], c[2], 1.0, 0.0, "")
	}
	fmt.Fprintf(bw, "TER\nEND\n")
	return bw.Flush()
}
