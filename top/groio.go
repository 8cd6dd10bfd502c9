/*
 * groio.go, part of goCG.
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

package top

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/elnet"
)

var sf = fmt.Sprintf

var fi = strings.Fields

// Define under which the elastic network is written in itp files.
const RubberBands = "RUBBER_BANDS"

type cond struct {
	reading bool
}

func newCond() *cond {
	c := new(cond)
	c.reading = true
	return c
}

// a function to read conditional parts of gromacs topologies
// depending on the defined flags that should be in 'defines'
func (c *cond) read(line string, defines []string) bool {
	if strings.HasPrefix(line, "#ifdef") || strings.HasPrefix(line, "#ifndef") {
		f := fi(line)
		defined := len(f) > 1 && slices.Contains(defines, f[1])
		c.reading = defined == (f[0] == "#ifdef")
		return false
	}
	if strings.HasPrefix(line, "#else") {
		c.reading = !c.reading
		return false
	}
	if strings.HasPrefix(line, "#endif") {
		c.reading = true
		return false
	}
	return c.reading
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\n\t\r ")
}

func parseints(s ...string) ([]int, error) {
	r := make([]int, 0, len(s))
	for _, v := range s {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

func parsefloats(s ...string) ([]float64, error) {
	r := make([]float64, 0, len(s))
	for _, v := range s {
		i, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, i)
	}
	return r, nil
}

type groer interface {
	ToGro() (string, error)
}

func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}

// groTerm writes a cg.Term as a line of a Gromacs topology.
type groTerm struct {
	*cg.Term
}

func (T groTerm) writeBeads() string {
	r := make([]string, 0, len(T.Beads))
	for _, v := range T.Beads {
		r = append(r, sf("%5d", v+1))
	}
	return strings.Join(r, " ")
}

// Writes the term to a string in Gromacs top format.
func (T groTerm) ToGro() (string, error) {
	if len(T.Beads) != T.Kind.Arity() {
		return "", fmt.Errorf("%s term with %d beads", T.Kind, len(T.Beads))
	}
	ret := make([]string, 0, 8)
	ret = append(ret, T.writeBeads())
	ret = append(ret, sf("%2d", T.Func))
	ret = append(ret, sf("%8.5f", T.Eq))
	if !T.Constraint {
		ret = append(ret, sf("%10.4f", T.K))
	}
	if T.Kind == cg.Dihedral && T.Mult > 0 {
		ret = append(ret, sf("%1d", T.Mult))
	}
	if T.Rule != "" {
		ret = append(ret, "; "+T.Rule)
	}
	ret = append(ret, "\n")
	return strings.Join(ret, " "), nil
}

type groAtom struct {
	*cg.Bead
	resnr int
}

func (A groAtom) ToGro() (string, error) {
	return sf("%5d %5s %5d %5s %5s %5d %8.4f %8.4f ; %c\n", A.Index+1, A.Type, A.resnr, A.ResName, A.Name, A.Index+1, A.Charge, A.Mass, A.SS.Code()), nil
}

// resNumbers returns, for each bead, a 1-based residue number that increases
// along the topology, also across chains.
func resNumbers(T *cg.Topology) []int {
	ret := make([]int, len(T.Beads))
	n := 0
	for i, b := range T.Beads {
		if i == 0 || !b.SameChain(T.Beads[i-1]) || b.ResIndex != T.Beads[i-1].ResIndex {
			n++
		}
		ret[i] = n
	}
	return ret
}

// Sequence returns the one-letter sequence of the residues in T.
func Sequence(T *cg.Topology) string {
	var b strings.Builder
	for i, v := range T.Beads {
		if i == 0 || !v.SameChain(T.Beads[i-1]) || v.ResIndex != T.Beads[i-1].ResIndex {
			b.WriteByte(cg.OneLetter(v.ResName))
		}
	}
	return b.String()
}

// WriteSS writes labels as a comment block of a Gromacs topology,
// wrapped at 60 residues per line.
func WriteSS(w io.StringWriter, labels cg.Labels) error {
	return writeWrapped(w, "Secondary Structure", labels.String())
}

func writeWrapped(w io.StringWriter, title, s string) error {
	if _, err := w.WriteString(sf("; %s:\n", title)); err != nil {
		return err
	}
	for i := 0; i < len(s); i += 60 {
		end := min(i+60, len(s))
		if _, err := w.WriteString("; " + s[i:end] + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteITP writes T as a Gromacs molecule type called name. The elastic network,
// if any, is written as bonds of function type 6, only read when RUBBER_BANDS is defined.
func WriteITP(w io.Writer, T *cg.Topology, name, ffname string) (err error) {
	if err := T.Check(); err != nil {
		return cg.Decorate(err, "WriteITP")
	}
	bw := bufio.NewWriter(w)
	defer func() {
		if e := bw.Flush(); err == nil {
			err = e
		}
	}()
	var bonds, constraints, angles, dihedrals, impropers, elastic []groTerm
	for _, t := range T.Terms {
		g := groTerm{t}
		switch {
		case t.Kind == cg.Elastic:
			elastic = append(elastic, g)
		case t.Kind == cg.Bond && t.Constraint:
			constraints = append(constraints, g)
		case t.Kind == cg.Bond:
			bonds = append(bonds, g)
		case t.Kind == cg.Angle:
			angles = append(angles, g)
		case t.Kind == cg.Dihedral:
			dihedrals = append(dihedrals, g)
		case t.Kind == cg.Improper:
			impropers = append(impropers, g)
		}
	}
	ws := func(s string) {
		if err == nil {
			_, err = bw.WriteString(s)
		}
	}
	ws(sf("; MARTINI (%s) Coarse Grained topology file for \"%s\"\n", ffname, name))
	ws("; Created by goCG\n;\n")
	if err != nil {
		return err
	}
	if err = writeWrapped(bw, "Sequence", Sequence(T)); err != nil {
		return err
	}
	if err = WriteSS(bw, T.Labels); err != nil {
		return err
	}
	ws("\n[ moleculetype ]\n; Name         Exclusions\n")
	ws(sf("%-15s %d\n", name, 1))
	ws("\n[ atoms ]\n")
	if err != nil {
		return err
	}
	nums := resNumbers(T)
	atoms := make([]groAtom, len(T.Beads))
	for i, b := range T.Beads {
		atoms[i] = groAtom{b, nums[i]}
	}
	if err = printGro(bw, atoms); err != nil {
		return err
	}
	sections := []struct {
		header string
		terms  []groTerm
	}{
		{"bonds", bonds},
		{"constraints", constraints},
		{"angles", angles},
		{"dihedrals", dihedrals},
		{"dihedrals", impropers},
	}
	for _, s := range sections {
		if len(s.terms) == 0 {
			continue
		}
		ws(sf("\n[ %s ]\n", s.header))
		if err != nil {
			return err
		}
		if err = printGro(bw, s.terms); err != nil {
			return err
		}
	}
	if len(elastic) > 0 {
		ws(sf("\n#ifdef %s\n; Rubber band\n[ bonds ]\n", RubberBands))
		if err != nil {
			return err
		}
		if err = printGro(bw, elastic); err != nil {
			return err
		}
		ws("#endif\n")
	}
	return err
}

// WriteTop writes a system topology including the force field file ffinclude and the
// molecule itp files, each present once, and the given system title.
func WriteTop(w io.Writer, title, ffinclude string, molecules []string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(sf("#include \"%s\"\n\n", ffinclude))
	for _, m := range molecules {
		bw.WriteString(sf("#include \"%s.itp\"\n", m))
	}
	bw.WriteString(sf("\n[ system ]\n%s\n\n[ molecules ]\n", title))
	for _, m := range molecules {
		bw.WriteString(sf("%-15s %5d\n", m, 1))
	}
	return bw.Flush()
}

// ITPAtom is an entry of the [ atoms ] section of an itp file.
type ITPAtom struct {
	ID      int
	Type    string
	ResNr   int
	ResName string
	Name    string
	Charge  float64
	Mass    float64
}

// ITP is the content of an itp file with one molecule type.
// Terms are 0-based, as in cg.Topology.
type ITP struct {
	Name   string
	Nrexcl int
	Atoms  []*ITPAtom
	Terms  []*cg.Term
}

// Count returns the number of terms of kind k.
func (I *ITP) Count(k cg.Kind) int {
	n := 0
	for _, t := range I.Terms {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// ReadITP reads a molecule type in the format written by WriteITP. Conditional
// blocks are read only if their symbol is among the defines. Bonds of function type 6
// are read as elastic terms and impropers are identified by their function type (2).
func ReadITP(r io.Reader, defines ...string) (*ITP, error) {
	sc := bufio.NewScanner(r)
	I := new(ITP)
	read := newCond()
	header := ""
	for sc.Scan() {
		s := cleanString(sc.Text())
		if s == "" || !read.read(s, defines) {
			continue
		}
		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			header = strings.TrimSpace(strings.Trim(s, "[]"))
			continue
		}
		var err error
		switch header {
		case "moleculetype":
			f := fi(s)
			I.Name = f[0]
			if len(f) > 1 {
				I.Nrexcl, err = strconv.Atoi(f[1])
			}
		case "atoms":
			var a *ITPAtom
			a, err = atomFromGro(s)
			if err == nil {
				I.Atoms = append(I.Atoms, a)
			}
		case "bonds", "constraints", "angles", "dihedrals":
			var t *cg.Term
			t, err = TermFromGro(s, header)
			if err == nil {
				I.Terms = append(I.Terms, t)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("ReadITP: couldn't read header %s. Line: %s. Error: %w", header, s, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return I, nil
}

func atomFromGro(s string) (a *ITPAtom, err error) {
	l := fi(s)
	if len(l) < 7 {
		return nil, fmt.Errorf("atom line with %d fields", len(l))
	}
	a = &ITPAtom{Type: l[1], ResName: l[3], Name: l[4]}
	ints, err := parseints(l[0], l[2])
	if err != nil {
		return nil, err
	}
	a.ID, a.ResNr = ints[0], ints[1]
	a.Charge, err = strconv.ParseFloat(l[6], 64)
	if err != nil {
		return nil, err
	}
	if len(l) > 7 {
		a.Mass, err = strconv.ParseFloat(l[7], 64)
	}
	return a, err
}

// Returns a term containing the information in the GromacsTop-formatted string s,
// given that the string is part of the header header.
func TermFromGro(s, header string) (T *cg.Term, err error) {
	l := fi(cleanString(s))
	T = new(cg.Term)
	ats := 2
	switch header {
	case "bonds":
		T.Kind = cg.Bond
	case "constraints":
		T.Kind = cg.Bond
		T.Constraint = true
	case "angles":
		T.Kind = cg.Angle
		ats = 3
	case "dihedrals":
		T.Kind = cg.Dihedral
		ats = 4
	default:
		return nil, fmt.Errorf("unsupported header %s", header)
	}
	need := ats + 3
	if T.Constraint {
		need = ats + 2
	}
	if len(l) < need {
		return nil, fmt.Errorf("%s line with %d fields, need at least %d", header, len(l), need)
	}
	ids, err := parseints(l[:ats+1]...)
	if err != nil {
		return nil, err
	}
	for _, v := range ids[:ats] {
		T.Beads = append(T.Beads, v-1)
	}
	T.Func = ids[ats]
	if T.Constraint {
		T.Eq, err = strconv.ParseFloat(l[ats+1], 64)
		return T, err
	}
	p, err := parsefloats(l[ats+1], l[ats+2])
	if err != nil {
		return nil, err
	}
	T.Eq, T.K = p[0], p[1]
	switch {
	case T.Kind == cg.Bond && T.Func == 6:
		T.Kind = cg.Elastic
		T.Rule = elnet.Rule
	case T.Kind == cg.Dihedral && T.Func == 2:
		T.Kind = cg.Improper
	case T.Kind == cg.Dihedral && len(l) > ats+3:
		T.Mult, err = strconv.Atoi(l[ats+3])
	}
	return T, err
}
