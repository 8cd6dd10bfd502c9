/*
 * gro.go, part of goCG.
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
	"math"
	"strconv"
	"strings"

	cg "github.com/rmera/gocg"
)

// A2nm is the conversion factor from Angstrom (used by beads) to nm (used in gro files).
const A2nm = 0.1

// Margin added to each side of the bounding box of the beads, in nm.
const BoxMargin = 1.0

// GroAtom is one line of a gro file. Coordinates are in nm.
type GroAtom struct {
	ResNr   int
	ResName string
	Name    string
	Coord   [3]float64
}

// Gro is the content of a gro file. Box has the 3 values of a rectangular box, or the 9
// of a triclinic one, in the order they appear in the file.
type Gro struct {
	Title string
	Atoms []*GroAtom
	Box   []float64
}

// WriteGro writes the bead coordinates of T in the gro format. The box is the bounding
// box of the beads plus BoxMargin on each side. Beads are not translated.
func WriteGro(w io.Writer, T *cg.Topology, title string) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(strings.ReplaceAll(title, "\n", " ") + "\n")
	bw.WriteString(sf("%5d\n", T.Len()))
	nums := resNumbers(T)
	lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i, b := range T.Beads {
		var c [3]float64
		for j := range c {
			c[j] = b.Coord[j] * A2nm
			lo[j] = math.Min(lo[j], c[j])
			hi[j] = math.Max(hi[j], c[j])
		}
		//gro files have fixed-width fields, so large numbers wrap.
		bw.WriteString(sf("%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n", nums[i]%100000, b.ResName, b.Name, (i+1)%100000, c[0], c[1], c[2]))
	}
	var box [3]float64
	if T.Len() > 0 {
		for j := range box {
			box[j] = hi[j] - lo[j] + 2*BoxMargin
		}
	}
	bw.WriteString(sf("%10.5f%10.5f%10.5f\n", box[0], box[1], box[2]))
	return bw.Flush()
}

// ReadGro reads a gro file with a single frame.
func ReadGro(r io.Reader) (*Gro, error) {
	sc := bufio.NewScanner(r)
	G := new(Gro)
	if !sc.Scan() {
		return nil, fmt.Errorf("ReadGro: empty file")
	}
	G.Title = strings.TrimSpace(sc.Text())
	if !sc.Scan() {
		return nil, fmt.Errorf("ReadGro: missing atom count")
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, fmt.Errorf("ReadGro: bad atom count: %w", err)
	}
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("ReadGro: expected %d atoms, found %d", n, i)
		}
		a, err := groLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("ReadGro: atom %d: %w", i+1, err)
		}
		G.Atoms = append(G.Atoms, a)
	}
	if sc.Scan() {
		f := fi(sc.Text())
		if len(f) > 9 {
			f = f[:9]
		}
		if len(f) > 0 {
			b, err := parsefloats(f...)
			if err != nil {
				return nil, fmt.Errorf("ReadGro: bad box: %w", err)
			}
			G.Box = b
		}
	}
	return G, sc.Err()
}

func groLine(s string) (*GroAtom, error) {
	if len(s) < 44 {
		return nil, fmt.Errorf("line too short: %q", s)
	}
	a := &GroAtom{
		ResName: strings.TrimSpace(s[5:10]),
		Name:    strings.TrimSpace(s[10:15]),
	}
	var err error
	a.ResNr, err = strconv.Atoi(strings.TrimSpace(s[0:5]))
	if err != nil {
		return nil, err
	}
	c, err := parsefloats(strings.TrimSpace(s[20:28]), strings.TrimSpace(s[28:36]), strings.TrimSpace(s[36:44]))
	if err != nil {
		return nil, err
	}
	copy(a.Coord[:], c)
	return a, nil
}

// GroEqual compares two gro files. They are equal if they have the same title and atoms, with
// the same residue numbers and names, and coordinates and box vectors that differ by no
// more than tol nm. Box values missing from the shorter box line count as 0, so a rectangular box
// equals a triclinic one with null off-diagonal terms. A non-nil error means one of the
// files could not be read.
func GroEqual(a, b io.Reader, tol float64) (bool, error) {
	ga, err := ReadGro(a)
	if err != nil {
		return false, err
	}
	gb, err := ReadGro(b)
	if err != nil {
		return false, err
	}
	if ga.Title != gb.Title || len(ga.Atoms) != len(gb.Atoms) {
		return false, nil
	}
	for i := 0; i < max(len(ga.Box), len(gb.Box)); i++ {
		if math.Abs(boxValue(ga.Box, i)-boxValue(gb.Box, i)) > tol {
			return false, nil
		}
	}
	for i, x := range ga.Atoms {
		y := gb.Atoms[i]
		if x.ResNr != y.ResNr || x.ResName != y.ResName || x.Name != y.Name {
			return false, nil
		}
		for j := range x.Coord {
			if math.Abs(x.Coord[j]-y.Coord[j]) > tol {
				return false, nil
			}
		}
	}
	return true, nil
}

func boxValue(box []float64, i int) float64 {
	if i < len(box) {
		return box[i]
	}
	return 0
}
