/*
 * label.go, part of goCG.
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

import "strings"

// Label is the secondary-structure class of a residue.
type Label uint8

const (
	Unknown Label = iota
	Helix
	Sheet
	Coil
	Turn
	Bend
	Helix310
	PiHelix
	Bridge
)

var labelCodes = [...]byte{
	Unknown:  '-',
	Helix:    'H',
	Sheet:    'E',
	Coil:     'C',
	Turn:     'T',
	Bend:     'S',
	Helix310: 'G',
	PiHelix:  'I',
	Bridge:   'B',
}

var labelNames = [...]string{
	Unknown:  "unknown",
	Helix:    "helix",
	Sheet:    "sheet",
	Coil:     "coil",
	Turn:     "turn",
	Bend:     "bend",
	Helix310: "3-10 helix",
	PiHelix:  "pi helix",
	Bridge:   "bridge",
}

// Code returns the DSSP one-letter code for the label.
func (L Label) Code() byte {
	if int(L) >= len(labelCodes) {
		return '-'
	}
	return labelCodes[L]
}

func (L Label) String() string {
	if int(L) >= len(labelNames) {
		return "unknown"
	}
	return labelNames[L]
}

// Helical returns true for the three kinds of helix.
func (L Label) Helical() bool {
	return L == Helix || L == Helix310 || L == PiHelix
}

// LabelFromCode returns the label for a DSSP one-letter code. Blanks, 'C' and
// the codes we don't distinguish (like DSSP 4's 'P' for PPII) are coil. '-' is Unknown.
func LabelFromCode(c byte) Label {
	switch c {
	case 'H', 'h':
		return Helix
	case 'E', 'e':
		return Sheet
	case 'T', 't':
		return Turn
	case 'S', 's':
		return Bend
	case 'G', 'g':
		return Helix310
	case 'I', 'i':
		return PiHelix
	case 'B', 'b':
		return Bridge
	case '-':
		return Unknown
	}
	return Coil
}

// Labels is a per-residue secondary-structure assignment for a chain.
type Labels []Label

// ParseLabels turns a string of DSSP one-letter codes into Labels.
func ParseLabels(s string) Labels {
	s = strings.TrimRight(s, "\r\n")
	ret := make(Labels, len(s))
	for i := 0; i < len(s); i++ {
		ret[i] = LabelFromCode(s[i])
	}
	return ret
}

// String returns the labels as a string of DSSP one-letter codes.
func (L Labels) String() string {
	b := make([]byte, len(L))
	for i, v := range L {
		b[i] = v.Code()
	}
	return string(b)
}

// Copy returns a copy of the labels.
func (L Labels) Copy() Labels {
	if L == nil {
		return nil
	}
	ret := make(Labels, len(L))
	copy(ret, L)
	return ret
}

// Count returns how many residues have the label l.
func (L Labels) Count(l Label) int {
	n := 0
	for _, v := range L {
		if v == l {
			n++
		}
	}
	return n
}
