/*
 * override.go, part of goCG.
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

package ss

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	cg "github.com/rmera/gocg"
)

// Keep is the character that, in an override string, keeps the computed label.
const Keep = '.'

// Override replaces the computed labels with those given in override, a string of DSSP one-letter
// codes, one per residue. Positions holding Keep retain the computed label. If the lengths differ,
// a LabelLengthMismatch error is returned, and computed is not used.
func Override(computed cg.Labels, override string) (cg.Labels, error) {
	override = strings.TrimRight(override, "\r\n")
	if len(override) != len(computed) {
		return nil, cg.NewError(cg.LabelLengthMismatch, "", "", "override has %d labels, chain has %d residues", len(override), len(computed))
	}
	ret := computed.Copy()
	for i := 0; i < len(override); i++ {
		if override[i] == Keep {
			continue
		}
		ret[i] = cg.LabelFromCode(override[i])
	}
	return ret, nil
}

// Assign classifies the chain and applies the override, if not empty.
func Assign(c *cg.Chain, override string, opts ...*Options) (cg.Labels, error) {
	override = strings.TrimRight(override, "\r\n")
	if override != "" && len(override) != c.Len() {
		err := cg.NewError(cg.LabelLengthMismatch, c.ID, "", "override has %d labels, chain has %d residues", len(override), c.Len())
		return nil, cg.Decorate(err, "ss.Assign")
	}
	labels := Classify(c, opts...)
	if override == "" {
		return labels, nil
	}
	return Override(labels, override)
}

// ReadDSSP reads a classic DSSP output file and returns, for each chain, a string with
// the secondary structure codes of its residues, in order. Chain-break lines ('!') are skipped.
// Blank structure codes become 'C'.
func ReadDSSP(r io.Reader) (map[string]string, error) {
	sc := bufio.NewScanner(r)
	ret := make(map[string]*strings.Builder)
	var order []string
	started := false
	line := 0
	for sc.Scan() {
		line++
		l := sc.Text()
		if !started {
			if strings.HasPrefix(l, "  #  RESIDUE") {
				started = true
			}
			continue
		}
		if len(l) < 17 {
			continue
		}
		if l[13] == '!' {
			continue
		}
		chain := strings.TrimSpace(l[11:12])
		code := l[16]
		if code == ' ' {
			code = 'C'
		}
		b, ok := ret[chain]
		if !ok {
			b = new(strings.Builder)
			ret[chain] = b
			order = append(order, chain)
		}
		b.WriteByte(code)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ReadDSSP: line %d: %w", line, err)
	}
	if !started {
		return nil, fmt.Errorf("ReadDSSP: no residue section found")
	}
	out := make(map[string]string, len(ret))
	for _, k := range order {
		out[k] = ret[k].String()
	}
	return out, nil
}
