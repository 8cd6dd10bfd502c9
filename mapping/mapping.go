/*
 * mapping.go, part of goCG.
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

// Package mapping turns all-atom protein chains into coarse-grained beads, following the residue
// templates of a force field.
package mapping

import (
	"fmt"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/ff"
	v3 "github.com/rmera/gocg/v3"
	"go.uber.org/zap"
)

// Options for the mapping.
type Options struct {
	centroid bool
	neutral  bool
	logger   *zap.Logger
}

// DefaultOptions returns the default options: beads at the center of mass of their
// atoms (unless the force field says otherwise), charged termini, and no logging.
func DefaultOptions() *Options {
	return &Options{logger: zap.NewNop()}
}

// Centroid returns whether the geometric center is used instead of the center of mass for all
// beads, and sets it, if a value is given.
func (O *Options) Centroid(c ...bool) bool {
	ret := O.centroid
	if len(c) > 0 {
		O.centroid = c[0]
	}
	return ret
}

// NeutralTermini returns whether the termini are left uncharged, and sets it, if a value is given.
func (O *Options) NeutralTermini(n ...bool) bool {
	ret := O.neutral
	if len(n) > 0 {
		O.neutral = n[0]
	}
	return ret
}

// Logger returns the logger in use, and sets it, if a non-nil one is given.
func (O *Options) Logger(l ...*zap.Logger) *zap.Logger {
	ret := O.logger
	if len(l) > 0 && l[0] != nil {
		O.logger = l[0]
	}
	return ret
}

// Diagnostic is a problem found while mapping one residue.
type Diagnostic struct {
	Kind    cg.ErrorKind
	Chain   string
	Residue string
	Bead    string
	Atoms   []string
	Msg     string
}

func (D Diagnostic) String() string {
	s := fmt.Sprintf("%s: chain %s residue %s", D.Kind, D.Chain, D.Residue)
	if D.Bead != "" {
		s += " bead " + D.Bead
	}
	if len(D.Atoms) > 0 {
		s += fmt.Sprintf(" atoms %v", D.Atoms)
	}
	if D.Msg != "" {
		s += ": " + D.Msg
	}
	return s
}

// Diagnostics collects everything that went wrong, or was skipped, while mapping a chain.
type Diagnostics struct {
	Unmapped []Diagnostic //residues with unknown type or without template
	Missing  []Diagnostic //required atoms not found
	Skipped  []Diagnostic //optional beads left out
}

// Fatal returns true if the chain could not be mapped.
func (D *Diagnostics) Fatal() bool {
	return len(D.Unmapped) > 0 || len(D.Missing) > 0
}

// Map builds the beads for chain c with the force field F, given one secondary structure
// label per residue. Beads come in residue order and, within a residue, in template order;
// their Index is their position in the returned slice. Residues without a template
// (UnknownResidueType if the name is not a known amino acid, UnmappedResidue otherwise) and
// missing atoms (MissingAtom) are fatal for the chain: all of them are collected
// in the diagnostics, and the first one is returned as the error.
func Map(c *cg.Chain, labels cg.Labels, F *ff.ForceField, opts ...*Options) ([]*cg.Bead, *Diagnostics, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	log := O.Logger().With(zap.String("chain", c.ID))
	diag := new(Diagnostics)
	if len(labels) != c.Len() {
		err := cg.NewError(cg.LabelLengthMismatch, c.ID, "", "%d labels for %d residues", len(labels), c.Len())
		return nil, diag, cg.Decorate(err, "mapping.Map")
	}
	templates := make([]*ff.ResidueTemplate, c.Len())
	var first error
	for i, r := range c.Residues {
		t, ok := F.Residue(r.Name)
		if ok {
			templates[i] = t
			continue
		}
		kind := cg.UnmappedResidue
		msg := fmt.Sprintf("no template in force field %s", F.Name)
		if !cg.IsKnownResidue(r.Name) {
			kind = cg.UnknownResidueType
			msg = "not a known residue type"
		}
		diag.Unmapped = append(diag.Unmapped, Diagnostic{Kind: kind, Chain: c.ID, Residue: r.ID(), Msg: msg})
		if first == nil {
			first = cg.NewError(kind, c.ID, r.ID(), "%s", msg)
		}
	}
	if first != nil {
		log.Warn("unmapped residues", zap.Int("count", len(diag.Unmapped)))
		return nil, diag, cg.Decorate(first, "mapping.Map")
	}
	beads := make([]*cg.Bead, 0, 3*c.Len())
	for i, r := range c.Residues {
		for _, spec := range templates[i].Beads {
			b, err := mapBead(c, i, spec, F, O, diag)
			if err != nil {
				if first == nil {
					first = err
				}
				continue
			}
			if b == nil {
				continue
			}
			b.Index = len(beads)
			b.SS = labels[i]
			b.Type = F.BeadType(r.Name, spec.Name, labels[i], spec.Type)
			beads = append(beads, b)
		}
	}
	if first != nil {
		log.Warn("missing atoms", zap.Int("count", len(diag.Missing)))
		return nil, diag, cg.Decorate(first, "mapping.Map")
	}
	if !O.NeutralTermini() {
		terminus(beads, F.Termini.N, 0)
		terminus(beads, F.Termini.C, c.Len()-1)
	}
	for _, s := range diag.Skipped {
		log.Debug("optional bead skipped", zap.String("residue", s.Residue), zap.String("bead", s.Bead))
	}
	log.Debug("chain mapped", zap.Int("residues", c.Len()), zap.Int("beads", len(beads)))
	return beads, diag, nil
}

// terminus changes the type and charge of the bead of residue resindex named in spec.
func terminus(beads []*cg.Bead, spec ff.TerminusSpec, resindex int) {
	if spec.Bead == "" {
		return
	}
	for _, b := range beads {
		if b.ResIndex == resindex && b.Name == spec.Bead {
			b.Type = spec.Type
			b.Charge += spec.Charge
			return
		}
	}
}

// mapBead builds the bead described by spec for the ith residue of c. It returns nil, nil
// when the bead is legitimately left out.
func mapBead(c *cg.Chain, i int, spec *ff.BeadSpec, F *ff.ForceField, O *Options, diag *Diagnostics) (*cg.Bead, error) {
	r := c.Residues[i]
	required, extra := spec.Refs()
	var atoms []*cg.Atom
	var names []string
	var missing []string
	for _, ref := range required {
		j := i + ref.Offset
		if j < 0 || j >= c.Len() {
			if spec.Shared {
				return nil, nil //chain end, nothing to share with.
			}
			missing = append(missing, ref.String())
			continue
		}
		at := c.Residues[j].Atom(ref.Name)
		if at == nil {
			missing = append(missing, ref.String())
			continue
		}
		atoms = append(atoms, at)
		names = append(names, ref.String())
	}
	if len(missing) > 0 {
		d := Diagnostic{Chain: c.ID, Residue: r.ID(), Bead: spec.Name, Atoms: missing}
		if spec.Optional {
			d.Msg = "optional bead skipped"
			diag.Skipped = append(diag.Skipped, d)
			return nil, nil
		}
		d.Kind = cg.MissingAtom
		diag.Missing = append(diag.Missing, d)
		return nil, cg.NewError(cg.MissingAtom, c.ID, r.ID(), "bead %s lacks atoms %v", spec.Name, missing)
	}
	for _, ref := range extra {
		j := i + ref.Offset
		if j < 0 || j >= c.Len() {
			continue
		}
		if at := c.Residues[j].Atom(ref.Name); at != nil {
			atoms = append(atoms, at)
			names = append(names, ref.String())
		}
	}
	coord, mass, err := position(atoms, spec.Rule, O.Centroid())
	if err != nil {
		return nil, cg.NewError(cg.MissingAtom, c.ID, r.ID(), "bead %s: %v", spec.Name, err)
	}
	if m := F.BeadMass(spec); m > 0 {
		mass = m
	}
	return &cg.Bead{
		Name:     spec.Name,
		Type:     spec.Type,
		Charge:   spec.Charge,
		Mass:     mass,
		Coord:    coord,
		Chain:    c.ID,
		ResName:  r.Name,
		ResSeq:   r.SeqNum,
		ResIndex: i,
		Atoms:    names,
		Backbone: spec.Backbone,
	}, nil
}

// position returns the bead coordinates and the total mass of the atoms.
// Atoms of unknown element weigh 0 for the center of mass; if all do, the
// geometric center is used.
func position(atoms []*cg.Atom, rule ff.Rule, centroid bool) ([3]float64, float64, error) {
	var total float64
	masses := make([]float64, len(atoms))
	coords := v3.Zeros(len(atoms))
	for k, at := range atoms {
		masses[k] = at.Mass()
		total += masses[k]
		coords.Set(k, 0, at.Coord[0])
		coords.Set(k, 1, at.Coord[1])
		coords.Set(k, 2, at.Coord[2])
	}
	if rule == ff.Single {
		return atoms[0].Coord, total, nil
	}
	weights := masses
	if centroid || rule == ff.Centroid || total == 0 {
		weights = nil
	}
	c, err := v3.WeightedCenter(coords, weights)
	if err != nil {
		return [3]float64{}, 0, err
	}
	return c.Array(0), total, nil
}
