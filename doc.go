/*
 * doc.go, part of goCG.
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

// Package cg is the main package of the goCG library. It provides the residue-level
// molecular model (atoms, residues and chains), secondary-structure labels, and the
// coarse-grained topology objects (beads and bonded terms) that the rest of the library
// produces and consumes.
//
// goCG:
//
//   - Maps all-atom protein chains onto Martini-style coarse-grained beads,
//     using force fields described as data (see package ff).
//   - Assigns secondary structure from the CA trace, or takes it from
//     DSSP-like strings given by the user (see package ss).
//   - Builds bonded terms from residue templates and elastic networks
//     with distance-decaying force constants (packages top and elnet).
//   - Runs many chains concurrently and merges the results into one
//     topology with global bead numbering (package pipeline).
//   - Writes GROMACS itp and gro files.
//
// All lengths in the model objects are in Angstrom. Terms carry GROMACS units
// (nm, degrees, kJ/mol), since that is what ends up written to disk.
//
// Objects are plain structs, options are
// set through variadic getter/setter methods, and errors can be decorated
// with the functions they went through before reaching the user.
package cg
