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

/*
Top builds and writes coarse-grained force-field topologies (not to be
confused with cg.Topology, the structure it fills). Bonded terms come from the
templates of a force field, matched residue by residue on the mapped beads,
and the elastic network is added when the force field enables it.
Only Gromacs topologies (itp/top) and coordinates (gro) can be read/written.
*/
package top
