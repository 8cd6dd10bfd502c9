/*
 * options.go, part of goCG.
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

package pipeline

import (
	"runtime"

	"github.com/rmera/gocg/ff"
	"github.com/rmera/gocg/ss"
	"go.uber.org/zap"
)

// ElasticMode decides whether the elastic network is built.
type ElasticMode int

const (
	ElasticDefault ElasticMode = iota //as the force field says
	ElasticOn
	ElasticOff
)

// Options for a run. The zero value is not usable, use DefaultOptions.
type Options struct {
	ffname   string
	field    *ff.ForceField
	registry *ff.Registry
	elastic  ElasticMode
	ss       string
	chainss  map[string]string
	centroid bool
	neutral  bool
	cpus     int
	cross    bool
	ssopts   *ss.Options
	logger   *zap.Logger
	//test hooks, called in the worker goroutine before and after processing chain i.
	before func(i int)
	after  func(i int)
}

// DefaultOptions returns the default options: martini22 from the default registry,
// elastic network as the force field says, computed secondary structure, mass-weighted beads,
// charged termini, one goroutine per CPU and no logging.
func DefaultOptions() *Options {
	return &Options{
		ffname:   "martini22",
		registry: ff.Default,
		cpus:     runtime.NumCPU(),
		ssopts:   ss.DefaultOptions(),
		logger:   zap.NewNop(),
	}
}

// ForceFieldName returns the name of the force field to load from the registry,
// and sets it, if a non-empty name is given.
func (O *Options) ForceFieldName(name ...string) string {
	ret := O.ffname
	if len(name) > 0 && name[0] != "" {
		O.ffname = name[0]
	}
	return ret
}

// ForceField returns the force field given by value, if any, and sets it, if a non-nil one
// is given. A force field given by value takes precedence over the name.
func (O *Options) ForceField(F ...*ff.ForceField) *ff.ForceField {
	ret := O.field
	if len(F) > 0 && F[0] != nil {
		O.field = F[0]
	}
	return ret
}

// Registry returns the registry force fields are loaded from, and sets it, if a non-nil one is given.
func (O *Options) Registry(R ...*ff.Registry) *ff.Registry {
	ret := O.registry
	if len(R) > 0 && R[0] != nil {
		O.registry = R[0]
	}
	return ret
}

// Elastic returns the elastic network mode, and sets it, if given.
func (O *Options) Elastic(m ...ElasticMode) ElasticMode {
	ret := O.elastic
	if len(m) > 0 {
		O.elastic = m[0]
	}
	return ret
}

// SS returns the global secondary structure override, one DSSP code per residue of all
// the chains, in input order, and sets it, if given. An empty string means no override.
func (O *Options) SS(s ...string) string {
	ret := O.ss
	if len(s) > 0 {
		O.ss = s[0]
	}
	return ret
}

// ChainSS returns the per-chain secondary structure overrides, by chain ID, and
// sets them, if given. For the chains they name, they take precedence over the global override.
func (O *Options) ChainSS(m ...map[string]string) map[string]string {
	ret := O.chainss
	if len(m) > 0 {
		O.chainss = m[0]
	}
	return ret
}

// Centroid returns whether beads are built as unweighted centers, and sets it, if given.
func (O *Options) Centroid(c ...bool) bool {
	ret := O.centroid
	if len(c) > 0 {
		O.centroid = c[0]
	}
	return ret
}

// NeutralTermini returns whether the chain termini are left uncharged, and sets it, if given.
func (O *Options) NeutralTermini(n ...bool) bool {
	ret := O.neutral
	if len(n) > 0 {
		O.neutral = n[0]
	}
	return ret
}

// Cpus returns the number of chains processed concurrently, and sets it,
// if a valid value is given.
func (O *Options) Cpus(cpus ...int) int {
	ret := O.cpus
	if len(cpus) > 0 && cpus[0] > 0 {
		O.cpus = cpus[0]
	}
	return ret
}

// CrossChain returns whether an elastic network is also built between chains, after
// merging them, and sets it, if given. It has no effect if the elastic network is off.
func (O *Options) CrossChain(c ...bool) bool {
	ret := O.cross
	if len(c) > 0 {
		O.cross = c[0]
	}
	return ret
}

// SSOptions returns the options for the secondary structure assignment, and sets them,
// if non-nil ones are given.
func (O *Options) SSOptions(s ...*ss.Options) *ss.Options {
	ret := O.ssopts
	if len(s) > 0 && s[0] != nil {
		O.ssopts = s[0]
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
