/*
 * pipeline.go, part of goCG.
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

// Package pipeline runs the whole coarse-graining of a set of chains: secondary
// structure, mapping and topology for each chain, concurrently, and the
// merge of the results, in input order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/elnet"
	"github.com/rmera/gocg/ff"
	"github.com/rmera/gocg/mapping"
	"github.com/rmera/gocg/ss"
	"github.com/rmera/gocg/top"
	"go.uber.org/zap"
)

// ChainResult is the outcome for one input chain. Exactly one of
// Topology and Err is non-nil.
type ChainResult struct {
	ChainID     string
	Index       int //position of the chain in the input
	Labels      cg.Labels
	Topology    *cg.Topology
	Diagnostics *mapping.Diagnostics
	Err         error
}

// Report is the outcome of a run.
type Report struct {
	RunID      uuid.UUID
	ForceField string
	Chains     []*ChainResult
	//Topology merges the chains that succeeded, in input order.
	Topology         *cg.Topology
	UnmappedResidues int //over the whole run, including unknown residue types
	MissingAtoms     int
	Elapsed          time.Duration
}

// Failed returns the results of the chains that could not be processed.
func (R *Report) Failed() []*ChainResult {
	var ret []*ChainResult
	for _, c := range R.Chains {
		if c.Err != nil {
			ret = append(ret, c)
		}
	}
	return ret
}

// Err joins the errors of all the failed chains, or returns nil if all succeeded.
func (R *Report) Err() error {
	var errs []error
	for _, c := range R.Failed() {
		errs = append(errs, c.Err)
	}
	return errors.Join(errs...)
}

// forceField loads, or prepares, the force field for the run and applies the elastic mode.
func forceField(O *Options) (*ff.ForceField, error) {
	var F *ff.ForceField
	if O.field != nil {
		F = O.field.Copy()
		if err := F.Prepare(); err != nil {
			return nil, err
		}
	} else {
		var err error
		F, err = O.registry.Load(O.ffname)
		if err != nil {
			return nil, err
		}
	}
	switch O.elastic {
	case ElasticOn:
		F.Elastic.Enabled = true
	case ElasticOff:
		F.Elastic.Enabled = false
	}
	if F.Elastic.Enabled {
		if err := F.Elastic.Validate(); err != nil {
			return nil, cg.NewError(cg.InvalidForceFieldConfig, "", "", "force field %s: %s", F.Name, err.Error())
		}
	}
	return F, nil
}

// overrides returns the secondary structure override for each chain, or an error
// if any of them doesn't match the length of its chain.
func overrides(chains []*cg.Chain, O *Options) ([]string, error) {
	ret := make([]string, len(chains))
	if O.ss != "" {
		total := 0
		for _, c := range chains {
			total += c.Len()
		}
		if len(O.ss) != total {
			return nil, cg.NewError(cg.LabelLengthMismatch, "", "", "secondary structure override has %d labels, the input has %d residues", len(O.ss), total)
		}
		start := 0
		for i, c := range chains {
			ret[i] = O.ss[start : start+c.Len()]
			start += c.Len()
		}
	}
	used := make(map[string]bool)
	for i, c := range chains {
		s, ok := O.chainss[c.ID]
		if !ok {
			continue
		}
		used[c.ID] = true
		if len(s) != c.Len() {
			return nil, cg.NewError(cg.LabelLengthMismatch, c.ID, "", "secondary structure override has %d labels, the chain has %d residues", len(s), c.Len())
		}
		ret[i] = s
	}
	for id := range O.chainss {
		if !used[id] {
			return nil, cg.NewError(cg.LabelLengthMismatch, id, "", "secondary structure override given for a chain not in the input")
		}
	}
	return ret, nil
}

// Run processes each chain: secondary structure assignment (with the overrides given), mapping to
// beads and topology generation, including the elastic network. Up to O.Cpus() chains are processed
// concurrently. The chains that succeed are merged, in input order, into the report's topology.
// Errors in the configuration (force field, overrides) abort the run before any chain is
// processed, and are returned with a nil report. Errors local to a chain are recorded in its result
// and don't affect the other chains. An index remapping error in the merge is always returned.
// If ctx is cancelled, chains not yet started are not processed, their result carries the
// context error, and it is also returned, with the report.
func Run(ctx context.Context, chains []*cg.Chain, opts ...*Options) (*Report, error) {
	O := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		O = opts[0]
	}
	start := time.Now()
	F, err := forceField(O)
	if err != nil {
		return nil, cg.Decorate(err, "pipeline.Run")
	}
	over, err := overrides(chains, O)
	if err != nil {
		return nil, cg.Decorate(err, "pipeline.Run")
	}
	R := &Report{RunID: uuid.New(), ForceField: F.Name, Chains: make([]*ChainResult, len(chains))}
	log := O.logger.With(zap.String("run", R.RunID.String()))
	log.Info("run started", zap.String("forcefield", F.Name), zap.Int("chains", len(chains)),
		zap.Bool("elastic", F.Elastic.Enabled), zap.Int("cpus", O.cpus))

	cpus := O.cpus
	if cpus <= 0 {
		cpus = 1
	}
	sem := make(chan struct{}, cpus)
	results := make([]chan *ChainResult, len(chains))
	for i, c := range chains {
		results[i] = make(chan *ChainResult, 1)
		err := ctx.Err()
		if err == nil {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				err = ctx.Err()
			}
		}
		if err != nil {
			results[i] <- &ChainResult{ChainID: c.ID, Index: i, Err: err}
			continue
		}
		go func(i int, c *cg.Chain) {
			defer func() { <-sem }()
			results[i] <- runChain(i, c, over[i], F, O, log)
		}(i, c)
	}
	var ok []*cg.Topology
	for i := range results {
		r := <-results[i]
		R.Chains[i] = r
		if r.Diagnostics != nil {
			R.UnmappedResidues += len(r.Diagnostics.Unmapped)
			R.MissingAtoms += len(r.Diagnostics.Missing)
		}
		if r.Err != nil {
			log.Warn("chain failed", zap.String("chain", r.ChainID), zap.Int("index", i), zap.Error(r.Err))
			continue
		}
		ok = append(ok, r.Topology)
	}
	R.Topology, err = cg.Merge(ok...)
	if err != nil {
		return nil, cg.Decorate(err, "pipeline.Run")
	}
	if O.cross && F.Elastic.Enabled && len(R.Topology.Chains) > 1 {
		if err := crossElastic(R.Topology, F); err != nil {
			return nil, cg.Decorate(err, "pipeline.Run")
		}
	}
	R.Elapsed = time.Since(start)
	log.Info("run finished", zap.Int("beads", R.Topology.Len()), zap.Int("terms", len(R.Topology.Terms)),
		zap.Int("failed", len(R.Failed())), zap.Int("unmapped", R.UnmappedResidues), zap.Duration("elapsed", R.Elapsed))
	return R, ctx.Err()
}

// crossElastic adds the elastic terms between beads of different chains to the merged topology T.
func crossElastic(T *cg.Topology, F *ff.ForceField) error {
	g := elnet.NewBondGraph(T.Beads, T.Terms)
	terms := elnet.BuildCross(T.Beads, F.Elastic, g.Excluder(F.Elastic.ExcludeBondedDepth))
	T.Terms = append(T.Terms, terms...)
	return T.Check()
}

func runChain(i int, c *cg.Chain, override string, F *ff.ForceField, O *Options, log *zap.Logger) (res *ChainResult) {
	res = &ChainResult{ChainID: c.ID, Index: i}
	log = log.With(zap.String("chain", c.ID), zap.Int("index", i))
	defer func() {
		if r := recover(); r != nil {
			res.Topology = nil
			res.Err = fmt.Errorf("chain %s: %v", c.ID, r)
		}
	}()
	if O.before != nil {
		O.before(i)
	}
	if O.after != nil {
		defer O.after(i)
	}
	labels, err := ss.Assign(c, override, O.ssopts)
	if err != nil {
		res.Err = cg.Decorate(err, "chain "+c.ID)
		return res
	}
	res.Labels = labels
	mo := mapping.DefaultOptions()
	mo.Centroid(O.centroid)
	mo.NeutralTermini(O.neutral)
	mo.Logger(log)
	beads, diag, err := mapping.Map(c, labels, F, mo)
	res.Diagnostics = diag
	if err != nil {
		for _, d := range append(slices.Clone(diag.Unmapped), diag.Missing...) {
			log.Debug("mapping problem", zap.Stringer("kind", d.Kind), zap.String("residue", d.Residue), zap.Strings("atoms", d.Atoms))
		}
		res.Err = cg.Decorate(err, "chain "+c.ID)
		return res
	}
	to := top.DefaultOptions()
	to.Logger(log)
	T, err := top.Generate(beads, labels, F, to)
	if err != nil {
		res.Err = cg.Decorate(err, "chain "+c.ID)
		return res
	}
	res.Topology = T
	log.Debug("chain done", zap.String("ss", labels.String()), zap.Int("beads", T.Len()))
	return res
}
