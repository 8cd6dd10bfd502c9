/*
 * ff.go, part of goCG.
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

// Package ff describes coarse-grained force fields as data: how each residue type is split into
// beads, how beads are typed according to secondary structure, which bonded terms join them and
// how the elastic network is built. Force fields are registered by name, either built-in or read
// from json, yaml or toml files.
package ff

import (
	"fmt"
	"strings"

	cg "github.com/rmera/gocg"
	"github.com/rmera/gocg/elnet"
)

// Rule is the way a bead position is obtained from its atoms.
type Rule string

const (
	COM      Rule = "com"      //center of mass
	Centroid Rule = "centroid" //geometric center
	Single   Rule = "single"   //the position of the only atom
)

// AtomRef names an atom (or a bead) in the residue at Offset positions from the
// current one. Its text form is the name with one '+' or '-' per position, like "+N" or "--BB".
type AtomRef struct {
	Name   string
	Offset int
}

// ParseRef parses the text form of an AtomRef.
func ParseRef(s string) (AtomRef, error) {
	var r AtomRef
	s = strings.TrimSpace(s)
	i := 0
	for ; i < len(s) && (s[i] == '+' || s[i] == '-'); i++ {
		if s[i] == '+' {
			r.Offset++
		} else {
			r.Offset--
		}
	}
	r.Name = s[i:]
	if r.Name == "" {
		return r, fmt.Errorf("empty name in reference %q", s)
	}
	return r, nil
}

func (A AtomRef) String() string {
	switch {
	case A.Offset > 0:
		return strings.Repeat("+", A.Offset) + A.Name
	case A.Offset < 0:
		return strings.Repeat("-", -A.Offset) + A.Name
	}
	return A.Name
}

// BeadSpec describes one bead of a residue template.
type BeadSpec struct {
	Name   string   `mapstructure:"name"`
	Type   string   `mapstructure:"type"`
	Charge float64  `mapstructure:"charge"`
	Mass   float64  `mapstructure:"mass"`  //0 means the force field default, or the sum of the atom masses if that is 0 too.
	Atoms  []string `mapstructure:"atoms"` //required atoms, as AtomRef text
	Extra  []string `mapstructure:"extra"` //atoms included only if present (OXT, terminal hydrogens...)
	Rule   Rule     `mapstructure:"rule"`
	//Optional beads are skipped, with a diagnostic, when atoms are missing.
	Optional bool `mapstructure:"optional"`
	Backbone bool `mapstructure:"backbone"`
	//Shared beads span the residue boundary. At the end of the chain, where
	//the neighbor residue doesn't exist, they are silently left out.
	Shared bool `mapstructure:"shared"`
	atoms  []AtomRef
	extra  []AtomRef
}

// Refs returns the parsed required and extra atom references.
func (B *BeadSpec) Refs() (atoms, extra []AtomRef) {
	return B.atoms, B.extra
}

// ResidueTemplate is the mapping for one residue type.
type ResidueTemplate struct {
	Name    string      `mapstructure:"name"`
	Aliases []string    `mapstructure:"aliases"`
	Beads   []*BeadSpec `mapstructure:"beads"`
}

// Template produces a bonded term for each residue where it matches. Beads are given as
// references relative to the residue (e.g. ["BB", "+BB"]). Residues and SS, if given, have one
// pattern per bead, matched against the residue owning that bead: residue patterns are
// names separated by commas, SS patterns are sets of DSSP letters. "*" matches anything and a
// leading "!" negates the pattern. Among the templates with the same non-empty Group, only the first
// match is used for each residue.
type Template struct {
	Name       string   `mapstructure:"name"`
	Group      string   `mapstructure:"group"`
	Kind       string   `mapstructure:"kind"`
	Beads      []string `mapstructure:"beads"`
	Residues   []string `mapstructure:"residues"`
	SS         []string `mapstructure:"ss"`
	Eq         float64  `mapstructure:"eq"`
	K          float64  `mapstructure:"k"`
	Func       int      `mapstructure:"func"`
	Mult       int      `mapstructure:"mult"`
	Constraint bool     `mapstructure:"constraint"`
	kind       cg.Kind
	refs       []AtomRef
}

// TermKind returns the parsed kind of the term the template produces.
func (T *Template) TermKind() cg.Kind { return T.kind }

// Refs returns the parsed bead references.
func (T *Template) Refs() []AtomRef { return T.refs }

// Matches returns true if the residue name and label of the owner of the kth bead match
// the template patterns.
func (T *Template) Matches(k int, resname string, l cg.Label) bool {
	if len(T.Residues) > k && !MatchResidue(T.Residues[k], resname) {
		return false
	}
	if len(T.SS) > k && !MatchSS(T.SS[k], l) {
		return false
	}
	return true
}

// TypeRule overrides the type of a bead for some residues and secondary structures.
type TypeRule struct {
	Residue string `mapstructure:"residue"`
	Bead    string `mapstructure:"bead"`
	SS      string `mapstructure:"ss"`
	Type    string `mapstructure:"type"`
}

// TerminusSpec changes the type and charge of a bead of the first or last residue of a chain.
type TerminusSpec struct {
	Bead   string  `mapstructure:"bead"`
	Type   string  `mapstructure:"type"`
	Charge float64 `mapstructure:"charge"`
}

// Termini holds the charged-termini specs. Empty Bead fields disable them.
type Termini struct {
	N TerminusSpec `mapstructure:"n"`
	C TerminusSpec `mapstructure:"c"`
}

// ForceField is a complete coarse-grained force field. Obtain one from a Registry, or
// call Prepare on one built by hand.
type ForceField struct {
	Name        string             `mapstructure:"name"`
	Description string             `mapstructure:"description"`
	Mass        float64            `mapstructure:"mass"` //default bead mass
	Residues    []*ResidueTemplate `mapstructure:"residues"`
	Templates   []*Template        `mapstructure:"templates"`
	TypeRules   []*TypeRule        `mapstructure:"type_rules"`
	Termini     Termini            `mapstructure:"termini"`
	Elastic     elnet.Params       `mapstructure:"elastic"`
	byname      map[string]*ResidueTemplate
}

func ffErr(F *ForceField, format string, args ...any) error {
	name := ""
	if F != nil {
		name = F.Name
	}
	return cg.NewError(cg.InvalidForceFieldConfig, "", "", "force field %q: %s", name, fmt.Sprintf(format, args...))
}

// Prepare parses all the references in the force field, indexes its residues and validates it.
func (F *ForceField) Prepare() error {
	if F == nil {
		return ffErr(F, "nil force field")
	}
	F.byname = make(map[string]*ResidueTemplate, len(F.Residues))
	for i, r := range F.Residues {
		if r == nil || r.Name == "" {
			return ffErr(F, "residue template %d has no name", i)
		}
		names := append([]string{r.Name}, r.Aliases...)
		for _, n := range names {
			n = strings.ToUpper(n)
			if _, ok := F.byname[n]; ok {
				return ffErr(F, "residue %s defined twice", n)
			}
			F.byname[n] = r
		}
		for _, b := range r.Beads {
			if b == nil {
				return ffErr(F, "residue %s has a nil bead", r.Name)
			}
			var err error
			if b.atoms, err = parseRefs(b.Atoms); err != nil {
				return ffErr(F, "residue %s bead %s: %v", r.Name, b.Name, err)
			}
			if b.extra, err = parseRefs(b.Extra); err != nil {
				return ffErr(F, "residue %s bead %s: %v", r.Name, b.Name, err)
			}
		}
	}
	for i, t := range F.Templates {
		if t == nil {
			return ffErr(F, "template %d is nil", i)
		}
		var err error
		if t.kind, err = cg.ParseKind(t.Kind); err != nil {
			return ffErr(F, "template %s: %v", t.Name, err)
		}
		if t.refs, err = parseRefs(t.Beads); err != nil {
			return ffErr(F, "template %s: %v", t.Name, err)
		}
	}
	return cg.Decorate(F.Validate(), "ForceField.Prepare")
}

func parseRefs(s []string) ([]AtomRef, error) {
	ret := make([]AtomRef, 0, len(s))
	for _, v := range s {
		r, err := ParseRef(v)
		if err != nil {
			return nil, err
		}
		ret = append(ret, r)
	}
	return ret, nil
}

// Validate checks the internal consistency of a prepared force field. All the problems
// are reported as InvalidForceFieldConfig errors.
func (F *ForceField) Validate() error {
	if F.Name == "" {
		return ffErr(F, "no name")
	}
	if len(F.Residues) == 0 {
		return ffErr(F, "no residue templates")
	}
	if F.byname == nil {
		return ffErr(F, "not prepared")
	}
	beadnames := make(map[string]bool)
	for _, r := range F.Residues {
		seen := make(map[string]bool)
		for _, b := range r.Beads {
			if b.Name == "" {
				return ffErr(F, "residue %s has a bead without name", r.Name)
			}
			if seen[b.Name] {
				return ffErr(F, "residue %s has two beads named %s", r.Name, b.Name)
			}
			seen[b.Name] = true
			beadnames[b.Name] = true
			if b.Type == "" {
				return ffErr(F, "residue %s bead %s has no type", r.Name, b.Name)
			}
			if len(b.Atoms) == 0 {
				return ffErr(F, "residue %s bead %s has no atoms", r.Name, b.Name)
			}
			if b.Mass < 0 {
				return ffErr(F, "residue %s bead %s has negative mass", r.Name, b.Name)
			}
			switch b.Rule {
			case "", COM, Centroid:
			case Single:
				if len(b.Atoms) != 1 || len(b.Extra) != 0 {
					return ffErr(F, "residue %s bead %s uses the single rule with %d atoms", r.Name, b.Name, len(b.Atoms)+len(b.Extra))
				}
			default:
				return ffErr(F, "residue %s bead %s has unknown rule %q", r.Name, b.Name, b.Rule)
			}
			shared := false
			for _, a := range b.atoms {
				if a.Offset != 0 {
					shared = true
				}
			}
			if b.Shared && !shared {
				return ffErr(F, "residue %s bead %s is shared but only uses atoms of its own residue", r.Name, b.Name)
			}
		}
	}
	for _, t := range F.Templates {
		n := len(t.refs)
		if n != t.kind.Arity() {
			return ffErr(F, "template %s: a %s needs %d beads, got %d", t.Name, t.kind, t.kind.Arity(), n)
		}
		if len(t.Residues) != 0 && len(t.Residues) != n {
			return ffErr(F, "template %s: %d residue patterns for %d beads", t.Name, len(t.Residues), n)
		}
		if len(t.SS) != 0 && len(t.SS) != n {
			return ffErr(F, "template %s: %d SS patterns for %d beads", t.Name, len(t.SS), n)
		}
		for _, r := range t.refs {
			if !beadnames[r.Name] {
				return ffErr(F, "template %s uses bead %s, which no residue defines", t.Name, r.Name)
			}
		}
		if t.Func <= 0 {
			return ffErr(F, "template %s: invalid function type %d", t.Name, t.Func)
		}
		if t.K < 0 {
			return ffErr(F, "template %s: negative force constant", t.Name)
		}
		if t.kind == cg.Elastic {
			return ffErr(F, "template %s: elastic terms come from the elastic network parameters", t.Name)
		}
	}
	for i, r := range F.TypeRules {
		if r == nil || r.Bead == "" || r.Type == "" {
			return ffErr(F, "type rule %d needs a bead and a type", i)
		}
	}
	for _, t := range []TerminusSpec{F.Termini.N, F.Termini.C} {
		if t.Bead != "" && !beadnames[t.Bead] {
			return ffErr(F, "terminus bead %s not defined by any residue", t.Bead)
		}
	}
	if err := F.Elastic.Validate(); err != nil {
		return ffErr(F, "%v", err)
	}
	return nil
}

// Residue returns the template for the residue name given, resolving aliases.
func (F *ForceField) Residue(name string) (*ResidueTemplate, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if r, ok := F.byname[name]; ok {
		return r, true
	}
	r, ok := F.byname[cg.CanonicalResidue(name)]
	return r, ok
}

// BeadType returns the type for bead in residue resname with secondary structure l:
// that of the first matching type rule, or def.
func (F *ForceField) BeadType(resname, bead string, l cg.Label, def string) string {
	for _, r := range F.TypeRules {
		if r.Bead != bead {
			continue
		}
		if MatchResidue(r.Residue, resname) && MatchSS(r.SS, l) {
			return r.Type
		}
	}
	return def
}

// BeadMass returns the mass for a bead spec, or 0 if it has to be obtained from its atoms.
func (F *ForceField) BeadMass(b *BeadSpec) float64 {
	if b.Mass > 0 {
		return b.Mass
	}
	return F.Mass
}

// MatchResidue matches a residue name against a pattern: "" or "*" match anything, otherwise
// the pattern is a comma-separated list of names. A leading "!" negates it.
func MatchResidue(pattern, name string) bool {
	pattern = strings.TrimSpace(pattern)
	neg := strings.HasPrefix(pattern, "!")
	pattern = strings.TrimPrefix(pattern, "!")
	if pattern == "" || pattern == "*" {
		return !neg
	}
	name = strings.ToUpper(name)
	canon := cg.CanonicalResidue(name)
	for _, p := range strings.Split(pattern, ",") {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == name || p == canon {
			return !neg
		}
	}
	return neg
}

// MatchSS matches a label against a set of DSSP letters, like "HGI". "" and "*" match anything,
// a leading "!" negates the set.
func MatchSS(pattern string, l cg.Label) bool {
	neg := strings.HasPrefix(pattern, "!")
	pattern = strings.TrimPrefix(pattern, "!")
	if pattern == "" || pattern == "*" {
		return !neg
	}
	in := strings.IndexByte(pattern, l.Code()) >= 0
	return in != neg
}

// Copy returns a deep copy of the force field.
func (F *ForceField) Copy() *ForceField {
	ret := *F
	ret.Residues = make([]*ResidueTemplate, len(F.Residues))
	for i, r := range F.Residues {
		nr := *r
		nr.Aliases = append([]string(nil), r.Aliases...)
		nr.Beads = make([]*BeadSpec, len(r.Beads))
		for j, b := range r.Beads {
			nb := *b
			nb.Atoms = append([]string(nil), b.Atoms...)
			nb.Extra = append([]string(nil), b.Extra...)
			nb.atoms = append([]AtomRef(nil), b.atoms...)
			nb.extra = append([]AtomRef(nil), b.extra...)
			nr.Beads[j] = &nb
		}
		ret.Residues[i] = &nr
	}
	ret.Templates = make([]*Template, len(F.Templates))
	for i, t := range F.Templates {
		nt := *t
		nt.Beads = append([]string(nil), t.Beads...)
		nt.Residues = append([]string(nil), t.Residues...)
		nt.SS = append([]string(nil), t.SS...)
		nt.refs = append([]AtomRef(nil), t.refs...)
		ret.Templates[i] = &nt
	}
	ret.TypeRules = make([]*TypeRule, len(F.TypeRules))
	for i, r := range F.TypeRules {
		nr := *r
		ret.TypeRules[i] = &nr
	}
	ret.Elastic.Beads = append([]string(nil), F.Elastic.Beads...)
	ret.byname = nil
	if F.byname != nil {
		ret.byname = make(map[string]*ResidueTemplate, len(F.byname))
		for i, r := range F.Residues {
			for _, n := range append([]string{r.Name}, r.Aliases...) {
				ret.byname[strings.ToUpper(n)] = ret.Residues[i]
			}
		}
	}
	return &ret
}
