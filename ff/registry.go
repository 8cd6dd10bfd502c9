/*
 * registry.go, part of goCG.
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

package ff

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	cg "github.com/rmera/gocg"
	"github.com/spf13/viper"
)

// Registry maps names to force fields. Each Load returns an independent copy,
// so callers can tune the copy without affecting other runs.
type Registry struct {
	mu  sync.RWMutex
	ffs map[string]*ForceField
}

// NewRegistry returns a registry with the built-in force fields.
func NewRegistry() *Registry {
	R := &Registry{ffs: make(map[string]*ForceField)}
	for _, f := range []func() *ForceField{Martini22, Elnedyn22, CA} {
		if err := R.Register(f()); err != nil {
			panic(err) //the built-ins must be valid.
		}
	}
	return R
}

// Default is the registry used when none is given.
var Default = NewRegistry()

// Register prepares, validates and adds F to the registry. Names can't be registered twice.
func (R *Registry) Register(F *ForceField) error {
	if err := F.Prepare(); err != nil {
		return cg.Decorate(err, "Registry.Register")
	}
	name := strings.ToLower(F.Name)
	R.mu.Lock()
	defer R.mu.Unlock()
	if _, ok := R.ffs[name]; ok {
		return ffErr(F, "a force field with that name is already registered")
	}
	R.ffs[name] = F.Copy()
	return nil
}

// Load returns a copy of the force field registered under name.
func (R *Registry) Load(name string) (*ForceField, error) {
	R.mu.RLock()
	defer R.mu.RUnlock()
	F, ok := R.ffs[strings.ToLower(name)]
	if !ok {
		return nil, cg.NewError(cg.InvalidForceFieldConfig, "", "", "unknown force field %q (available: %s)", name, strings.Join(R.names(), ", "))
	}
	return F.Copy(), nil
}

// Names returns the registered names, sorted.
func (R *Registry) Names() []string {
	R.mu.RLock()
	defer R.mu.RUnlock()
	return R.names()
}

func (R *Registry) names() []string {
	ret := make([]string, 0, len(R.ffs))
	for k := range R.ffs {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// supported force field file extensions
var ffExts = map[string]bool{".json": true, ".yaml": true, ".yml": true, ".toml": true}

// ScanDir reads and registers all the force field files (json, yaml or toml) in dir.
// It returns the names registered. The first invalid file stops the scan.
func (R *Registry) ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ScanDir: %w", err)
	}
	var ret []string
	for _, e := range entries {
		if e.IsDir() || !ffExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		F, err := FromFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return ret, cg.Decorate(err, "ScanDir")
		}
		if err := R.Register(F); err != nil {
			return ret, cg.Decorate(err, "ScanDir: "+e.Name())
		}
		ret = append(ret, F.Name)
	}
	return ret, nil
}

// FromFile reads a force field from a json, yaml or toml file. If the file doesn't give
// a name, the file name without extension is used. The force field is prepared and validated.
func FromFile(path string) (*ForceField, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, cg.NewError(cg.InvalidForceFieldConfig, "", "", "reading %s: %v", path, err)
	}
	F := new(ForceField)
	if err := v.Unmarshal(F); err != nil {
		return nil, cg.NewError(cg.InvalidForceFieldConfig, "", "", "decoding %s: %v", path, err)
	}
	if F.Name == "" {
		F.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := F.Prepare(); err != nil {
		return nil, cg.Decorate(err, "FromFile: "+path)
	}
	return F, nil
}
