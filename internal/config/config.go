/*
 * config.go, part of goCG.
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

// Package config loads the settings of a gocg run from, in increasing order of precedence,
// built-in defaults, a gocg.yaml (or json, toml) file, GOCG_* environment variables and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rmera/gocg/ff"
	"github.com/rmera/gocg/pipeline"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the configuration of a run. Keys are the same as the
// command-line flags.
type Config struct {
	Input          string  `mapstructure:"input"`
	ForceField     string  `mapstructure:"forcefield"`
	FFDir          string  `mapstructure:"ff-dir"`
	Elastic        string  `mapstructure:"elastic"` //"default", "on" or "off"
	ElasticUpper   float64 `mapstructure:"elastic-upper"`
	ElasticK       float64 `mapstructure:"elastic-k"`
	CrossChain     bool    `mapstructure:"cross-chain"`
	SS             string  `mapstructure:"ss"`
	DSSP           string  `mapstructure:"dssp"`
	PhiPsi         bool    `mapstructure:"phi-psi"`
	Centroid       bool    `mapstructure:"centroid"`
	NeutralTermini bool    `mapstructure:"neutral-termini"`
	Hydrogens      bool    `mapstructure:"hydrogens"`
	AltLoc         string  `mapstructure:"altloc"`
	Cpus           int     `mapstructure:"cpus"`
	Merge          bool    `mapstructure:"merge"`
	Output         string  `mapstructure:"output"`
	Top            string  `mapstructure:"top"`
	Gro            string  `mapstructure:"gro"`
	PDB            string  `mapstructure:"cg-pdb"`
	Plot           bool    `mapstructure:"plot"`
	Verbose        bool    `mapstructure:"verbose"`
}

// EnvPrefix is the prefix of the environment variables read. Dashes in keys
// become underscores: GOCG_CROSS_CHAIN.
const EnvPrefix = "GOCG"

// FileName is the name, without extension, of the configuration file searched
// in the working directory and in the user configuration directory.
const FileName = "gocg"

// every key needs a default, or Unmarshal would ignore its environment variable.
func setDefaults(v *viper.Viper) {
	for _, k := range []string{"input", "ff-dir", "ss", "dssp", "cg-pdb"} {
		v.SetDefault(k, "")
	}
	for _, k := range []string{"elastic-upper", "elastic-k"} {
		v.SetDefault(k, 0.0)
	}
	for _, k := range []string{"cross-chain", "phi-psi", "centroid", "neutral-termini", "hydrogens", "merge", "plot", "verbose"} {
		v.SetDefault(k, false)
	}
	v.SetDefault("forcefield", "martini22")
	v.SetDefault("elastic", "default")
	v.SetDefault("altloc", "A")
	v.SetDefault("cpus", runtime.NumCPU())
	v.SetDefault("output", ".")
	v.SetDefault("top", "topol.top")
	v.SetDefault("gro", "cg.gro")
}

// Load reads the configuration. If path is empty, gocg.yaml (or .json, .toml) is searched
// for, and its absence is not an error. flags, if not nil, are bound so that flags the user set
// override everything else.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "gocg"))
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("config: binding flags: %w", err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}
	C := new(Config)
	if err := v.Unmarshal(C); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := C.Validate(); err != nil {
		return nil, err
	}
	return C, nil
}

// Validate checks the values that can be checked without reading any file.
func (C *Config) Validate() error {
	if _, err := C.ElasticMode(); err != nil {
		return err
	}
	if C.Cpus < 0 {
		return fmt.Errorf("config: cpus must not be negative, got %d", C.Cpus)
	}
	if C.ElasticUpper < 0 || C.ElasticK < 0 {
		return fmt.Errorf("config: elastic-upper and elastic-k must not be negative")
	}
	if len(C.AltLoc) > 1 {
		return fmt.Errorf("config: altloc must be a single character, got %q", C.AltLoc)
	}
	if C.SS != "" && C.DSSP != "" {
		return fmt.Errorf("config: ss and dssp are mutually exclusive")
	}
	return nil
}

// ElasticMode returns the elastic network mode set.
func (C *Config) ElasticMode() (pipeline.ElasticMode, error) {
	switch strings.ToLower(C.Elastic) {
	case "", "default":
		return pipeline.ElasticDefault, nil
	case "on", "true", "yes":
		return pipeline.ElasticOn, nil
	case "off", "false", "no":
		return pipeline.ElasticOff, nil
	}
	return 0, fmt.Errorf("config: elastic must be default, on or off, got %q", C.Elastic)
}

// Options builds the pipeline options for the configuration. Force fields are taken from reg.
// The elastic network parameters given replace those of the force field, which is then
// passed by value. Secondary structure overrides are not set here, as they may need
// reading the input.
func (C *Config) Options(reg *ff.Registry, log *zap.Logger) (*pipeline.Options, error) {
	O := pipeline.DefaultOptions()
	O.Registry(reg)
	O.ForceFieldName(C.ForceField)
	mode, err := C.ElasticMode()
	if err != nil {
		return nil, err
	}
	O.Elastic(mode)
	if C.ElasticUpper > 0 || C.ElasticK > 0 {
		F, err := reg.Load(C.ForceField)
		if err != nil {
			return nil, err
		}
		if C.ElasticUpper > 0 {
			F.Elastic.Upper = C.ElasticUpper
		}
		if C.ElasticK > 0 {
			F.Elastic.K = C.ElasticK
		}
		O.ForceField(F)
	}
	O.CrossChain(C.CrossChain)
	O.Centroid(C.Centroid)
	O.NeutralTermini(C.NeutralTermini)
	if C.Cpus > 0 {
		O.Cpus(C.Cpus)
	}
	O.SSOptions().PhiPsi(C.PhiPsi)
	if log != nil {
		O.Logger(log)
	}
	return O, nil
}
