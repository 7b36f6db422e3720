// Copyright (c) 2020 The JaxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/jaxnet/spvproof/chainweb"
	"github.com/jaxnet/spvproof/corelog"
)

const (
	defaultConfigFilename = "spvproof.yaml"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
)

// ChainEdge names one undirected edge of the braid's fixed adjacency
// graph, as it appears in the YAML config file.
type ChainEdge struct {
	A chainweb.ChainID `yaml:"a"`
	B chainweb.ChainID `yaml:"b"`
}

// Config is the full configuration of a spvproof node: where it keeps its
// header/payload database, the braid topology it verifies proofs against,
// and how it logs.
type Config struct {
	DataDir  string         `yaml:"data_dir"`
	LogLevel string         `yaml:"log_level"`
	Log      corelog.Config `yaml:"log"`
	Chains   []ChainEdge    `yaml:"chains"`
}

// Default returns the configuration a fresh node starts from: a
// three-chain triangle braid logging at info level to the console, with
// file logging off.
func Default() Config {
	return Config{
		DataDir:  defaultDataDirname,
		LogLevel: defaultLogLevel,
		Log:      corelog.Config{}.Default(),
		Chains: []ChainEdge{
			{A: "0", B: "1"},
			{A: "1", B: "2"},
			{A: "0", B: "2"},
		},
	}
}

// Load reads and parses a YAML config file at path, filling any field the
// file omits from Default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config: parse yaml")
	}
	return cfg, nil
}

// Graph builds the chainweb.ChainGraph described by Chains.
func (c Config) Graph() *chainweb.ChainGraph {
	edges := make([][2]chainweb.ChainID, len(c.Chains))
	for i, e := range c.Chains {
		edges[i] = [2]chainweb.ChainID{e.A, e.B}
	}
	return chainweb.NewChainGraph(edges)
}

// ChainIDs returns every chain named by an edge in Chains, in canonical
// order, for components (like a fixture loader) that need the full vertex
// set rather than just the edge list.
func (c Config) ChainIDs() []chainweb.ChainID {
	return c.Graph().Chains()
}

// LogLevelOrDefault parses LogLevel, falling back to info on a bad or
// empty value rather than failing startup over a logging knob.
func (c Config) LogLevelOrDefault() zerolog.Level {
	if c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
