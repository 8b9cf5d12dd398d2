// Package config loads trainer profiles from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete trainer configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Server     *ServerSettings     `hcl:"server,block"`
}

// SimulationSettings controls Monte Carlo defaults
type SimulationSettings struct {
	Trials      int   `hcl:"trials,optional"`
	CurveTrials int   `hcl:"curve_trials,optional"`
	Workers     int   `hcl:"workers,optional"`
	Seed        int64 `hcl:"seed,optional"` // 0 seeds from the wall clock
}

// ServerSettings controls the equity WebSocket server
type ServerSettings struct {
	Listen   string `hcl:"listen,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// Default returns the built-in trainer profile
func Default() *Config {
	return &Config{
		Simulation: &SimulationSettings{
			Trials:      10000,
			CurveTrials: 2500,
			Workers:     1,
			Seed:        0,
		},
		Server: &ServerSettings{
			Listen:   "localhost:8484",
			LogLevel: "info",
		},
	}
}

// Load reads an HCL profile from path, layered over the defaults. A missing
// block keeps its default settings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes HCL config bytes, layered over the defaults
func Parse(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing config: %s", diags.Error())
	}

	var loaded Config
	if diags := gohcl.DecodeBody(file.Body, nil, &loaded); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}

	cfg := Default()
	if loaded.Simulation != nil {
		merged := *cfg.Simulation
		if loaded.Simulation.Trials > 0 {
			merged.Trials = loaded.Simulation.Trials
		}
		if loaded.Simulation.CurveTrials > 0 {
			merged.CurveTrials = loaded.Simulation.CurveTrials
		}
		if loaded.Simulation.Workers > 0 {
			merged.Workers = loaded.Simulation.Workers
		}
		if loaded.Simulation.Seed != 0 {
			merged.Seed = loaded.Simulation.Seed
		}
		cfg.Simulation = &merged
	}
	if loaded.Server != nil {
		merged := *cfg.Server
		if loaded.Server.Listen != "" {
			merged.Listen = loaded.Server.Listen
		}
		if loaded.Server.LogLevel != "" {
			merged.LogLevel = loaded.Server.LogLevel
		}
		cfg.Server = &merged
	}

	return cfg, nil
}
