package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10000, cfg.Simulation.Trials)
	assert.Equal(t, 2500, cfg.Simulation.CurveTrials)
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.Equal(t, "localhost:8484", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestParse(t *testing.T) {
	src := `
simulation {
  trials       = 50000
  curve_trials = 5000
  workers      = 4
  seed         = 12345
}

server {
  listen    = "0.0.0.0:9000"
  log_level = "debug"
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, 50000, cfg.Simulation.Trials)
	assert.Equal(t, 5000, cfg.Simulation.CurveTrials)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, int64(12345), cfg.Simulation.Seed)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	src := `
simulation {
  trials = 25000
}
`
	cfg, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, 25000, cfg.Simulation.Trials)
	assert.Equal(t, 2500, cfg.Simulation.CurveTrials)
	assert.Equal(t, "localhost:8484", cfg.Server.Listen)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`simulation { trials = `), "broken.hcl")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation {
  workers = 8
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Simulation.Workers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
