package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.toml")
	data := []byte("zig_threshold_pct = 3.5\nbatch_parallelism = 4\nlog_level = \"debug\"\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	opts, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, opts.ZigThresholdPct)
	assert.Equal(t, 4, opts.BatchParallelism)
	assert.Equal(t, "debug", opts.LogLevel)
	// Unset fields fall back to defaults.
	assert.Equal(t, Default().Epsilon, opts.Epsilon)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	opts := Options{ZigThresholdPct: -1, BatchParallelism: -2, Epsilon: 0}.Normalize()
	def := Default()
	assert.Equal(t, def.ZigThresholdPct, opts.ZigThresholdPct)
	assert.Equal(t, def.BatchParallelism, opts.BatchParallelism)
	assert.Equal(t, def.Epsilon, opts.Epsilon)
	assert.Equal(t, def.LogLevel, opts.LogLevel)
}
