// Package config holds the kernel's tuning knobs. The kernel computes with
// whatever it is handed; these options only set defaults and operational
// behavior (parallelism, log verbosity), never the numeric contract.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Options struct {
	// ZigThresholdPct is the default percentage reversal for zigzag pivot
	// detection when a formula does not name one.
	ZigThresholdPct float64 `toml:"zig_threshold_pct"`
	// BatchParallelism bounds concurrent series evaluation; 0 means one
	// worker per CPU.
	BatchParallelism int `toml:"batch_parallelism"`
	// Epsilon is the comparison slack used by diagnostics when deciding
	// whether two derived series agree.
	Epsilon  float64 `toml:"epsilon"`
	LogLevel string  `toml:"log_level"`
}

func Default() Options {
	return Options{
		ZigThresholdPct:  5,
		BatchParallelism: 0,
		Epsilon:          1e-9,
		LogLevel:         "info",
	}
}

// Normalize fills zero-valued fields with defaults so a partially specified
// file still yields a usable set of options.
func (o Options) Normalize() Options {
	def := Default()
	if o.ZigThresholdPct <= 0 {
		o.ZigThresholdPct = def.ZigThresholdPct
	}
	if o.BatchParallelism < 0 {
		o.BatchParallelism = def.BatchParallelism
	}
	if o.Epsilon <= 0 {
		o.Epsilon = def.Epsilon
	}
	if o.LogLevel == "" {
		o.LogLevel = def.LogLevel
	}
	return o
}

// Load reads options from a TOML file and normalizes them.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var opts Options
	if err := toml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return opts.Normalize(), nil
}
