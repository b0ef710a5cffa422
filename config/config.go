// Package config loads engine and API settings from Config.toml, overlaid
// by HYPERCHESS_-prefixed environment variables, falling back to built-in
// defaults whenever the file is absent or unparsable.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config is the full set of tunables for one running server.
type Config struct {
	Minimax MinimaxConfig `toml:"minimax"`
	MCTS    *MCTSConfig   `toml:"mcts"`
	Compute ComputeConfig `toml:"compute"`
	API     APIConfig     `toml:"api"`
}

// MinimaxConfig bounds the alpha-beta strategy.
type MinimaxConfig struct {
	Depth int `toml:"depth"`
}

// MCTSConfig bounds the MCTS strategy. When it is nil, computer seats
// use the alpha-beta strategy instead of MCTS.
type MCTSConfig struct {
	Depth         int     `toml:"depth"`
	Iterations    int     `toml:"iterations"`
	IterPerThread float64 `toml:"iter_per_thread"`
}

// ComputeConfig bounds search wall-clock and worker parallelism.
type ComputeConfig struct {
	Minutes     float64 `toml:"minutes"`
	Concurrency int     `toml:"concurrency"`
}

// APIConfig configures the HTTP listener.
type APIConfig struct {
	Port int `toml:"port"`
}

// Default returns the built-in configuration used when Config.toml is
// absent or fails to parse.
func Default() Config {
	return Config{
		Minimax: MinimaxConfig{Depth: 4},
		MCTS: &MCTSConfig{
			Depth:         50,
			Iterations:    50,
			IterPerThread: 5.0,
		},
		Compute: ComputeConfig{Minutes: 2.0, Concurrency: 2},
		API:     APIConfig{Port: 3123},
	}
}

const configPath = "Config.toml"

// Load reads Config.toml from the current directory, falling back to
// Default on any read or parse error, then overlays HYPERCHESS_-prefixed
// environment variables. Load never returns an error — a malformed or
// missing config file degrades to defaults rather than failing startup.
func Load() Config {
	cfg := Default()
	if _, err := os.Stat(configPath); err != nil {
		log.Printf("%s not found, using defaults", configPath)
	} else {
		var fileCfg Config
		if _, err := toml.DecodeFile(configPath, &fileCfg); err != nil {
			log.Printf("failed to parse %s, using defaults: %v", configPath, err)
		} else {
			cfg = fileCfg
		}
	}
	cfg.mergeEnv()
	return cfg
}

// mergeEnv overlays HYPERCHESS_-prefixed environment variables onto cfg.
// A present but unparsable value is silently ignored, leaving the
// file/default value in place.
func (c *Config) mergeEnv() {
	if v, ok := envInt("HYPERCHESS_MINIMAX_DEPTH"); ok {
		c.Minimax.Depth = v
	}
	if c.MCTS != nil {
		if v, ok := envInt("HYPERCHESS_MCTS_DEPTH"); ok {
			c.MCTS.Depth = v
		}
		if v, ok := envInt("HYPERCHESS_MCTS_ITERATIONS"); ok {
			c.MCTS.Iterations = v
		}
		if v, ok := envFloat("HYPERCHESS_MCTS_ITER_PER_THREAD"); ok {
			c.MCTS.IterPerThread = v
		}
	}
	if v, ok := envFloat("HYPERCHESS_COMPUTE_MINUTES"); ok {
		c.Compute.Minutes = v
	}
	if v, ok := envInt("HYPERCHESS_COMPUTE_CONCURRENCY"); ok {
		c.Compute.Concurrency = v
	}
	if v, ok := envInt("HYPERCHESS_API_PORT"); ok {
		c.API.Port = v
	}
}

func envInt(key string) (int, bool) {
	raw, present := os.LookupEnv(key)
	if !present {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func envFloat(key string) (float64, bool) {
	raw, present := os.LookupEnv(key)
	if !present {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
