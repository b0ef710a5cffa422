package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 4, cfg.Minimax.Depth)
	assert.Equal(t, 3123, cfg.API.Port)
}

func TestMergeEnvOverrides(t *testing.T) {
	cfg := Default()
	t.Setenv("HYPERCHESS_MINIMAX_DEPTH", "99")
	t.Setenv("HYPERCHESS_MCTS_DEPTH", "101")
	t.Setenv("HYPERCHESS_COMPUTE_CONCURRENCY", "42")
	t.Setenv("HYPERCHESS_API_PORT", "8888")

	cfg.mergeEnv()

	assert.Equal(t, 99, cfg.Minimax.Depth)
	assert.Equal(t, 101, cfg.MCTS.Depth)
	assert.Equal(t, 42, cfg.Compute.Concurrency)
	assert.Equal(t, 8888, cfg.API.Port)
}

func TestInvalidEnvVarsIgnored(t *testing.T) {
	cfg := Default()
	t.Setenv("HYPERCHESS_MINIMAX_DEPTH", "not_a_number")

	cfg.mergeEnv()

	assert.Equal(t, 4, cfg.Minimax.Depth)
}

func TestMergeEnvSkipsMCTSWhenNil(t *testing.T) {
	cfg := Default()
	cfg.MCTS = nil
	t.Setenv("HYPERCHESS_MCTS_DEPTH", "101")

	assert.NotPanics(t, func() { cfg.mergeEnv() })
	assert.Nil(t, cfg.MCTS)
}

func TestLoadFallsBackToDefaultsWithoutFile(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 3123, cfg.API.Port)
}
