package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadUsesDefaultsWhenEnvUnset(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, 5, cfg.DailyFreeLimit)
	assert.Equal(t, 300*time.Second, cfg.PipelineDeadline)
}

func TestLoadReadsOverridesFromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("DAILY_FREE_LIMIT", "10")
	t.Setenv("PIPELINE_DEADLINE_MS", "1500")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, 10, cfg.DailyFreeLimit)
	assert.Equal(t, 1500*time.Millisecond, cfg.PipelineDeadline)
}

func TestGetEnvIntFallsBackOnUnparseableValue(t *testing.T) {
	t.Setenv("WRITER_CHUNK_SIZE_MAX", "not-a-number")
	cfg := Load()
	assert.Equal(t, 5, cfg.WriterChunkSizeMax)
}

func TestGetEnvFloatFallsBackOnUnparseableValue(t *testing.T) {
	t.Setenv("GATEKEEPER_REDUNDANCY_RATIO", "not-a-float")
	cfg := Load()
	assert.Equal(t, 0.7, cfg.GatekeeperRedundancyRatio)
}

func TestLoadDefaultsConsecutiveRepeatLimitAndLLMDeadline(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 3, cfg.GatekeeperConsecutiveRepeatLimit)
	assert.Equal(t, 60*time.Second, cfg.LLMDeadline)
}
