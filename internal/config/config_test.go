package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		HTTPPort:             "8080",
		JWTSecret:            strings.Repeat("s", 32),
		GrowthRateGramPerDay: 2.5,
		TargetWeightGram:     150,
		SurvivalRate:         0.85,
		StockingWeightGram:   5,
		FeedCostPerKg:        16000,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	c := validConfig()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())

	c = validConfig()
	c.JWTSecret = "pendek"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.GrowthRateGramPerDay = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.SurvivalRate = 1.2
	assert.Error(t, c.Validate())

	c = validConfig()
	c.FeedCostPerKg = -1
	assert.Error(t, c.Validate())

	// Biaya pakan 0 sah: kolam yang pakannya belum dicatat.
	c = validConfig()
	c.FeedCostPerKg = 0
	assert.NoError(t, c.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.InDelta(t, 2.5, cfg.GrowthRateGramPerDay, 1e-9)
	assert.InDelta(t, 150.0, cfg.TargetWeightGram, 1e-9)
	assert.InDelta(t, 0.85, cfg.SurvivalRate, 1e-9)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", strings.Repeat("s", 32))
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("GROWTH_RATE_GRAM_PER_DAY", "3.0")
	t.Setenv("SURVIVAL_RATE", "0.9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.InDelta(t, 3.0, cfg.GrowthRateGramPerDay, 1e-9)
	assert.InDelta(t, 0.9, cfg.SurvivalRate, 1e-9)
}
