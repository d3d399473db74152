package config

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, cfg.RelaxationEpsilon, 1e-8)
	assert.Equal(t, cfg.StalenessThreshold, 5*time.Minute)
	assert.Equal(t, len(cfg.Currencies), 5)
}

func TestConfigFromOptions_OverridesDefaults(t *testing.T) {
	cfg, err := ConfigFromOptions(map[string][]string{
		"relaxation_epsilon":  {"1e-9"},
		"staleness_threshold": {"10m"},
		"dp_granularity":      {"0.01"},
		"currencies":          {"USD,EUR"},
	})
	assert.NoError(t, err)
	assert.Equal(t, cfg.RelaxationEpsilon, 1e-9)
	assert.Equal(t, cfg.StalenessThreshold, 10*time.Minute)
	assert.Equal(t, cfg.DP.Granularity.String(), "0.01")
	assert.Equal(t, cfg.Currencies, []string{"USD", "EUR"})
}

func TestConfigFromOptions_InvalidValuesRejected(t *testing.T) {
	_, err := ConfigFromOptions(map[string][]string{"relaxation_epsilon": {"not-a-number"}})
	assert.Error(t, err)

	_, err = ConfigFromOptions(map[string][]string{"staleness_threshold": {"not-a-duration"}})
	assert.Error(t, err)

	_, err = ConfigFromOptions(map[string][]string{"dp_granularity": {"not-a-decimal"}})
	assert.Error(t, err)
}

func TestConfig_ContextRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.RelaxationEpsilon = 42

	ctx := cfg.WithContext(context.Background())
	got := FromContext(ctx)
	assert.Equal(t, got.RelaxationEpsilon, 42.0)

	assert.Equal(t, FromContext(context.Background()).RelaxationEpsilon, 1e-8)
}
