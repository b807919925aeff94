package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Validates(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfig_Validate_RejectsOutOfDomainValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero horizon", func(c *Config) { c.Horizon = 0 }},
		{"negative max wait", func(c *Config) { c.MaxWait = -1 }},
		{"negative initial passengers", func(c *Config) { c.InitialPassengers = -5 }},
		{"zero mean interarrival", func(c *Config) { c.MeanInterarrival = 0 }},
		{"negative bag surcharge", func(c *Config) { c.BagSurcharge = -0.5 }},
		{"zero registration capacity", func(c *Config) { c.Resources.Registration = 0 }},
		{"negative boarding capacity", func(c *Config) { c.Resources.Boarding = -2 }},
		{"probability above one", func(c *Config) { c.Probabilities.Customs = 1.5 }},
		{"negative probability", func(c *Config) { c.Probabilities.Restaurant = -0.1 }},
		{"negative service min", func(c *Config) { c.ServiceTimes.Security.Min = -1 }},
		{"service max below min", func(c *Config) { c.ServiceTimes.Restaurant = TimeRange{Min: 10, Max: 5} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfig_Clone_IsIndependent(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Resources.Security = 1

	if cfg.Resources.Security == 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	// GIVEN a config file that only overrides two fields
	path := filepath.Join(t.TempDir(), "airport.yaml")
	content := "horizon: 100\nresources:\n  security: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN it is loaded
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	// THEN the overrides apply and everything else keeps its default
	assert.Equal(t, 100.0, cfg.Horizon)
	assert.Equal(t, 5, cfg.Resources.Security)
	assert.Equal(t, 60, cfg.Resources.Registration)
	assert.Equal(t, 180.0, cfg.MaxWait)
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: -10\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "horizon")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("horizon: [not a number\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
