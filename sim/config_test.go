package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_CarriesReferenceConstants(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.QueueSize)
	assert.Equal(t, 1.0, cfg.ServiceTime)
	assert.Equal(t, 1.0, cfg.BlockingRate)
	assert.Equal(t, 2, cfg.VictimSetDivisor)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero proxies", func(c *Config) { c.NumProxies = 0 }},
		{"negative arrival rate", func(c *Config) { c.ClientArrivalRate = -1 }},
		{"malicious probability above 1", func(c *Config) { c.MaliciousProbability = 1.5 }},
		{"negative bootstrap", func(c *Config) { c.CensorBootstrap = -0.1 }},
		{"zero queue size", func(c *Config) { c.QueueSize = 0 }},
		{"zero service time", func(c *Config) { c.ServiceTime = 0 }},
		{"zero blocking rate", func(c *Config) { c.BlockingRate = 0 }},
		{"zero victim divisor", func(c *Config) { c.VictimSetDivisor = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
