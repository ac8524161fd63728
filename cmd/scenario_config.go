package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/sandwich-sim/sandwich-sim/sim"
)

// ScenarioConfig is the YAML shape of a scenario presets file.
type ScenarioConfig struct {
	Scenarios map[string]Scenario `yaml:"scenarios"`
}

// Scenario is one named parameter preset. Zero-valued fields fall back to
// the flag/default value rather than overriding it.
type Scenario struct {
	ClientArrivalRate float64 `yaml:"client_arrival_rate"`
	NumProxies        int     `yaml:"num_proxies"`
	CensorBootstrap   float64 `yaml:"censor_bootstrap"`
	QueueSize         int     `yaml:"queue_size"`
	ServiceTime       float64 `yaml:"service_time"`
	BlockingRate      float64 `yaml:"blocking_rate"`
	VictimSet         int     `yaml:"victim_set"`
}

// GetScenarioConfig loads the named scenario from a YAML presets file.
// Returns nil if the scenario does not exist.
func GetScenarioConfig(path string, name string) *Scenario {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Fatalf("Unable to read scenario file %s: %v", path, err)
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Fatalf("Unable to parse scenario file %s: %v", path, err)
	}

	preset, ok := cfg.Scenarios[name]
	if !ok {
		return nil
	}
	logrus.Infof("Using preset scenario %v", name)
	return &preset
}

// applyScenario overrides cfg with every non-zero preset field.
func applyScenario(cfg *sim.Config, preset *Scenario) {
	if preset.ClientArrivalRate > 0 {
		cfg.ClientArrivalRate = preset.ClientArrivalRate
	}
	if preset.NumProxies > 0 {
		cfg.NumProxies = preset.NumProxies
	}
	if preset.CensorBootstrap > 0 {
		cfg.CensorBootstrap = preset.CensorBootstrap
	}
	if preset.QueueSize > 0 {
		cfg.QueueSize = preset.QueueSize
	}
	if preset.ServiceTime > 0 {
		cfg.ServiceTime = preset.ServiceTime
	}
	if preset.BlockingRate > 0 {
		cfg.BlockingRate = preset.BlockingRate
	}
	if preset.VictimSet > 0 {
		cfg.VictimSetDivisor = preset.VictimSet
	}
}
