package cmd

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/sandwich-sim/sandwich-sim/sim"
)

var (
	// CLI flags for the simulation run
	seed            int64   // Seed for all random streams
	arrivalRate     float64 // Mean client inter-arrival time (virtual seconds)
	numProxies      int     // Bootstrap proxy population size
	censorBootstrap float64 // Censor reconnaissance delay before first block
	traceRun        bool    // Emit human-readable progress lines
	maliciousProb   float64 // Chance an arriving client works for the censor
	logLevel        string  // Log verbosity level

	// CLI flags for the model constants
	queueSize    int     // Per-proxy waiting-room capacity
	serviceTime  float64 // Mean per-client service time
	blockingRate float64 // Censor mean inter-block delay
	victimSet    int     // Panic-mode victim set divisor

	outputPath   string // Optional path for the JSON event log
	scenarioFile string // Optional YAML file of scenario presets
	scenario     string // Preset name within the scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "sandwich-sim",
	Short: "Discrete-event simulator for proxy distribution under censorship",
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the proxy distribution simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := buildConfig()
		if scenarioFile != "" {
			preset := GetScenarioConfig(scenarioFile, scenario)
			if preset == nil {
				logrus.Fatalf("Scenario %q not found in %s", scenario, scenarioFile)
			}
			applyScenario(&cfg, preset)
		}

		logrus.Infof("Starting simulation with %d proxies, arrival rate %g, censor bootstrap %g, seed %d",
			cfg.NumProxies, cfg.ClientArrivalRate, cfg.CensorBootstrap, cfg.Seed)

		records, err := sim.Run(cfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		sim.Summarize(records).Print()

		if outputPath != "" {
			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				logrus.Fatalf("Unable to encode event log: %v", err)
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				logrus.Fatalf("Unable to write event log: %v", err)
			}
			logrus.Infof("Wrote %d events to %s", len(records), outputPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// buildConfig maps the CLI flags onto a sim.Config.
func buildConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Seed = seed
	cfg.ClientArrivalRate = arrivalRate
	cfg.NumProxies = numProxies
	cfg.CensorBootstrap = censorBootstrap
	cfg.Trace = traceRun
	cfg.MaliciousProbability = maliciousProb
	cfg.QueueSize = queueSize
	cfg.ServiceTime = serviceTime
	cfg.BlockingRate = blockingRate
	cfg.VictimSetDivisor = victimSet
	return cfg
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for all random streams")
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", defaults.ClientArrivalRate, "Mean client inter-arrival time (virtual seconds)")
	runCmd.Flags().IntVar(&numProxies, "num-proxies", defaults.NumProxies, "Bootstrap proxy population size")
	runCmd.Flags().Float64Var(&censorBootstrap, "censor-bootstrap", defaults.CensorBootstrap, "Censor reconnaissance delay before first block")
	runCmd.Flags().BoolVar(&traceRun, "trace", defaults.Trace, "Emit human-readable progress lines")
	runCmd.Flags().Float64Var(&maliciousProb, "malicious-probability", defaults.MaliciousProbability, "Chance an arriving client works for the censor")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Model constants
	runCmd.Flags().IntVar(&queueSize, "queue-size", defaults.QueueSize, "Per-proxy waiting-room capacity")
	runCmd.Flags().Float64Var(&serviceTime, "service-time", defaults.ServiceTime, "Mean per-client service time (virtual seconds)")
	runCmd.Flags().Float64Var(&blockingRate, "blocking-rate", defaults.BlockingRate, "Censor mean inter-block delay (virtual seconds)")
	runCmd.Flags().IntVar(&victimSet, "victim-set", defaults.VictimSetDivisor, "Panic-mode victim set divisor")

	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the event log as JSON to this path")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "YAML file of scenario presets")
	runCmd.Flags().StringVar(&scenario, "scenario", "", "Scenario preset name to load from --scenario-file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
