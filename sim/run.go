package sim

import "github.com/sandwich-sim/sandwich-sim/sim/trace"

// Run executes one complete simulation and returns the recorded event
// sequence: the distributor's log followed by the censor's log, each in
// append order. The result is deterministic for a fixed Config.
func Run(cfg Config) ([]trace.Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := NewSimulator(cfg)
	s.Run()

	records := s.Distributor.Events.Records()
	records = append(records, s.Censor.Events.Records()...)
	return records, nil
}
