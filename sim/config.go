package sim

import "fmt"

// Config groups every knob of a single simulation run. The first five
// fields are the per-run options of the original model; the rest were
// module-level constants there and are exposed as configuration here.
type Config struct {
	// Seed controls all random streams for the run.
	Seed int64
	// ClientArrivalRate is the mean inter-arrival time between clients,
	// in virtual seconds.
	ClientArrivalRate float64
	// NumProxies is the bootstrap proxy population size.
	NumProxies int
	// CensorBootstrap is the censor's reconnaissance delay before its
	// first block, in virtual seconds.
	CensorBootstrap float64
	// Trace emits human-readable progress lines. It has no effect on the
	// returned event records.
	Trace bool
	// MaliciousProbability is the chance an arriving client works for the
	// censor. Uniform per client; a refinement would tie this to the
	// censor's deployment probability.
	MaliciousProbability float64

	// QueueSize is each proxy's waiting-room capacity.
	QueueSize int
	// ServiceTime is the mean per-client service time, in virtual seconds.
	ServiceTime float64
	// BlockingRate is the censor's mean inter-block delay, in virtual
	// seconds.
	BlockingRate float64
	// VictimSetDivisor fixes the panic-mode victim subset at
	// floor(|active| / VictimSetDivisor) of the most-loaded proxies.
	VictimSetDivisor int
}

// DefaultConfig returns a Config carrying the model's reference constants.
func DefaultConfig() Config {
	return Config{
		Seed:                 42,
		ClientArrivalRate:    1.0,
		NumProxies:           20,
		CensorBootstrap:      10.0,
		Trace:                false,
		MaliciousProbability: 0.5,
		QueueSize:            10,
		ServiceTime:          1.0,
		BlockingRate:         1.0,
		VictimSetDivisor:     2,
	}
}

// Validate reports the first configuration error, or nil.
func (c Config) Validate() error {
	if c.NumProxies <= 0 {
		return fmt.Errorf("num proxies must be positive, got %d", c.NumProxies)
	}
	if c.ClientArrivalRate <= 0 {
		return fmt.Errorf("client arrival rate must be positive, got %g", c.ClientArrivalRate)
	}
	if c.MaliciousProbability < 0 || c.MaliciousProbability > 1 {
		return fmt.Errorf("malicious probability must be in [0, 1], got %g", c.MaliciousProbability)
	}
	if c.CensorBootstrap < 0 {
		return fmt.Errorf("censor bootstrap must be non-negative, got %g", c.CensorBootstrap)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive, got %d", c.QueueSize)
	}
	if c.ServiceTime <= 0 {
		return fmt.Errorf("service time must be positive, got %g", c.ServiceTime)
	}
	if c.BlockingRate <= 0 {
		return fmt.Errorf("blocking rate must be positive, got %g", c.BlockingRate)
	}
	if c.VictimSetDivisor <= 0 {
		return fmt.Errorf("victim set divisor must be positive, got %d", c.VictimSetDivisor)
	}
	return nil
}
