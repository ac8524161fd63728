package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical configuration MUST
// produce bit-for-bit identical event logs.
type SimulationKey int64

// RNG subsystem names. Each subsystem draws from its own stream so that,
// for example, adding a proxy-service sample cannot shift the censor's
// blocking schedule.
const (
	// SubsystemArrival drives inter-arrival delays and malicious flags.
	SubsystemArrival = "arrival"
	// SubsystemAssignment drives the distributor's index draws.
	SubsystemAssignment = "assignment"
	// SubsystemCensor drives the censor's inter-block delays.
	SubsystemCensor = "censor"
	// SubsystemService drives per-client service times inside proxies.
	SubsystemService = "service"
)

// PartitionedRNG provides deterministic, isolated RNG instances per
// subsystem. Subsystem seeds are derived as masterSeed XOR fnv1a64(name),
// so derivation is independent of the order subsystems are first used.
//
// Thread-safety: NOT thread-safe. The simulator is single-threaded.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named
// subsystem. The same name always returns the same *rand.Rand instance.
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// Expovariate samples an exponentially-distributed delay with the given
// mean, in virtual seconds.
func Expovariate(rng *rand.Rand, mean float64) float64 {
	return rng.ExpFloat64() * mean
}
