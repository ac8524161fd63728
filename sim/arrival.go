package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ArrivalGenerator is the client arrival process: a single long-lived
// loop that creates clients with Poisson inter-arrival times and triggers
// assignment, enumeration, or exposure for each one.
type ArrivalGenerator struct {
	// interval is the mean inter-arrival time in virtual seconds.
	interval float64
	// counter numbers clients sequentially so every arrival has a unique name.
	counter int
}

// NewArrivalGenerator creates the arrival process for one run.
func NewArrivalGenerator(interval float64) *ArrivalGenerator {
	return &ArrivalGenerator{interval: interval}
}

// Count returns the number of clients created so far.
func (g *ArrivalGenerator) Count() int {
	return g.counter
}

// onWake handles one arrival. The emptiness check at entry is the loop's
// only termination condition: a client created just before depletion may
// still legally request assignment against whatever state exists then.
func (g *ArrivalGenerator) onWake(sim *Simulator, now float64) {
	if sim.Distributor.ActiveCount() == 0 {
		return
	}

	rng := sim.RNG.ForSubsystem(SubsystemArrival)

	name := fmt.Sprintf("Client %d", g.counter)
	g.counter++
	if sim.Config.Trace {
		logrus.Infof("%7.4f New Client %s", now, name)
	}

	client := &Client{Name: name, Malicious: rng.Float64() < sim.Config.MaliciousProbability}

	proxy := sim.Distributor.Assign(sim, now, client)
	if proxy == nil {
		return
	}

	// A malicious client leaks its proxy to the censor. An honest client
	// routed to a proxy the censor already sees is an exposure.
	if client.Malicious {
		sim.Censor.Enumerate(now, proxy)
	} else if sim.Censor.Knows(proxy) {
		sim.Distributor.recordExpose(now, proxy)
	}

	delay := Expovariate(rng, g.interval)
	sim.Schedule(sim.NewClientArrivalEvent(now + delay))
}
