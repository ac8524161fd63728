package sim

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sandwich-sim/sandwich-sim/sim/trace"
)

// Distributor owns the authoritative set of active proxies. It creates the
// proxy population during bootstrap, assigns proxies to arriving clients
// with a load-aware randomized policy, and escalates to panic mode as the
// censor's blocks accumulate.
type Distributor struct {
	// Active is the set of proxies eligible for assignment, order-sensitive
	// for indexed random selection.
	Active []*Proxy
	// Blocked holds proxies the censor has disabled; a proxy moved here
	// never returns to Active.
	Blocked []*Proxy
	// PanicLevel is a monotonically non-decreasing escalation counter,
	// scoped to this run. Any value above zero switches assignment to the
	// victim-set strategy.
	PanicLevel int
	// Events is the distributor's append-only log.
	Events *trace.Log

	victimSetDivisor int
	trace            bool
}

// NewDistributor creates a distributor and bootstraps its proxy population
// at virtual time zero.
func NewDistributor(cfg Config) *Distributor {
	d := &Distributor{
		Active:           make([]*Proxy, 0, cfg.NumProxies),
		Blocked:          make([]*Proxy, 0),
		Events:           trace.NewLog(),
		victimSetDivisor: cfg.VictimSetDivisor,
		trace:            cfg.Trace,
	}
	if d.trace {
		logrus.Infof("%7.4f Bootstrap, number of proxies = %d", 0.0, cfg.NumProxies)
	}
	for i := 0; i < cfg.NumProxies; i++ {
		name := fmt.Sprintf("Proxy %d", i)
		d.Active = append(d.Active, NewProxy(name, cfg.QueueSize, cfg.ServiceTime, cfg.Trace))
		if d.trace {
			logrus.Infof("%7.4f New Proxy %s", 0.0, name)
		}
	}
	return d
}

// ActiveCount returns the number of proxies still eligible for assignment.
func (d *Distributor) ActiveCount() int {
	return len(d.Active)
}

// Assign selects a proxy for the client and starts that proxy's service
// process as a side effect. The caller must have verified that at least
// one active proxy exists; if none does, the scheduler is signalled to
// terminate and nil is returned.
//
// In default mode, two indices are drawn with replacement and the proxy
// with the strictly shorter queue wins; ties favor the first draw. In
// panic mode, the client is sent to one of the floor(|active|/divisor)
// most-loaded proxies, chosen uniformly from a fresh descending sort —
// deliberately concentrating load on proxies the censor is most likely
// to see.
func (d *Distributor) Assign(sim *Simulator, now float64, client *Client) *Proxy {
	if len(d.Active) == 0 {
		if d.trace {
			logrus.Infof("%7.4f no more proxies", now)
		}
		sim.Stop()
		return nil
	}

	rng := sim.RNG.ForSubsystem(SubsystemAssignment)

	var chosen *Proxy
	if d.PanicLevel > 0 {
		ranked := sortedByLoadDesc(d.Active)
		victimSize := len(d.Active) / d.victimSetDivisor
		if victimSize > 0 {
			chosen = ranked[rng.Intn(victimSize)]
		} else {
			// Too few active proxies to form a victim subset: always the
			// single most-loaded one.
			chosen = ranked[0]
		}
	} else {
		first := d.Active[rng.Intn(len(d.Active))]
		second := d.Active[rng.Intn(len(d.Active))]
		chosen = pickShorter(first, second)
	}

	chosen.Service(sim, now, client)
	return chosen
}

// NotifyBlock is invoked by the censor when it blocks a proxy. It moves
// the proxy from active to blocked, records the transition, re-evaluates
// panic escalation, and — when the last active proxy dies — signals the
// scheduler to terminate.
func (d *Distributor) NotifyBlock(sim *Simulator, now float64, proxy *Proxy) {
	health := 0.0
	var action trace.Action

	if containsProxy(d.Blocked, proxy) {
		// Unlikely if the censor is tracking its own blocks.
		action = trace.ActionMissProxyBlock
		health = d.systemHealth()
	} else {
		d.Blocked = append(d.Blocked, proxy)
		d.Active = removeProxy(d.Active, proxy)
		if len(d.Active) == 0 {
			if d.trace {
				logrus.Infof("%7.4f no more proxies available", now)
			}
			action = trace.ActionProxyDeath
		} else {
			action = trace.ActionProxyBlock
			health = d.systemHealth()
			// The distributor only observes blocking, not enumeration, so
			// escalation keys off the blocked/active balance.
			if len(d.Blocked) > len(d.Active) {
				d.PanicLevel++
			}
		}
	}

	d.Events.Append(trace.NewRecord(now, action, proxyNames(d.Active), proxyNames(d.Blocked), proxy.Name, health))
	if action == trace.ActionProxyDeath {
		sim.Stop()
	}
}

// recordExpose logs that an honest client was routed to a proxy the censor
// already knows about.
func (d *Distributor) recordExpose(now float64, proxy *Proxy) {
	d.Events.Append(trace.NewRecord(now, trace.ActionExposeClient, proxyNames(d.Active), proxyNames(d.Blocked), proxy.Name, 0))
}

// systemHealth derives the percentage of proxies still active relative to
// the total ever seen by the distributor.
func (d *Distributor) systemHealth() float64 {
	return (1 - float64(len(d.Blocked))/float64(len(d.Active)+len(d.Blocked))) * 100
}

// pickShorter returns the proxy with the strictly shorter queue; ties
// favor the first argument.
func pickShorter(first, second *Proxy) *Proxy {
	if first.Load() > second.Load() {
		return second
	}
	return first
}

// sortedByLoadDesc returns a fresh slice of the proxies sorted by queue
// length descending. The sort is stable so equal loads keep set order,
// which matters for reproducibility.
func sortedByLoadDesc(proxies []*Proxy) []*Proxy {
	ranked := append([]*Proxy(nil), proxies...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Load() > ranked[j].Load()
	})
	return ranked
}

// proxyNames snapshots the identities of a proxy set for the event log.
func proxyNames(proxies []*Proxy) []string {
	names := make([]string, len(proxies))
	for i, p := range proxies {
		names[i] = p.Name
	}
	return names
}

// containsProxy reports whether the set holds the proxy, by identity.
func containsProxy(set []*Proxy, proxy *Proxy) bool {
	for _, p := range set {
		if p == proxy {
			return true
		}
	}
	return false
}

// removeProxy removes the proxy from the set by identity, preserving the
// order of the remaining elements.
func removeProxy(set []*Proxy, proxy *Proxy) []*Proxy {
	for i, p := range set {
		if p == proxy {
			return append(set[:i], set[i+1:]...)
		}
	}
	return set
}
