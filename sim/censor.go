package sim

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sandwich-sim/sandwich-sim/sim/trace"
)

// Censor holds the adversary's partial view of the system. It learns of
// proxies through malicious clients and, after an initial reconnaissance
// period, repeatedly blocks the most-loaded proxy it knows about to
// maximize collateral damage.
type Censor struct {
	// Known holds proxies discovered via enumeration and not yet blocked.
	// The censor's view is an independently mutated projection: a known
	// proxy may or may not still be active in the distributor's view.
	Known []*Proxy
	// Blocked holds proxies this censor has disabled, disjoint from Known.
	Blocked []*Proxy
	// Events is the censor's append-only log.
	Events *trace.Log

	bootstrap    float64
	blockingRate float64
	trace        bool
}

// NewCensor creates a censor with an empty view.
func NewCensor(cfg Config) *Censor {
	return &Censor{
		Known:        make([]*Proxy, 0),
		Blocked:      make([]*Proxy, 0),
		Events:       trace.NewLog(),
		bootstrap:    cfg.CensorBootstrap,
		blockingRate: cfg.BlockingRate,
		trace:        cfg.Trace,
	}
}

// Knows reports whether the proxy is in the censor's known set.
func (c *Censor) Knows(proxy *Proxy) bool {
	return containsProxy(c.Known, proxy)
}

// Enumerate records a proxy reported by a malicious client. A proxy the
// censor has not seen before joins the known set; anything else is a miss.
func (c *Censor) Enumerate(now float64, proxy *Proxy) {
	action := trace.ActionMissEnumerateProxy
	if !containsProxy(c.Known, proxy) && !containsProxy(c.Blocked, proxy) {
		c.Known = append(c.Known, proxy)
		action = trace.ActionEnumerateProxy
		if c.trace {
			logrus.Infof("%7.4f Censor enumerates %s", now, proxy.Name)
		}
	}
	c.Events.Append(trace.NewRecord(now, action, proxyNames(c.Known), proxyNames(c.Blocked), proxy.Name, 0))
}

// onWake runs one iteration of the blocking loop: block the most-loaded
// known proxy, notify the distributor, then sleep an exponential delay.
// The loop never terminates itself; it stops only when the scheduler is
// force-terminated by the final block.
func (c *Censor) onWake(sim *Simulator, now float64) {
	if len(c.Known) > 0 {
		sort.SliceStable(c.Known, func(i, j int) bool {
			return c.Known[i].Load() > c.Known[j].Load()
		})
		victim := c.Known[0]
		victim.Block()
		c.Blocked = append(c.Blocked, victim)
		c.Known = removeProxy(c.Known, victim)
		if c.trace {
			logrus.Infof("%7.4f Censor blocks %s", now, victim.Name)
		}
		sim.Distributor.NotifyBlock(sim, now, victim)
		if sim.Stopped() {
			return
		}
	}

	delay := Expovariate(sim.RNG.ForSubsystem(SubsystemCensor), c.blockingRate)
	sim.Schedule(sim.NewCensorWakeEvent(now + delay))
}
