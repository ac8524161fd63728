package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwich-sim/sandwich-sim/sim/trace"
)

func TestArrival_CreatesClientAndReschedules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 2
	s := NewSimulator(cfg)

	before := s.EventQueue.Len()
	s.Arrivals.onWake(s, 0)

	assert.Equal(t, 1, s.Arrivals.Count())
	assert.GreaterOrEqual(t, s.EventQueue.Len(), before+1, "the loop must schedule the next arrival")
}

func TestArrival_StopsWhenNoActiveProxiesRemain(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 1
	s := NewSimulator(cfg)
	s.Distributor.NotifyBlock(s, 0.5, s.Distributor.Active[0])
	require.True(t, s.Stopped())

	s.Arrivals.onWake(s, 1.0)
	assert.Zero(t, s.Arrivals.Count(), "no client may be created after depletion")
	assert.Equal(t, 0, s.EventQueue.Len())
}

func TestArrival_MaliciousClientEnumeratesItsProxy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 2
	cfg.MaliciousProbability = 1.0
	s := NewSimulator(cfg)

	s.Arrivals.onWake(s, 0)
	rec, ok := s.Censor.Events.Last()
	require.True(t, ok)
	assert.Equal(t, trace.ActionEnumerateProxy, rec.Action)
	assert.Len(t, s.Censor.Known, 1)
}

func TestArrival_HonestClientsLeakNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 2
	cfg.MaliciousProbability = 0.0
	s := NewSimulator(cfg)

	for i := 0; i < 10; i++ {
		s.Arrivals.onWake(s, float64(i))
	}
	assert.Zero(t, s.Censor.Events.Len())
	assert.Empty(t, s.Censor.Known)
	assert.Zero(t, s.Distributor.Events.Len(), "no exposure without censor knowledge")
}

func TestArrival_HonestClientOnKnownProxyIsExposed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 1
	cfg.MaliciousProbability = 0.0
	s := NewSimulator(cfg)

	// The censor already knows the only proxy, so any honest client
	// assigned to it is exposed.
	s.Censor.Known = append(s.Censor.Known, s.Distributor.Active[0])

	s.Arrivals.onWake(s, 0)
	rec, ok := s.Distributor.Events.Last()
	require.True(t, ok)
	assert.Equal(t, trace.ActionExposeClient, rec.Action)
	assert.Equal(t, "Proxy 0", rec.Proxy)
	assert.Zero(t, rec.SystemHealth)
}

func TestArrival_SecondReportOfSameProxyMisses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 1
	cfg.MaliciousProbability = 1.0
	s := NewSimulator(cfg)

	s.Arrivals.onWake(s, 0)
	s.Arrivals.onWake(s, 1)
	assert.Equal(t, 2, s.Arrivals.Count())

	// Both malicious clients hit the sole proxy: one enumeration, one miss.
	records := s.Censor.Events.Records()
	require.Len(t, records, 2)
	assert.Equal(t, trace.ActionEnumerateProxy, records[0].Action)
	assert.Equal(t, trace.ActionMissEnumerateProxy, records[1].Action)
}
