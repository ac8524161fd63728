package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandwich-sim/sandwich-sim/sim/trace"
)

func fastRunConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.NumProxies = 3
	cfg.ClientArrivalRate = 0.5
	cfg.CensorBootstrap = 2.0
	cfg.BlockingRate = 0.5
	return cfg
}

func TestRun_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumProxies = 0

	records, err := Run(cfg)
	require.Error(t, err)
	assert.Nil(t, records)
}

func TestRun_FixedSeedIsDeterministic(t *testing.T) {
	cfg := fastRunConfig()

	first, err := Run(cfg)
	require.NoError(t, err)
	second, err := Run(cfg)
	require.NoError(t, err)

	require.Equal(t, first, second, "identical configs must produce identical event sequences")
	assert.NotEmpty(t, first)
}

func TestRun_DifferentSeedsDiverge(t *testing.T) {
	cfg := fastRunConfig()
	first, err := Run(cfg)
	require.NoError(t, err)

	cfg.Seed = 8
	second, err := Run(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRun_ExactlyOneProxyDeathAndNothingAfter(t *testing.T) {
	records, err := Run(fastRunConfig())
	require.NoError(t, err)

	deaths := 0
	deathTime := 0.0
	for _, rec := range records {
		if rec.Action == trace.ActionProxyDeath {
			deaths++
			deathTime = rec.Time
		}
	}
	require.Equal(t, 1, deaths)

	for _, rec := range records {
		assert.LessOrEqual(t, rec.Time, deathTime, "no event may occur after depletion")
	}
}

func TestRun_SingleProxyDiesWithoutBlockRecord(t *testing.T) {
	cfg := fastRunConfig()
	cfg.NumProxies = 1

	records, err := Run(cfg)
	require.NoError(t, err)

	for _, rec := range records {
		assert.NotEqual(t, trace.ActionProxyBlock, rec.Action,
			"blocking the sole proxy must yield PROXY_DEATH, not PROXY_BLOCK")
	}
	s := Summarize(records)
	assert.True(t, s.DeathObserved)
}

// distributorActions are the actions recorded with distributor-perspective
// snapshots.
var distributorActions = map[trace.Action]bool{
	trace.ActionExposeClient:   true,
	trace.ActionProxyBlock:     true,
	trace.ActionMissProxyBlock: true,
	trace.ActionProxyDeath:     true,
}

func TestRun_DistributorSetsStayDisjointAndBlockedOnlyGrows(t *testing.T) {
	records, err := Run(fastRunConfig())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, rec := range records {
		if !distributorActions[rec.Action] {
			continue
		}

		active := make(map[string]bool, len(rec.ActiveProxies))
		for _, name := range rec.ActiveProxies {
			active[name] = true
		}
		for _, name := range rec.BlockedProxies {
			assert.False(t, active[name], "proxy %s is both active and blocked at t=%g", name, rec.Time)
		}

		// Once blocked, a proxy appears in every later blocked snapshot.
		blocked := make(map[string]bool, len(rec.BlockedProxies))
		for _, name := range rec.BlockedProxies {
			blocked[name] = true
		}
		for name := range seen {
			assert.True(t, blocked[name], "proxy %s left the blocked set at t=%g", name, rec.Time)
		}
		seen = blocked
	}
}

func TestRun_EnumerationsPrecedeBlocks(t *testing.T) {
	records, err := Run(fastRunConfig())
	require.NoError(t, err)

	// Every proxy the distributor records as blocked must have been
	// enumerated by the censor first: the censor only blocks what it knows.
	enumerated := make(map[string]float64)
	for _, rec := range records {
		if rec.Action == trace.ActionEnumerateProxy {
			enumerated[rec.Proxy] = rec.Time
		}
	}
	for _, rec := range records {
		if rec.Action == trace.ActionProxyBlock || rec.Action == trace.ActionProxyDeath {
			when, ok := enumerated[rec.Proxy]
			require.True(t, ok, "proxy %s was blocked without enumeration", rec.Proxy)
			assert.LessOrEqual(t, when, rec.Time)
		}
	}
}
