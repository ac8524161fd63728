package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sandwich-sim/sandwich-sim/sim/trace"
)

// Summary aggregates a run's event records into the headline numbers the
// analysis layer usually wants first.
type Summary struct {
	// ActionCounts holds the number of records per action.
	ActionCounts map[trace.Action]int
	// DeathObserved reports whether the run reached proxy-set exhaustion.
	DeathObserved bool
	// DeathTime is the virtual time of the PROXY_DEATH record.
	DeathTime float64
	// FinalHealth is the system health of the last PROXY_BLOCK, or 100
	// when no proxy was ever blocked.
	FinalHealth float64
	// BlockIntervalMean and BlockIntervalStdDev describe the virtual-time
	// gaps between successive censor blocks (PROXY_BLOCK and PROXY_DEATH).
	BlockIntervalMean   float64
	BlockIntervalStdDev float64
}

// Summarize computes a Summary from a run's combined record sequence.
func Summarize(records []trace.Record) Summary {
	s := Summary{
		ActionCounts: make(map[trace.Action]int),
		FinalHealth:  100,
	}

	blockTimes := make([]float64, 0)
	for _, r := range records {
		s.ActionCounts[r.Action]++
		switch r.Action {
		case trace.ActionProxyBlock:
			s.FinalHealth = r.SystemHealth
			blockTimes = append(blockTimes, r.Time)
		case trace.ActionProxyDeath:
			s.DeathObserved = true
			s.DeathTime = r.Time
			blockTimes = append(blockTimes, r.Time)
		}
	}

	// Records arrive as two concatenated logs; block times must be in
	// global time order before differencing.
	sort.Float64s(blockTimes)
	if len(blockTimes) > 1 {
		intervals := make([]float64, len(blockTimes)-1)
		for i := 1; i < len(blockTimes); i++ {
			intervals[i-1] = blockTimes[i] - blockTimes[i-1]
		}
		s.BlockIntervalMean = stat.Mean(intervals, nil)
		if len(intervals) > 1 {
			s.BlockIntervalStdDev = stat.StdDev(intervals, nil)
		}
	}

	return s
}

// Print writes the summary to stdout.
func (s Summary) Print() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Enumerations         : %d (%d misses)\n",
		s.ActionCounts[trace.ActionEnumerateProxy], s.ActionCounts[trace.ActionMissEnumerateProxy])
	fmt.Printf("Exposed Clients      : %d\n", s.ActionCounts[trace.ActionExposeClient])
	fmt.Printf("Proxy Blocks         : %d (%d misses)\n",
		s.ActionCounts[trace.ActionProxyBlock], s.ActionCounts[trace.ActionMissProxyBlock])
	fmt.Printf("Final System Health  : %.2f%%\n", s.FinalHealth)
	if s.DeathObserved {
		fmt.Printf("Time To Death        : %.4f\n", s.DeathTime)
	}
	fmt.Printf("Block Interval       : mean %.4f, stddev %.4f\n",
		s.BlockIntervalMean, s.BlockIntervalStdDev)
}
