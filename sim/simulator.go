package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds virtual time, the two actors,
// and the event loop. Exactly one logical process runs at a time;
// concurrency is purely temporal interleaving driven by the virtual
// clock, so shared state needs no locking.
type Simulator struct {
	Clock  float64
	Config Config

	// EventQueue holds all pending events: client arrivals, proxy service
	// completions, and censor wakes.
	EventQueue *EventHeap

	RNG         *PartitionedRNG
	Distributor *Distributor
	Censor      *Censor
	Arrivals    *ArrivalGenerator

	// Per-simulator event counter; assignment order is the FIFO tie-break
	// for simultaneous events.
	nextEventID uint64
	stopped     bool
}

// NewSimulator builds a fully wired simulator: the distributor bootstraps
// its proxy population at time zero, the first client arrival is scheduled
// at time zero, and the censor's first wake is scheduled at the end of its
// bootstrap delay.
func NewSimulator(cfg Config) *Simulator {
	s := &Simulator{
		Clock:      0,
		Config:     cfg,
		EventQueue: NewEventHeap(),
		RNG:        NewPartitionedRNG(SimulationKey(cfg.Seed)),
	}
	s.Distributor = NewDistributor(cfg)
	s.Censor = NewCensor(cfg)
	s.Arrivals = NewArrivalGenerator(cfg.ClientArrivalRate)

	s.Schedule(s.NewClientArrivalEvent(0))
	s.Schedule(s.NewCensorWakeEvent(cfg.CensorBootstrap))
	return s
}

// newEventID generates the next event ID for this simulator.
func (s *Simulator) newEventID() uint64 {
	s.nextEventID++
	return s.nextEventID
}

// NewClientArrivalEvent creates a client arrival wake at the given time.
func (s *Simulator) NewClientArrivalEvent(timestamp float64) *ClientArrivalEvent {
	return &ClientArrivalEvent{BaseEvent{timestamp: timestamp, eventID: s.newEventID()}}
}

// NewServiceCompletionEvent creates a service completion for the given proxy.
func (s *Simulator) NewServiceCompletionEvent(timestamp float64, p *Proxy) *ServiceCompletionEvent {
	return &ServiceCompletionEvent{
		BaseEvent: BaseEvent{timestamp: timestamp, eventID: s.newEventID()},
		Proxy:     p,
	}
}

// NewCensorWakeEvent creates a censor blocking-loop wake at the given time.
func (s *Simulator) NewCensorWakeEvent(timestamp float64) *CensorWakeEvent {
	return &CensorWakeEvent{BaseEvent{timestamp: timestamp, eventID: s.newEventID()}}
}

// Schedule adds an event to the simulator's event queue.
func (s *Simulator) Schedule(ev Event) {
	s.EventQueue.Schedule(ev)
}

// Stop force-terminates the run: all still-pending events are discarded
// and no further event executes. Triggered on proxy-set exhaustion.
func (s *Simulator) Stop() {
	s.stopped = true
	s.EventQueue.Drain()
}

// Stopped reports whether the run has been force-terminated.
func (s *Simulator) Stopped() bool {
	return s.stopped
}

// Run executes events in non-decreasing timestamp order until no events
// remain or a process signals termination.
func (s *Simulator) Run() {
	for !s.stopped && s.EventQueue.Len() > 0 {
		ev := s.EventQueue.PopNext()
		if ev.Timestamp() < s.Clock {
			panic(fmt.Sprintf("clock went backwards: %g < %g", ev.Timestamp(), s.Clock))
		}
		s.Clock = ev.Timestamp()
		logrus.Debugf("[%9.4f] executing %T", s.Clock, ev)
		ev.Execute(s)
	}
	logrus.Debugf("[%9.4f] simulation ended", s.Clock)
}
