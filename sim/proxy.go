package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Proxy is a finite-capacity, single-server queueing endpoint. The queue
// holds clients waiting or in service; its length is the load signal both
// actors sort on. Service times are exponential with mean serviceTime.
//
// A blocked proxy drains the clients it already holds but never receives
// new assignments, because blocking removes it from the active set.
type Proxy struct {
	Name    string
	Queue   []*Client
	Blocked bool

	capacity    int
	serviceTime float64
	trace       bool
}

// NewProxy creates an unblocked proxy with an empty queue.
func NewProxy(name string, capacity int, serviceTime float64, trace bool) *Proxy {
	return &Proxy{
		Name:        name,
		Queue:       make([]*Client, 0, capacity),
		capacity:    capacity,
		serviceTime: serviceTime,
		trace:       trace,
	}
}

// Load returns the queue length (waiting + in service).
func (p *Proxy) Load() int {
	return len(p.Queue)
}

// Service admits a client to the proxy's waiting room and, if the server
// is idle, begins serving it. A client arriving to a full waiting room
// balks; balking is traced but not recorded in the event log.
func (p *Proxy) Service(sim *Simulator, now float64, client *Client) {
	if len(p.Queue) >= p.capacity {
		if p.trace {
			logrus.Infof("%7.4f %s balks at %s (queue full)", now, client.Name, p.Name)
		}
		return
	}
	p.Queue = append(p.Queue, client)
	if len(p.Queue) == 1 {
		p.scheduleCompletion(sim, now)
	}
}

// Block marks the proxy as disabled by the censor.
func (p *Proxy) Block() {
	p.Blocked = true
}

func (p *Proxy) scheduleCompletion(sim *Simulator, now float64) {
	delay := Expovariate(sim.RNG.ForSubsystem(SubsystemService), p.serviceTime)
	sim.Schedule(sim.NewServiceCompletionEvent(now+delay, p))
}

// completeService releases the client at the head of the queue and starts
// serving the next one, if any.
func (p *Proxy) completeService(sim *Simulator, now float64) {
	if len(p.Queue) == 0 {
		return
	}
	done := p.Queue[0]
	p.Queue = p.Queue[1:]
	if p.trace {
		logrus.Infof("%7.4f %s departs %s", now, done.Name, p.Name)
	}
	if len(p.Queue) > 0 {
		p.scheduleCompletion(sim, now)
	}
}

// String returns a human-readable representation of a Proxy.
func (p *Proxy) String() string {
	return fmt.Sprintf("Proxy: (Name: %s, Load: %d, Blocked: %t)", p.Name, len(p.Queue), p.Blocked)
}
