package sim

// Event defines the interface for all simulation events. Each event has a
// virtual-time Timestamp, a scheduling-order EventID used for FIFO
// tie-breaking, and an Execute method that advances simulation state.
type Event interface {
	Timestamp() float64
	EventID() uint64
	Execute(*Simulator)
}

// BaseEvent provides common event fields.
type BaseEvent struct {
	timestamp float64
	eventID   uint64
}

// Timestamp returns the virtual time at which the event fires.
func (e *BaseEvent) Timestamp() float64 {
	return e.timestamp
}

// EventID returns the event's scheduling-order identifier.
func (e *BaseEvent) EventID() uint64 {
	return e.eventID
}

// ClientArrivalEvent wakes the client arrival process: create one client,
// assign it a proxy, then schedule the next arrival.
type ClientArrivalEvent struct {
	BaseEvent
}

func (e *ClientArrivalEvent) Execute(sim *Simulator) {
	sim.Arrivals.onWake(sim, e.timestamp)
}

// ServiceCompletionEvent fires when a proxy's server finishes the client
// at the head of its queue.
type ServiceCompletionEvent struct {
	BaseEvent
	Proxy *Proxy
}

func (e *ServiceCompletionEvent) Execute(sim *Simulator) {
	e.Proxy.completeService(sim, e.timestamp)
}

// CensorWakeEvent wakes the censor's blocking loop. The first wake fires
// at the end of the reconnaissance bootstrap; each wake reschedules the
// next one after an exponential delay.
type CensorWakeEvent struct {
	BaseEvent
}

func (e *CensorWakeEvent) Execute(sim *Simulator) {
	sim.Censor.onWake(sim, e.timestamp)
}
