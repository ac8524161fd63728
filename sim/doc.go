// Package sim provides the discrete-event simulation core for sandwich-sim:
// a model of the adversarial interaction between a circumvention network
// distributing proxy endpoints and a censor enumerating and blocking them.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - simulator.go: the virtual clock, event loop, and termination signal
//   - event.go / event_heap.go: event types and the deterministic queue
//     (timestamp order, FIFO at equal timestamps)
//   - distributor.go: power-of-two-choices assignment and panic escalation
//   - censor.go: enumeration and the most-loaded-first blocking loop
//
// The arrival process (arrival.go) drives both actors; each proxy
// (proxy.go) is a finite-capacity single-server queue. Recorded state
// transitions live in sim/trace, which has no dependency back on this
// package. All randomness flows through a PartitionedRNG (rng.go), so a
// fixed seed reproduces a run bit for bit.
package sim
