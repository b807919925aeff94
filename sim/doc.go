// Package sim implements a discrete-event simulation of an airport
// passenger-processing pipeline.
//
// A Simulator owns virtual time and an ordered event queue. Passengers move
// through a fixed sequence of stages (registration, security, boarding, plus
// optional stops such as customs or the restaurant), each backed by a
// bounded-capacity ResourcePool with FIFO queueing. A passenger that waits
// longer than its deadline abandons the journey; the race between a resource
// grant and the deadline timer is resolved exactly once.
//
// Execution is logically single-threaded over virtual time: determinism comes
// from the (fire-time, insertion-sequence) event ordering and from seeded,
// per-subsystem random streams, never from wall-clock concurrency. The public
// entry point is Run, a pure function of a configuration and a seed.
package sim
