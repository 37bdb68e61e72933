// Package schedules produces checkpointing schedules for reverse-mode
// (adjoint) computation over time-stepped simulations. Given a forward
// computation of max_n steps and a bounded checkpoint budget across a tiered
// storage hierarchy, a schedule emits a deterministic stream of actions that
// an external driver executes to advance the forward solver, save and restore
// forward state, and run the adjoint solver backward, minimizing
// recomputation while respecting storage capacities.
//
// The package emits plans only. It performs no data movement, holds no
// buffers, and runs no solvers; the action stream is the entire interface.
// Two constructions with identical inputs produce identical action streams.
//
// Schedules that require the step count up front (Revolve, DiskRevolve,
// PeriodicDiskRevolve, HRevolve, Multistage, Mixed) take it at construction.
// Online schedules (None, SingleMemoryStorage, SingleDiskStorage, TwoLevel)
// run without it, using the UnknownN sentinel, until the driver calls
// Finalize.
package schedules
