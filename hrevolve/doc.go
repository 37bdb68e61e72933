// Package hrevolve computes optimal checkpointing operation sequences for
// adjoint computation over a two-level storage hierarchy, covering the
// classical revolve schedule (memory only), disk-revolve and periodic
// disk-revolve (unbounded disk), and h-revolve (bounded memory and disk).
//
// The package works an instance of l forward steps, adjoining steps l down
// to 0, with the initial state live in the working buffer. Costs are integer
// dynamic programs over (steps, memory slots, disk slots), with an
// infeasible-cost sentinel and deterministic tie-breaks, so identical inputs
// always produce identical sequences. The output is a flat Sequence of
// low-level operations (forward advances, backward steps, and storage reads,
// writes and discards), which callers translate into their own action
// streams.
package hrevolve
