// Package simulation implements the §4.7 driver: the external surface that
// turns a graph, a run configuration, and a seed into a sequence of
// per-payment outcomes. It owns pair sampling, the adversary-fraction
// sweep, and the worker pool that runs payments in parallel while still
// aggregating results in deterministic, seed-reproducible order.
package simulation

import (
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/observation"
	"github.com/lightningnetwork/lnsim/pathfind"
)

// Config bundles every knob the driver needs for one run (§6 CLI surface).
type Config struct {
	// Amount is the destination amount every sampled payment attempts to
	// deliver.
	Amount msat.MilliSatoshi

	// Seed is the run's master seed; every pseudorandom draw the driver
	// makes (pair sampling, per-payment RNG streams) derives from it via
	// package randsrc.
	Seed uint64

	// PairCount is the number of (src, dst) pairs to sample per
	// adversary fraction.
	PairCount int

	// AdversaryFractions is the sweep of adversary population fractions,
	// each in [0, 1].
	AdversaryFractions []float64

	// Split enables MPP fallback when a single-path attempt fails.
	Split bool

	// PathMetric selects the pathfinder's optimization metric.
	PathMetric pathfind.Metric

	// MinShard is the minimum MPP shard size.
	MinShard msat.MilliSatoshi

	// Selector resamples the adversary set once per adversary fraction.
	// The driver is agnostic to which of the three §4.6 strategies it
	// implements; that choice is made by whoever constructs it (the CLI,
	// from --random and the -b/-d/-c rank files).
	Selector *observation.Selector

	// Concurrency bounds how many payments run at once. A value <= 0
	// means "run sequentially" (still deterministic, just slower).
	Concurrency int
}

// PathParams derives the pathfinder parameters implied by this config.
func (c Config) PathParams() pathfind.Params {
	return pathfind.DefaultParams(c.PathMetric)
}
