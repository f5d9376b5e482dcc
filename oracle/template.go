package oracle

import (
	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/randsrc"
)

// Template holds the seeded, per-channel actual-balance split for a graph
// (§4.2). It is built once per simulation run and is immutable thereafter;
// every payment clones it into a private PaymentView (§5: "each payment
// snapshots the initial actual-balance map"), so concurrent payments never
// contend on it and every payment is evaluated against the same initial
// liquidity regardless of what any other payment in the run did.
type Template struct {
	g      *graph.Graph
	actual []msat.MilliSatoshi // indexed by graph.EdgeIndex
}

// NewTemplate draws a uniform split of each channel's capacity between its
// two directional sides, seeded from runSeed so that repeated runs with the
// same seed are bit-for-bit reproducible (§8 property 6).
func NewTemplate(g *graph.Graph, runSeed uint64) *Template {
	rng := randsrc.SubStream(runSeed, "oracle/actual-balances")

	actual := make([]msat.MilliSatoshi, g.EdgeCount())
	seen := make([]bool, g.EdgeCount())

	for idx := 0; idx < g.EdgeCount(); idx++ {
		if seen[idx] {
			continue
		}

		e := g.Edge(graph.EdgeIndex(idx))
		rev := e.Reverse

		split := msat.MilliSatoshi(rng.Int63n(int64(e.Capacity) + 1))
		actual[idx] = split
		actual[rev] = e.Capacity - split

		seen[idx] = true
		seen[rev] = true
	}

	return &Template{g: g, actual: actual}
}

// NewPaymentView returns a fresh, mutable oracle scoped to one payment: the
// actual balances start as a copy of the template's, and belief intervals
// start at [0, capacity] for every edge (§4.2).
func (t *Template) NewPaymentView() *PaymentView {
	actual := make([]msat.MilliSatoshi, len(t.actual))
	copy(actual, t.actual)

	belief := make([]Interval, t.g.EdgeCount())
	for idx := range belief {
		belief[idx] = Interval{
			Lo: 0,
			Hi: t.g.Edge(graph.EdgeIndex(idx)).Capacity,
		}
	}

	return &PaymentView{
		g:      t.g,
		actual: actual,
		belief: belief,
	}
}
