package oracle

import "github.com/lightningnetwork/lnsim/msat"

// Interval is the sender-visible belief interval for one directional edge
// (§3 "Belief interval"): a [lo, hi] subrange of [0, capacity] representing
// what the sender has learned so far this payment.
type Interval struct {
	Lo, Hi msat.MilliSatoshi
}

// Feasible reports whether amount could still be routed across this
// interval: the sender has no reason to believe the edge can't carry it.
func (iv Interval) Feasible(amount msat.MilliSatoshi) bool {
	return amount <= iv.Hi
}

// successProbability implements the §4.3 maxprob metric's uniform prior
// over the belief interval:
//
//	P = max(0, (hi - amount) / (hi - lo))   when hi > lo
//	P = 1                                   when hi == lo (degenerate,
//	                                         feasible amount)
//
// The degenerate case arises once an edge has been pinned to an exact
// value by a prior success/failure pair in the same payment; at that point
// there is nothing left to be uncertain about; assuming a remaining
// feasible amount succeeds with probability 1 is the uniform prior's limit
// as the interval narrows to a point (§9 Open Questions flags this as an
// implementer judgment call; this is the one this simulator makes).
func (iv Interval) successProbability(amount msat.MilliSatoshi) float64 {
	if !iv.Feasible(amount) {
		return 0
	}
	if iv.Hi <= iv.Lo {
		return 1
	}

	span := float64(iv.Hi - iv.Lo)
	remaining := float64(iv.Hi - amount)

	p := remaining / span
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}

	return p
}
