package oracle

import (
	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
)

// PaymentView is the mutable liquidity oracle scoped to a single payment
// (§4.2, §5). Its belief intervals reset between payments on purpose: the
// simulator measures per-payment observable behavior, not longitudinal
// sender learning across payments. Sibling shards of one MPP payment share
// a single PaymentView, since they share the parent payment's oracle view
// (§4.5).
type PaymentView struct {
	g      *graph.Graph
	actual []msat.MilliSatoshi
	belief []Interval
}

// Actual returns the ground-truth balance of e. Only the hop simulator may
// call this; the pathfinder must never see actual balances.
func (v *PaymentView) Actual(e graph.EdgeIndex) msat.MilliSatoshi {
	return v.actual[e]
}

// Belief returns the sender-visible belief interval for e.
func (v *PaymentView) Belief(e graph.EdgeIndex) Interval {
	return v.belief[e]
}

// SuccessProbability returns the maxprob metric's per-edge success estimate
// for amount, derived from the current belief interval under a uniform
// prior (§4.3).
func (v *PaymentView) SuccessProbability(e graph.EdgeIndex, amount msat.MilliSatoshi) float64 {
	return v.belief[e].successProbability(amount)
}

// Feasible reports whether amount is routable across e given everything
// the sender currently believes: the edge must be enabled, amount must lie
// within the edge's advertised htlc bounds, and must not exceed the
// believed upper bound (§4.2 feasible, §4.3 feasibility predicate).
func (v *PaymentView) Feasible(e graph.EdgeIndex, amount msat.MilliSatoshi) bool {
	edge := v.g.Edge(e)

	return edge.Feasible(amount) && v.belief[e].Feasible(amount)
}

// OnSuccess tightens belief after amount is observed to route successfully
// across e: the forward side's lower bound rises to at least amount, and
// the reverse side's upper bound falls to capacity-amount, since whatever
// is now on the forward side cannot also be on the reverse side (§4.2).
func (v *PaymentView) OnSuccess(e graph.EdgeIndex, amount msat.MilliSatoshi) {
	edge := v.g.Edge(e)

	if amount > v.belief[e].Lo {
		v.belief[e].Lo = amount
	}

	rev := edge.Reverse
	revHi := edge.Capacity - amount
	if revHi < v.belief[rev].Hi {
		v.belief[rev].Hi = revHi
	}
}

// OnFailure tightens belief after amount is observed to fail at e: the
// upper bound falls to amount-1, since the edge could not carry amount
// (§4.2).
func (v *PaymentView) OnFailure(e graph.EdgeIndex, amount msat.MilliSatoshi) {
	ceiling := msat.MilliSatoshi(0)
	if amount > 0 {
		ceiling = amount - 1
	}

	if ceiling < v.belief[e].Hi {
		v.belief[e].Hi = ceiling
	}
}

// Settle commits a successful attempt's balance mutation across every edge
// it traversed: amounts[i] is debited from the forward side of edges[i] and
// credited to its reverse, and belief is tightened via OnSuccess for each
// (§4.4 step 4). Settle is only ever called after the hop simulator has
// confirmed every hop's actual balance covers its amount; it does not
// re-check feasibility itself.
func (v *PaymentView) Settle(edges []graph.EdgeIndex, amounts []msat.MilliSatoshi) {
	for i, e := range edges {
		edge := v.g.Edge(e)
		amount := amounts[i]

		v.actual[e] -= amount
		v.actual[edge.Reverse] += amount

		v.OnSuccess(e, amount)
	}
}

// InvariantOK reports whether every edge still satisfies lo <= hi,
// hi <= capacity and actual <= capacity. It does not compare the actual
// balance against the belief interval. Tests call it, and the simulation
// driver calls it once after each payment; it is not used on the hot path.
func (v *PaymentView) InvariantOK() bool {
	for idx := 0; idx < len(v.actual); idx++ {
		e := graph.EdgeIndex(idx)
		edge := v.g.Edge(e)
		b := v.belief[e]

		if b.Lo > b.Hi {
			return false
		}
		if v.actual[e] > edge.Capacity {
			return false
		}
		if b.Hi > edge.Capacity {
			return false
		}
	}

	return true
}
