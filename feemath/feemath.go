// Package feemath computes per-hop forwarding fees and the right-to-left
// amount accumulation a path requires before it can be simulated (§4.3,
// §4.4, §7). Both the pathfinder (which needs a hop's forwarded amount to
// weigh it) and the hop simulator (which needs it to check feasibility and
// settle balances) share this code so the two can never disagree on what a
// hop actually forwards.
package feemath

import (
	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
	"lukechampine.com/uint128"
)

// Fee returns the amount policy charges to forward amount, computed in
// 128-bit intermediate precision so that amount * fee_rate_milli_msat
// cannot silently overflow 64 bits before the division by 1e6 brings it
// back down (§7 "Numeric overflow").
func Fee(policy graph.Policy, amount msat.MilliSatoshi) msat.MilliSatoshi {
	rate := uint128.From64(uint64(policy.FeeRateMilliMsat))
	proportional := uint128.From64(uint64(amount)).Mul(rate).Div64(1_000_000)

	return policy.BaseFee + msat.MilliSatoshi(proportional.Lo)
}

// AccumulatePath computes, for a loop-free path of directional edges
// src->...->dst carrying destAmount to the final node, the amount each edge
// must forward. Accumulation proceeds right to left: the last edge forwards
// exactly destAmount, and each edge before it forwards the next edge's
// amount plus the fee that next edge's node charges (§4.3, §4.4 step 1).
//
// The returned slice has the same length and order as edges; amounts[i] is
// what edges[i] carries. TotalFee is the sum of every hop's own fee, i.e.
// amounts[0] - destAmount (§8 property 2).
func AccumulatePath(edges []*graph.Edge, destAmount msat.MilliSatoshi) (amounts []msat.MilliSatoshi, totalFee msat.MilliSatoshi) {
	n := len(edges)
	amounts = make([]msat.MilliSatoshi, n)
	if n == 0 {
		return amounts, 0
	}

	amounts[n-1] = destAmount
	for i := n - 2; i >= 0; i-- {
		next := edges[i+1]
		fee := Fee(next.Policy, amounts[i+1])
		amounts[i] = amounts[i+1] + fee
	}

	totalFee = amounts[0] - destAmount
	return amounts, totalFee
}

// TotalCLTV sums the per-edge CLTV delta across a path (§4.3 CLTV bound).
// Each edge's delta is the extra time-lock its forwarding node requires
// downstream of it, so the sum is the total lock time the source must
// commit to.
func TotalCLTV(edges []*graph.Edge) uint32 {
	var total uint32
	for _, e := range edges {
		total += uint32(e.CLTVDelta)
	}

	return total
}
