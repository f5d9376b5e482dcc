package feemath

import (
	"testing"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/stretchr/testify/require"
)

func TestFeeBaseAndProportional(t *testing.T) {
	policy := graph.Policy{BaseFee: 1000, FeeRateMilliMsat: 500}

	fee := Fee(policy, 1_000_000)
	// base 1000 + floor(1_000_000 * 500 / 1_000_000) = 1000 + 500
	require.Equal(t, msat.MilliSatoshi(1500), fee)
}

func TestFeeZeroRate(t *testing.T) {
	policy := graph.Policy{BaseFee: 250, FeeRateMilliMsat: 0}

	require.Equal(t, msat.MilliSatoshi(250), Fee(policy, 9_999_999_999))
}

func TestFeeLargeAmountDoesNotOverflow(t *testing.T) {
	policy := graph.Policy{BaseFee: 0, FeeRateMilliMsat: 1_000_000}

	// amount * rate would overflow a 64-bit multiplication for amounts
	// near the top of the msat range; 128-bit intermediate math must
	// still produce the exact answer: fee == amount when rate == 1e6.
	amount := msat.MilliSatoshi(1 << 62)
	require.Equal(t, amount, Fee(policy, amount))
}

func TestAccumulatePathRightToLeft(t *testing.T) {
	p1 := graph.Policy{BaseFee: 10, FeeRateMilliMsat: 1000}
	p2 := graph.Policy{BaseFee: 5, FeeRateMilliMsat: 0}

	e1 := &graph.Edge{Policy: p1}
	e2 := &graph.Edge{Policy: p2}

	amounts, totalFee := AccumulatePath([]*graph.Edge{e1, e2}, 1_000_000)

	// Last edge forwards exactly the destination amount.
	require.Equal(t, msat.MilliSatoshi(1_000_000), amounts[1])

	// First edge forwards destAmount + fee charged by e2's node.
	feeOfE2 := Fee(p2, 1_000_000)
	require.Equal(t, msat.MilliSatoshi(1_000_000)+feeOfE2, amounts[0])

	require.Equal(t, amounts[0]-1_000_000, totalFee)
}

func TestAccumulatePathSingleHop(t *testing.T) {
	e1 := &graph.Edge{Policy: graph.Policy{BaseFee: 1, FeeRateMilliMsat: 1}}

	amounts, totalFee := AccumulatePath([]*graph.Edge{e1}, 500)

	require.Equal(t, msat.MilliSatoshi(500), amounts[0])
	require.Equal(t, msat.MilliSatoshi(0), totalFee)
}

func TestTotalCLTV(t *testing.T) {
	e1 := &graph.Edge{Policy: graph.Policy{CLTVDelta: 40}}
	e2 := &graph.Edge{Policy: graph.Policy{CLTVDelta: 144}}

	require.Equal(t, uint32(184), TotalCLTV([]*graph.Edge{e1, e2}))
}
