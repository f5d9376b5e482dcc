package oracle

import (
	"testing"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/stretchr/testify/require"
)

func triangleGraph(t *testing.T) *graph.Graph {
	t.Helper()

	policy := graph.Policy{
		BaseFee:          1000,
		FeeRateMilliMsat: 1,
		CLTVDelta:        40,
		MinHTLC:          1,
		MaxHTLC:          1_000_000_000,
	}

	loader := &graph.MemLoader{
		NodeIDs: []graph.NodeID{"alice", "bob", "carol"},
		ChannelList: []graph.Channel{
			{ID: 1, Node1: "alice", Node2: "bob", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
			{ID: 2, Node1: "bob", Node2: "carol", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
			{ID: 3, Node1: "carol", Node2: "alice", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
		},
	}

	g, _, err := graph.Build(loader)
	require.NoError(t, err)

	return g
}

func TestTemplateBalancesSumToCapacity(t *testing.T) {
	g := triangleGraph(t)
	tmpl := NewTemplate(g, 42)
	view := tmpl.NewPaymentView()

	for idx := 0; idx < g.EdgeCount(); idx++ {
		e := graph.EdgeIndex(idx)
		edge := g.Edge(e)

		require.Equal(t, edge.Capacity, view.Actual(e)+view.Actual(edge.Reverse))
	}
	require.True(t, view.InvariantOK())
}

func TestTemplateDeterministicForSameSeed(t *testing.T) {
	g := triangleGraph(t)

	v1 := NewTemplate(g, 7).NewPaymentView()
	v2 := NewTemplate(g, 7).NewPaymentView()

	for idx := 0; idx < g.EdgeCount(); idx++ {
		e := graph.EdgeIndex(idx)
		require.Equal(t, v1.Actual(e), v2.Actual(e))
	}
}

func TestFreshBeliefSpansFullCapacity(t *testing.T) {
	g := triangleGraph(t)
	view := NewTemplate(g, 1).NewPaymentView()

	e := graph.EdgeIndex(0)
	b := view.Belief(e)

	require.Equal(t, msat.MilliSatoshi(0), b.Lo)
	require.Equal(t, g.Edge(e).Capacity, b.Hi)
}

func TestOnSuccessTightensBothSides(t *testing.T) {
	g := triangleGraph(t)
	view := NewTemplate(g, 1).NewPaymentView()

	e := graph.EdgeIndex(0)
	rev := g.Edge(e).Reverse
	capacity := g.Edge(e).Capacity

	view.OnSuccess(e, 100_000)

	require.Equal(t, msat.MilliSatoshi(100_000), view.Belief(e).Lo)
	require.Equal(t, capacity-100_000, view.Belief(rev).Hi)
	require.True(t, view.InvariantOK())
}

func TestOnFailureTightensUpperBound(t *testing.T) {
	g := triangleGraph(t)
	view := NewTemplate(g, 1).NewPaymentView()

	e := graph.EdgeIndex(0)
	view.OnFailure(e, 50_000)

	require.Equal(t, msat.MilliSatoshi(49_999), view.Belief(e).Hi)
	require.False(t, view.Feasible(e, 50_000))
	require.True(t, view.Feasible(e, 49_999))
}

func TestDegenerateIntervalIsCertain(t *testing.T) {
	iv := Interval{Lo: 500, Hi: 500}

	require.Equal(t, 1.0, iv.successProbability(500))
	require.Equal(t, 0.0, iv.successProbability(501))
}

func TestSettleMovesBalanceAcrossChannel(t *testing.T) {
	g := triangleGraph(t)
	view := NewTemplate(g, 9).NewPaymentView()

	e := graph.EdgeIndex(0)
	rev := g.Edge(e).Reverse

	before := view.Actual(e)
	beforeRev := view.Actual(rev)

	view.Settle([]graph.EdgeIndex{e}, []msat.MilliSatoshi{1_000})

	require.Equal(t, before-1_000, view.Actual(e))
	require.Equal(t, beforeRev+1_000, view.Actual(rev))
	require.True(t, view.InvariantOK())
}

func TestSuccessProbabilityMonotonicInAmount(t *testing.T) {
	iv := Interval{Lo: 0, Hi: 1_000_000}

	low := iv.successProbability(100_000)
	high := iv.successProbability(900_000)

	require.Greater(t, low, high)
}
