package pathfind

import (
	"testing"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/oracle"
	"github.com/stretchr/testify/require"
)

func linearGraph(t *testing.T) *graph.Graph {
	t.Helper()

	cheap := graph.Policy{BaseFee: 1, FeeRateMilliMsat: 1, CLTVDelta: 40, MinHTLC: 1, MaxHTLC: 10_000_000}
	expensive := graph.Policy{BaseFee: 5000, FeeRateMilliMsat: 5000, CLTVDelta: 40, MinHTLC: 1, MaxHTLC: 10_000_000}

	loader := &graph.MemLoader{
		NodeIDs: []graph.NodeID{"alice", "bob", "carol"},
		ChannelList: []graph.Channel{
			// alice <-> bob: cheap both ways.
			{ID: 1, Node1: "alice", Node2: "bob", Capacity: 1_000_000, Policy1: cheap, Policy2: cheap},
			// bob <-> carol: cheap both ways, completes the short path.
			{ID: 2, Node1: "bob", Node2: "carol", Capacity: 1_000_000, Policy1: cheap, Policy2: cheap},
			// alice <-> carol directly, but expensive.
			{ID: 3, Node1: "alice", Node2: "carol", Capacity: 1_000_000, Policy1: expensive, Policy2: expensive},
		},
	}

	g, _, err := graph.Build(loader)
	require.NoError(t, err)

	return g
}

func TestFindPathPrefersCheaperRoute(t *testing.T) {
	g := linearGraph(t)
	view := oracle.NewTemplate(g, 1).NewPaymentView()

	alice, _ := g.Vertex("alice")
	carol, _ := g.Vertex("carol")

	path, err := FindPath(g, view, alice, carol, 500_000, DefaultParams(MinFee), nil)
	require.NoError(t, err)
	require.Len(t, path.Edges, 2)

	bob, _ := g.Vertex("bob")
	require.Equal(t, bob, g.Edge(path.Edges[0]).To)
	require.Equal(t, carol, g.Edge(path.Edges[1]).To)
}

func TestFindPathAmountsMatchInvariant(t *testing.T) {
	g := linearGraph(t)
	view := oracle.NewTemplate(g, 2).NewPaymentView()

	alice, _ := g.Vertex("alice")
	carol, _ := g.Vertex("carol")

	path, err := FindPath(g, view, alice, carol, 500_000, DefaultParams(MinFee), nil)
	require.NoError(t, err)

	// destination receives exactly the requested amount.
	require.Equal(t, msat.MilliSatoshi(500_000), path.Amounts[len(path.Amounts)-1])
	// source debits destAmount + total fee.
	require.Equal(t, msat.MilliSatoshi(500_000)+path.Fee, path.Amounts[0])
}

func TestFindPathNoRouteWhenDisconnected(t *testing.T) {
	loader := &graph.MemLoader{
		NodeIDs:     []graph.NodeID{"alice", "bob"},
		ChannelList: nil,
	}
	g, _, err := graph.Build(loader)
	require.NoError(t, err)

	view := oracle.NewTemplate(g, 1).NewPaymentView()

	alice, _ := g.Vertex("alice")
	bob, _ := g.Vertex("bob")

	_, err = FindPath(g, view, alice, bob, 1000, DefaultParams(MinFee), nil)
	require.Error(t, err)
}

func TestFindPathsReturnsDistinctCandidates(t *testing.T) {
	g := linearGraph(t)
	view := oracle.NewTemplate(g, 3).NewPaymentView()

	alice, _ := g.Vertex("alice")
	carol, _ := g.Vertex("carol")

	params := DefaultParams(MinFee)
	params.CandidateCap = 2

	paths, err := FindPaths(g, view, alice, carol, 400_000, params)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.NotEqual(t, paths[0].Edges, paths[1].Edges)
}

// TestFindPathRoutesOverAsymmetricChannel covers a channel where only one
// direction is gossip-enabled: bob->carol is healthy but carol->bob is
// Disabled. A backward search from carol must still discover bob->carol,
// which depends on graph.Build pairing the disabled carol->bob edge as the
// healthy edge's Reverse rather than leaving it pointing at itself.
func TestFindPathRoutesOverAsymmetricChannel(t *testing.T) {
	healthy := graph.Policy{BaseFee: 1, FeeRateMilliMsat: 1, CLTVDelta: 40, MinHTLC: 1, MaxHTLC: 10_000_000}
	disabled := graph.Policy{BaseFee: 1, FeeRateMilliMsat: 1, CLTVDelta: 40, MinHTLC: 1, MaxHTLC: 10_000_000, Disabled: true}

	loader := &graph.MemLoader{
		NodeIDs: []graph.NodeID{"bob", "carol"},
		ChannelList: []graph.Channel{
			{ID: 1, Node1: "bob", Node2: "carol", Capacity: 1_000_000, Policy1: healthy, Policy2: disabled},
		},
	}

	g, stats, err := graph.Build(loader)
	require.NoError(t, err)
	require.Equal(t, 1, stats.DroppedEdges)

	view := oracle.NewTemplate(g, 1).NewPaymentView()

	bob, _ := g.Vertex("bob")
	carol, _ := g.Vertex("carol")

	path, err := FindPath(g, view, bob, carol, 100_000, DefaultParams(MinFee), nil)
	require.NoError(t, err)
	require.Len(t, path.Edges, 1)
	require.Equal(t, carol, g.Edge(path.Edges[0]).To)

	// The disabled direction must still be unroutable.
	_, err = FindPath(g, view, carol, bob, 100_000, DefaultParams(MinFee), nil)
	require.Error(t, err)
}

func TestFindPathMaxProbMetric(t *testing.T) {
	g := linearGraph(t)
	view := oracle.NewTemplate(g, 4).NewPaymentView()

	alice, _ := g.Vertex("alice")
	carol, _ := g.Vertex("carol")

	_, err := FindPath(g, view, alice, carol, 100_000, DefaultParams(MaxProb), nil)
	require.NoError(t, err)
}
