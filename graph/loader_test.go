package graph

import (
	"testing"

	"github.com/lightningnetwork/lnsim/msat"
	"github.com/stretchr/testify/require"
)

func TestBuildDropsSelfChannel(t *testing.T) {
	loader := &MemLoader{
		NodeIDs: []NodeID{"alice", "bob"},
		ChannelList: []Channel{
			{ID: 1, Node1: "alice", Node2: "alice", Capacity: 1_000_000},
			{ID: 2, Node1: "alice", Node2: "bob", Capacity: 1_000_000,
				Policy1: Policy{MaxHTLC: 1_000_000},
				Policy2: Policy{MaxHTLC: 1_000_000},
			},
		},
	}

	g, stats, err := Build(loader)
	require.NoError(t, err)

	require.Equal(t, 2, stats.TotalChannels)
	require.Equal(t, 2, stats.DroppedEdges)
	require.Equal(t, 2, g.EdgeCount())
}

func TestBuildDropsDuplicateChannelID(t *testing.T) {
	policy := Policy{MaxHTLC: 1_000_000}

	loader := &MemLoader{
		NodeIDs: []NodeID{"alice", "bob", "carol"},
		ChannelList: []Channel{
			{ID: 1, Node1: "alice", Node2: "bob", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
			{ID: 1, Node1: "bob", Node2: "carol", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
		},
	}

	g, stats, err := Build(loader)
	require.NoError(t, err)

	require.Equal(t, 2, stats.TotalChannels)
	require.Equal(t, 2, stats.DroppedEdges)
	require.Equal(t, 2, g.EdgeCount())

	// Only the first channel (alice<->bob) survived.
	_, ok := g.Vertex("alice")
	require.True(t, ok)
	bob, ok := g.Vertex("bob")
	require.True(t, ok)
	require.Len(t, g.OutEdges(bob), 1)
}

// TestBuildPairsReverseAcrossDisabledSide is the loader-level counterpart of
// pathfind's asymmetric-channel test: a channel whose reverse side is
// disabled must still leave the healthy side's Reverse pointing at the
// disabled placeholder, not at itself, so downstream balance-conservation
// (oracle) and backward search (pathfind) both see a correctly paired edge.
func TestBuildPairsReverseAcrossDisabledSide(t *testing.T) {
	healthy := Policy{MaxHTLC: 1_000_000}
	disabled := Policy{MaxHTLC: 1_000_000, Disabled: true}

	loader := &MemLoader{
		NodeIDs: []NodeID{"bob", "carol"},
		ChannelList: []Channel{
			{ID: 1, Node1: "bob", Node2: "carol", Capacity: 1_000_000, Policy1: healthy, Policy2: disabled},
		},
	}

	g, stats, err := Build(loader)
	require.NoError(t, err)
	require.Equal(t, 1, stats.DroppedEdges)
	require.Equal(t, 2, g.EdgeCount())

	bob, _ := g.Vertex("bob")
	carol, _ := g.Vertex("carol")

	outBob := g.OutEdges(bob)
	require.Len(t, outBob, 1)

	fwd := g.Edge(outBob[0])
	require.True(t, fwd.Enabled())
	require.Equal(t, carol, fwd.To)

	rev := g.ReverseOf(outBob[0])
	require.False(t, rev.Enabled())
	require.Equal(t, bob, rev.To)
	require.NotEqual(t, outBob[0], fwd.Reverse)

	// Capacity conservation still holds across the pair even though one
	// side is unroutable.
	require.Equal(t, msat.MilliSatoshi(1_000_000), fwd.Capacity)
	require.Equal(t, fwd.Capacity, rev.Capacity)
}
