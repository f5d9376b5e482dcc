package observation

import (
	"math/rand"
	"testing"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/stretchr/testify/require"
)

func smallGraph(t *testing.T) *graph.Graph {
	t.Helper()

	policy := graph.Policy{BaseFee: 1, FeeRateMilliMsat: 1, MinHTLC: 1, MaxHTLC: 1_000_000}
	loader := &graph.MemLoader{
		NodeIDs: []graph.NodeID{"alice", "mallory", "bob"},
		ChannelList: []graph.Channel{
			{ID: 1, Node1: "alice", Node2: "mallory", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
			{ID: 2, Node1: "mallory", Node2: "bob", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
		},
	}
	g, _, err := graph.Build(loader)
	require.NoError(t, err)
	return g
}

func TestObservationRatePredicate(t *testing.T) {
	g := smallGraph(t)
	mallory, _ := g.Vertex("mallory")
	g.SetAdversary(mallory, true)

	log := NewLog()
	log.Record(Entry{Node: mallory, Role: RoleIntermediary})

	require.True(t, log.HasAdversaryIntermediary(g))
}

func TestPredecessorSuccessorAttack(t *testing.T) {
	g := smallGraph(t)
	alice, _ := g.Vertex("alice")
	mallory, _ := g.Vertex("mallory")
	bob, _ := g.Vertex("bob")
	g.SetAdversary(mallory, true)

	log := NewLog()
	log.Record(Entry{
		Node: mallory, Role: RoleIntermediary,
		Predecessor: alice, HasPredecessor: true,
		Successor: bob, HasSuccessor: true,
	})

	hits, total := log.PredecessorSuccessorAttack(g, alice, bob)
	require.Equal(t, 2, total)
	require.Equal(t, 2, hits)
}

// TestPredecessorSuccessorAttackPartialMatchStaysInRange covers an
// observation that confirms only one of its two opportunities: the ratio
// must not exceed 1, which a total that only counted one opportunity per
// adversary (rather than one per confirmable fact) would violate.
func TestPredecessorSuccessorAttackPartialMatchStaysInRange(t *testing.T) {
	g := smallGraph(t)
	alice, _ := g.Vertex("alice")
	mallory, _ := g.Vertex("mallory")
	bob, _ := g.Vertex("bob")
	g.SetAdversary(mallory, true)

	log := NewLog()
	log.Record(Entry{
		Node: mallory, Role: RoleIntermediary,
		Predecessor: alice, HasPredecessor: true,
		Successor: bob, HasSuccessor: true,
	})

	// dst is alice, not bob: the successor opportunity cannot be
	// confirmed, so only one of the two opportunities should hit.
	hits, total := log.PredecessorSuccessorAttack(g, alice, alice)
	require.Equal(t, 2, total)
	require.Equal(t, 1, hits)
}

func TestPathDiversityIdenticalAttemptsIsZero(t *testing.T) {
	log := NewLog()
	log.RecordAttemptEdges(0, []graph.EdgeIndex{0, 1})
	log.RecordAttemptEdges(1, []graph.EdgeIndex{0, 1})

	require.Equal(t, 0.0, log.PathDiversity())
}

func TestPathDiversityDisjointAttemptsIsOne(t *testing.T) {
	log := NewLog()
	log.RecordAttemptEdges(0, []graph.EdgeIndex{0, 1})
	log.RecordAttemptEdges(1, []graph.EdgeIndex{2, 3})

	require.Equal(t, 1.0, log.PathDiversity())
}

func TestPathDiversitySingleAttemptIsZero(t *testing.T) {
	log := NewLog()
	log.RecordAttemptEdges(0, []graph.EdgeIndex{0, 1})

	require.Equal(t, 0.0, log.PathDiversity())
}

func TestVulnerableToConfirmationAttack(t *testing.T) {
	g := smallGraph(t)
	alice, _ := g.Vertex("alice")
	mallory, _ := g.Vertex("mallory")
	bob, _ := g.Vertex("bob")
	g.SetAdversary(mallory, true)

	log := NewLog()
	log.Record(Entry{
		Node: mallory, Role: RoleIntermediary, AttemptIndex: 0, Position: 1,
		Predecessor: alice, HasPredecessor: true,
		Successor: bob, HasSuccessor: true,
	})

	// A single adversary intermediary is not enough; need two.
	require.False(t, log.VulnerableToConfirmationAttack(g, alice, bob))
}

func TestUniformSelectorFlagsExactCount(t *testing.T) {
	g := smallGraph(t)
	sel := NewUniformSelector()
	rng := rand.New(rand.NewSource(1))

	sel.Resample(g, 2, rng)

	count := 0
	for v := 0; v < g.NodeCount(); v++ {
		if g.Node(graph.Vertex(v)).Adversary {
			count++
		}
	}
	require.Equal(t, 2, count)
}
