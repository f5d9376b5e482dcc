// Package graph implements the read-only channel graph the rest of the
// simulator routes over (§4.1). Nodes and edges live in dense, contiguous
// arrays indexed by small integers; adjacency is stored as offset ranges
// into a flat edge-index slice. This trades the teacher's reference-counted,
// pointer-chasing channeldb.ChannelGraph for a cache-friendly representation
// that the pathfinder's inner loop can walk without allocating (§9 Design
// Notes: "Graph representation").
package graph

import "github.com/lightningnetwork/lnsim/msat"

// NodeID is the opaque, stable identifier carried in the input topology.
// Unlike the teacher's route.Vertex (a compressed secp256k1 public key), the
// simulator's nodes carry no cryptographic identity (§1 Non-goals: no
// cryptographic HTLC construction), so a plain string suffices.
type NodeID string

// Vertex is the dense integer index a Node is assigned at load time. All
// hot-path routing code operates on Vertex, never NodeID, so that graph
// traversal never touches a map.
type Vertex uint32

// EdgeIndex is the dense integer index a directional edge is assigned at
// load time.
type EdgeIndex uint32

// Node is the per-node state relevant to routing.
type Node struct {
	// ID is the node's opaque identifier as it appeared in the input
	// topology.
	ID NodeID

	// Adversary marks a node selected by one of the §4.6 adversary
	// strategies. It is mutable between simulation runs (re-sampled per
	// driver iteration, §4.7) but read-only during a single payment.
	Adversary bool

	// SuccessProb is the probability, in [0, 1], that this node forwards
	// an HTLC successfully rather than failing it outright to model an
	// offline or flaky node (§4.4 step 3). Defaults to 1 (never fails)
	// when no uptime history informs it; see package uptime.
	SuccessProb float64
}

// Policy is one directional edge's forwarding terms, normalized from either
// topology dialect (§6).
type Policy struct {
	BaseFee          msat.MilliSatoshi
	FeeRateMilliMsat uint32
	CLTVDelta        uint16
	MinHTLC          msat.MilliSatoshi
	MaxHTLC          msat.MilliSatoshi
	Disabled         bool
}

// Edge is one directional side of a channel.
type Edge struct {
	// ChannelID is shared between the two directional sides of a
	// channel.
	ChannelID uint64

	// From and To are the dense vertex indices of this edge's
	// endpoints.
	From, To Vertex

	// Capacity is the invariant upper bound on the sum of the two
	// directional balances for this channel.
	Capacity msat.MilliSatoshi

	Policy

	// Reverse is the index of the other directional edge of the same
	// channel (same channel id, endpoints swapped).
	Reverse EdgeIndex
}

// Enabled reports whether this edge is usable at all.
func (e *Edge) Enabled() bool {
	return !e.Disabled
}

// Feasible reports whether amount satisfies this edge's policy bounds,
// independent of any balance or belief check (§4.2 feasible, §4.3 feasibility
// predicate).
func (e *Edge) Feasible(amount msat.MilliSatoshi) bool {
	return e.Enabled() && amount >= e.MinHTLC && amount <= e.MaxHTLC
}

// Graph is the indexed multigraph produced by Build. It is safe for
// concurrent read access from multiple payment workers (§5): routing never
// mutates it, and only the per-node adversary flag and success probability
// change after Build, through SetAdversary and SetSuccessProb, while no
// payment is running.
type Graph struct {
	nodes []Node
	edges []Edge

	// outOffsets[v] .. outOffsets[v+1] is the range of outAdj holding
	// v's outgoing directional edges.
	outOffsets []int32
	outAdj     []EdgeIndex

	byID map[NodeID]Vertex
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of directional edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Vertex returns the dense index for a node id, and whether it was found.
func (g *Graph) Vertex(id NodeID) (Vertex, bool) {
	v, ok := g.byID[id]
	return v, ok
}

// NodeID returns the opaque identifier for a vertex.
func (g *Graph) NodeID(v Vertex) NodeID {
	return g.nodes[v].ID
}

// Node returns the node record for v. The returned pointer aliases the
// graph's internal storage and must not be mutated by routing code; only
// the adversary-resampling step between driver iterations (§4.7) is allowed
// to flip Adversary, and it does so through SetAdversary.
func (g *Graph) Node(v Vertex) *Node {
	return &g.nodes[v]
}

// SetAdversary flips the adversary flag for v. Used by the driver's
// per-iteration adversary resampling (§4.7 step 1); never called while a
// payment's state machine is running.
func (g *Graph) SetAdversary(v Vertex, adversary bool) {
	g.nodes[v].Adversary = adversary
}

// SetSuccessProb overrides a node's per-attempt success probability, used
// by uptime.Estimator.ApplyToGraph for nodes with recorded uptime history
// (§3, §4.4 step 3).
func (g *Graph) SetSuccessProb(v Vertex, p float64) {
	g.nodes[v].SuccessProb = p
}

// Edge returns the directional edge at idx.
func (g *Graph) Edge(idx EdgeIndex) *Edge {
	return &g.edges[idx]
}

// ReverseOf returns the directional edge travelling the opposite way across
// the same channel as idx.
func (g *Graph) ReverseOf(idx EdgeIndex) *Edge {
	return &g.edges[g.edges[idx].Reverse]
}

// OutEdges returns the indices of v's outgoing directional edges. The
// returned slice aliases the graph's adjacency storage; callers must not
// retain it across a Build call (there is only ever one, since Graph is
// immutable after construction) or mutate it.
func (g *Graph) OutEdges(v Vertex) []EdgeIndex {
	start, end := g.outOffsets[v], g.outOffsets[v+1]
	return g.outAdj[start:end]
}
