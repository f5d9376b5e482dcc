package graph

import (
	"sort"

	"github.com/lightningnetwork/lnsim/msat"
)

// Channel is one undirected, funded link as yielded by a Loader, carrying
// both directions' policies (§6 Topology input).
type Channel struct {
	ID             uint64
	Node1, Node2   NodeID
	Capacity       msat.MilliSatoshi
	Policy1, Policy2 Policy
}

// Loader is the normalized shape the core consumes from the topology
// parsing collaborator (§6): it is deliberately dialect-agnostic, so that
// the lnd and lnr JSON parsers in package topology both reduce to it.
type Loader interface {
	// Nodes returns every node id present in the topology, including
	// ones with no channels.
	Nodes() ([]NodeID, error)

	// Channels returns every channel, each expanding to two directional
	// edges at load time.
	Channels() ([]Channel, error)
}

// LoadStats reports what Build dropped while constructing a Graph, per the
// §4.1 loader contract.
type LoadStats struct {
	// TotalChannels is the number of channels the loader yielded before
	// any side was dropped.
	TotalChannels int

	// DroppedEdges counts directional edges that are unroutable: disabled,
	// zero capacity, carrying a malformed policy, part of a self-channel,
	// or part of a channel whose ID collided with one already seen.
	DroppedEdges int
}

// edgeBuilder is the pre-indexing representation of one directional edge,
// before dense vertex indices are resolved.
type edgeBuilder struct {
	channelID uint64
	from, to  NodeID
	capacity  msat.MilliSatoshi
	policy    Policy

	// dropped marks a directional side as unroutable (malformed policy,
	// zero capacity, disabled). The edge is still built, so that the
	// channel's other, healthy direction keeps a valid Reverse pairing
	// rather than defaulting to pointing at itself.
	dropped bool
}

func malformed(p Policy, capacity msat.MilliSatoshi) bool {
	if capacity == 0 {
		return true
	}
	if p.Disabled {
		return true
	}
	if p.MinHTLC > p.MaxHTLC {
		return true
	}

	return false
}

// Build constructs an immutable Graph from a Loader, assigning dense vertex
// and edge indices and computing the CSR-style outgoing adjacency (§4.1).
// Self-channels and channel-ID collisions are structural errors and drop
// both directional sides entirely. Otherwise each directional side is
// checked independently: a side that is disabled, zero capacity, or
// carries a malformed policy is kept as an unroutable placeholder rather
// than omitted, so its channel's healthy direction always has a correct
// Reverse pairing to the opposite side instead of falling back to
// pointing at itself.
func Build(l Loader) (*Graph, LoadStats, error) {
	nodeIDs, err := l.Nodes()
	if err != nil {
		return nil, LoadStats{}, err
	}

	g := &Graph{
		byID: make(map[NodeID]Vertex, len(nodeIDs)),
	}
	g.nodes = make([]Node, 0, len(nodeIDs))

	for _, id := range nodeIDs {
		if _, exists := g.byID[id]; exists {
			continue
		}

		g.byID[id] = Vertex(len(g.nodes))
		g.nodes = append(g.nodes, Node{ID: id, SuccessProb: 1})
	}

	ensureVertex := func(id NodeID) Vertex {
		v, ok := g.byID[id]
		if ok {
			return v
		}

		v = Vertex(len(g.nodes))
		g.byID[id] = v
		g.nodes = append(g.nodes, Node{ID: id, SuccessProb: 1})
		return v
	}

	channels, err := l.Channels()
	if err != nil {
		return nil, LoadStats{}, err
	}

	stats := LoadStats{TotalChannels: len(channels)}

	var builders []edgeBuilder
	seenChannelIDs := make(map[uint64]bool, len(channels))

	for _, ch := range channels {
		// A self-channel (both ends the same node) and a channel ID
		// collision are both structural topology errors, not a
		// per-direction policy problem: neither direction has a
		// sensible routable meaning, so both sides are dropped
		// outright rather than kept as a disabled placeholder.
		if ch.Node1 == ch.Node2 {
			stats.DroppedEdges += 2
			continue
		}
		if seenChannelIDs[ch.ID] {
			stats.DroppedEdges += 2
			continue
		}
		seenChannelIDs[ch.ID] = true

		ensureVertex(ch.Node1)
		ensureVertex(ch.Node2)

		// Both directional sides are always built, even when one
		// side's policy is malformed: the other side is independently
		// routable (§3 "each direction is independent"), and keeping
		// a placeholder for the dropped side is what lets the
		// channel's two directions always pair up as Reverse of one
		// another below, rather than the surviving side silently
		// falling back to pointing at itself.
		side1Dropped := malformed(ch.Policy1, ch.Capacity)
		side2Dropped := malformed(ch.Policy2, ch.Capacity)

		if side1Dropped {
			stats.DroppedEdges++
		}
		if side2Dropped {
			stats.DroppedEdges++
		}

		builders = append(builders, edgeBuilder{
			channelID: ch.ID,
			from:      ch.Node1,
			to:        ch.Node2,
			capacity:  ch.Capacity,
			policy:    ch.Policy1,
			dropped:   side1Dropped,
		}, edgeBuilder{
			channelID: ch.ID,
			from:      ch.Node2,
			to:        ch.Node1,
			capacity:  ch.Capacity,
			policy:    ch.Policy2,
			dropped:   side2Dropped,
		})
	}

	g.edges = make([]Edge, len(builders))

	// Index reverse sides: every retained channel contributes exactly two
	// builders, one per direction, so they always pair up here. Keyed by
	// channelID since a channel contributes at most two edges.
	reverseIdx := make(map[uint64][]int, len(builders)/2+1)
	for i, b := range builders {
		reverseIdx[b.channelID] = append(reverseIdx[b.channelID], i)
	}

	for i, b := range builders {
		policy := b.policy
		if b.dropped {
			// Force the placeholder unroutable regardless of what
			// the input policy claimed, so Enabled()/Feasible()
			// reject it the same way a genuinely disabled edge
			// does.
			policy.Disabled = true
		}

		g.edges[i] = Edge{
			ChannelID: b.channelID,
			From:      g.byID[b.from],
			To:        g.byID[b.to],
			Capacity:  b.capacity,
			Policy:    policy,
			Reverse:   EdgeIndex(i),
		}
	}
	for _, idxs := range reverseIdx {
		if len(idxs) == 2 {
			g.edges[idxs[0]].Reverse = EdgeIndex(idxs[1])
			g.edges[idxs[1]].Reverse = EdgeIndex(idxs[0])
		}
	}

	// Build CSR adjacency: sort edge indices by From vertex, then slice
	// by offset.
	order := make([]EdgeIndex, len(g.edges))
	for i := range order {
		order[i] = EdgeIndex(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.edges[order[i]].From < g.edges[order[j]].From
	})

	g.outOffsets = make([]int32, len(g.nodes)+1)
	g.outAdj = order

	for _, idx := range order {
		g.outOffsets[g.edges[idx].From+1]++
	}
	for v := 1; v < len(g.outOffsets); v++ {
		g.outOffsets[v] += g.outOffsets[v-1]
	}

	log.Infof("built graph: %d nodes, %d edges, %d dropped", len(g.nodes), len(g.edges), stats.DroppedEdges)

	return g, stats, nil
}
