// Package hopsim executes a single payment attempt against a fixed path,
// walking it source to destination and checking each hop's actual
// feasibility, in contrast to the pathfinder's belief-based search (§4.4).
package hopsim

import (
	"math/rand"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/lnsimerr"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/observation"
	"github.com/lightningnetwork/lnsim/oracle"
	"github.com/lightningnetwork/lnsim/pathfind"
)

// Result is the outcome of one attempt.
type Result struct {
	Success      bool
	FailedHop    int
	Cause        lnsimerr.FailureCause
	Path         *pathfind.Path
	Observations []observation.Entry
	// TraversedEdges is path.Edges[:k], the edges the attempt actually
	// crossed (all of them on success, a prefix on failure).
	TraversedEdges []graph.EdgeIndex
}

// Run executes one attempt of path, carrying destAmount to the destination
// node of the path's final edge. src and dst are the payment's true
// endpoints, needed to tag observation roles; attemptIndex identifies this
// attempt for the path-diversity metric. rng is the payment's seeded
// source for node-offline draws (§4.4 step 3).
func Run(
	g *graph.Graph,
	view *oracle.PaymentView,
	rng *rand.Rand,
	path *pathfind.Path,
	src, dst graph.Vertex,
	attemptIndex int,
) *Result {

	nodes := pathNodes(g, src, path)

	failedHop := -1
	cause := lnsimerr.FailureCause(0)

	for i, edgeIdx := range path.Edges {
		edge := g.Edge(edgeIdx)
		amount := path.Amounts[i]

		switch {
		case !edge.Feasible(amount):
			failedHop, cause = i, lnsimerr.CausePolicyViolation
		case view.Actual(edgeIdx) < amount:
			failedHop, cause = i, lnsimerr.CauseInsufficientBalance
		case !nodeAccepts(g.Node(edge.To), rng):
			failedHop, cause = i, lnsimerr.CauseNodeOffline
		}

		if failedHop >= 0 {
			break
		}
	}

	if failedHop < 0 {
		view.Settle(path.Edges, path.Amounts)
	} else {
		for j := 0; j < failedHop; j++ {
			view.OnSuccess(path.Edges[j], path.Amounts[j])
		}
		view.OnFailure(path.Edges[failedHop], path.Amounts[failedHop])
	}

	traversedEdgeCount := len(path.Edges)
	if failedHop >= 0 {
		traversedEdgeCount = failedHop + 1
	}
	traversedEdges := path.Edges[:traversedEdgeCount]
	traversedNodeCount := traversedEdgeCount + 1

	observations := recordObservations(nodes[:traversedNodeCount], path.Amounts, src, dst, attemptIndex)

	return &Result{
		Success:        failedHop < 0,
		FailedHop:      failedHop,
		Cause:          cause,
		Path:           path,
		Observations:   observations,
		TraversedEdges: traversedEdges,
	}
}

// nodeAccepts samples whether a node forwards the HTLC rather than
// dropping it for being offline or flaky (§4.4 step 3). SuccessProb == 1
// (the default) never triggers a draw. ForceOnline, set from the dev-only
// lncfg.ExperimentalConfig override, disables the draw entirely while the
// offline model is being tuned.
func nodeAccepts(n *graph.Node, rng *rand.Rand) bool {
	if ForceOnline || n.SuccessProb >= 1 {
		return true
	}
	return rng.Float64() < n.SuccessProb
}

func pathNodes(g *graph.Graph, src graph.Vertex, path *pathfind.Path) []graph.Vertex {
	nodes := make([]graph.Vertex, len(path.Edges)+1)
	nodes[0] = src
	for i, idx := range path.Edges {
		nodes[i+1] = g.Edge(idx).To
	}
	return nodes
}

func recordObservations(
	nodes []graph.Vertex,
	amounts []msat.MilliSatoshi,
	src, dst graph.Vertex,
	attemptIndex int,
) []observation.Entry {

	entries := make([]observation.Entry, 0, len(nodes))

	shardAmount := func(idx int) msat.MilliSatoshi {
		if idx < len(amounts) {
			return amounts[idx]
		}
		return amounts[len(amounts)-1]
	}

	for idx, v := range nodes {
		role := observation.RoleIntermediary
		switch v {
		case src:
			role = observation.RoleSource
		case dst:
			role = observation.RoleDestination
		}

		e := observation.Entry{
			Node:         v,
			Role:         role,
			ShardAmount:  shardAmount(idx),
			AttemptIndex: attemptIndex,
			Position:     idx,
		}
		if idx > 0 {
			e.Predecessor, e.HasPredecessor = nodes[idx-1], true
		}
		if idx+1 < len(nodes) {
			e.Successor, e.HasSuccessor = nodes[idx+1], true
		}

		entries = append(entries, e)
	}

	return entries
}
