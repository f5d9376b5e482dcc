package simulation

import "github.com/lightningnetwork/lnsim/graph"

// reachable reports whether dst is reachable from src following only
// enabled edges, ignoring capacity and fees entirely (§4.7 "connectivity
// precheck" — pairs with no path of any length are skipped up front rather
// than burning a full pathfinder search to discover the same thing).
func reachable(g *graph.Graph, src, dst graph.Vertex) bool {
	if src == dst {
		return false
	}

	visited := make([]bool, g.NodeCount())
	queue := []graph.Vertex{src}
	visited[src] = true

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if v == dst {
			return true
		}

		for _, idx := range g.OutEdges(v) {
			edge := g.Edge(idx)
			if !edge.Enabled() {
				continue
			}
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			queue = append(queue, edge.To)
		}
	}

	return false
}
