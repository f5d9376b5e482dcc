package simulation

import (
	"math/rand"

	"github.com/lightningnetwork/lnsim/graph"
)

type pair struct {
	src, dst graph.Vertex
}

// samplePairs draws count (src, dst) pairs uniformly at random over the
// graph's vertices, using rng so that the whole sequence is reproducible
// from the run seed.
func samplePairs(g *graph.Graph, rng *rand.Rand, count int) []pair {
	n := g.NodeCount()
	pairs := make([]pair, count)

	for i := range pairs {
		pairs[i] = pair{
			src: graph.Vertex(rng.Intn(n)),
			dst: graph.Vertex(rng.Intn(n)),
		}
	}

	return pairs
}
