package observation

import (
	"math/rand"

	"github.com/lightningnetwork/lnsim/centrality"
	"github.com/lightningnetwork/lnsim/graph"
)

// Strategy selects which nodes are flagged as adversaries for one
// simulation iteration (§4.6).
type Strategy int

const (
	// StrategyBetweenness flags the top-k nodes by a supplied
	// betweenness-centrality ranking.
	StrategyBetweenness Strategy = iota

	// StrategyDegree flags the top-k nodes by a supplied
	// degree-centrality ranking.
	StrategyDegree

	// StrategyUniform flags a uniformly random sample of k nodes, no
	// ranking required.
	StrategyUniform
)

// Selector resamples the adversary set on a graph between driver
// iterations (§4.7 step 1).
type Selector struct {
	strategy Strategy
	ranking  *centrality.Ranking
}

// NewRankedSelector builds a Selector that always flags the top-k nodes of
// ranking, for strategy StrategyBetweenness or StrategyDegree.
func NewRankedSelector(strategy Strategy, ranking *centrality.Ranking) *Selector {
	return &Selector{strategy: strategy, ranking: ranking}
}

// NewUniformSelector builds a Selector that flags a uniformly random subset
// of nodes each time it is asked to (§4.6 "--random").
func NewUniformSelector() *Selector {
	return &Selector{strategy: StrategyUniform}
}

// Resample clears every node's adversary flag and flags count of them
// (the driver computes count from a configured fraction) according to the
// selector's strategy. rng is the payment/iteration-scoped source for the
// uniform strategy's sampling.
func (s *Selector) Resample(g *graph.Graph, count int, rng *rand.Rand) {
	for v := 0; v < g.NodeCount(); v++ {
		g.SetAdversary(graph.Vertex(v), false)
	}

	log.Debugf("resampling %d adversaries out of %d nodes", count, g.NodeCount())

	if count <= 0 {
		return
	}

	switch s.strategy {
	case StrategyUniform:
		s.resampleUniform(g, count, rng)
	default:
		s.resampleRanked(g, count)
	}
}

func (s *Selector) resampleRanked(g *graph.Graph, count int) {
	if s.ranking == nil {
		return
	}

	for _, id := range s.ranking.TopK(count) {
		v, ok := g.Vertex(id)
		if !ok {
			continue
		}
		g.SetAdversary(v, true)
	}
}

func (s *Selector) resampleUniform(g *graph.Graph, count int, rng *rand.Rand) {
	n := g.NodeCount()
	if count > n {
		count = n
	}

	perm := rng.Perm(n)
	for i := 0; i < count; i++ {
		g.SetAdversary(graph.Vertex(perm[i]), true)
	}
}
