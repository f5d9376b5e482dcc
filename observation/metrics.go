package observation

import (
	"sort"

	"github.com/lightningnetwork/lnsim/graph"
)

// HasAdversaryIntermediary reports whether any adversary-flagged node
// appeared as an intermediary on any attempt of this payment, the per-
// payment predicate the observation-rate metric averages over (§4.6).
func (l *Log) HasAdversaryIntermediary(g *graph.Graph) bool {
	for _, e := range l.entries {
		if e.Role == RoleIntermediary && g.Node(e.Node).Adversary {
			return true
		}
	}
	return false
}

// PredecessorSuccessorAttack reports, for this payment, how many
// predecessor/successor deanonymization opportunities an adversary
// intermediary actually confirmed, out of how many such opportunities
// occurred at all. Each adversary-intermediary observation offers up to two
// independent opportunities — telling that its predecessor was the true
// source, and telling that its successor was the true destination — counted
// separately so the ratio this returns stays within [0, 1]. The driver
// averages the ratio across payments to report the §4.6 metric.
func (l *Log) PredecessorSuccessorAttack(g *graph.Graph, src, dst graph.Vertex) (hits, total int) {
	for _, e := range l.entries {
		if e.Role != RoleIntermediary || !g.Node(e.Node).Adversary {
			continue
		}

		if e.HasPredecessor {
			total++
			if e.Predecessor == src {
				hits++
			}
		}
		if e.HasSuccessor {
			total++
			if e.Successor == dst {
				hits++
			}
		}
	}
	return hits, total
}

// PathDiversity returns the mean pairwise Jaccard distance between the edge
// sets of this payment's distinct attempts (§4.6; meaningful for MPP
// payments with more than one attempt). Returns 0 when fewer than two
// attempts were recorded.
func (l *Log) PathDiversity() float64 {
	indices := make([]int, 0, len(l.attemptEdges))
	for idx := range l.attemptEdges {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	if len(indices) < 2 {
		return 0
	}

	var sum float64
	var pairs int

	for i := 0; i < len(indices); i++ {
		for j := i + 1; j < len(indices); j++ {
			sum += jaccardDistance(l.attemptEdges[indices[i]], l.attemptEdges[indices[j]])
			pairs++
		}
	}

	return sum / float64(pairs)
}

func jaccardDistance(a, b []graph.EdgeIndex) float64 {
	set := make(map[graph.EdgeIndex]uint8, len(a))
	for _, e := range a {
		set[e] |= 1
	}
	for _, e := range b {
		set[e] |= 2
	}

	var union, intersection int
	for _, mask := range set {
		union++
		if mask == 3 {
			intersection++
		}
	}
	if union == 0 {
		return 0
	}

	similarity := float64(intersection) / float64(union)
	return 1 - similarity
}

// VulnerableToConfirmationAttack reports whether this payment is vulnerable
// per §4.6: some attempt has at least two adversary intermediaries, the
// first (in path order) having the true source as predecessor and the last
// having the true destination as successor.
func (l *Log) VulnerableToConfirmationAttack(g *graph.Graph, src, dst graph.Vertex) bool {
	byAttempt := make(map[int][]Entry)
	for _, e := range l.entries {
		if e.Role != RoleIntermediary || !g.Node(e.Node).Adversary {
			continue
		}
		byAttempt[e.AttemptIndex] = append(byAttempt[e.AttemptIndex], e)
	}

	for _, entries := range byAttempt {
		if len(entries) < 2 {
			continue
		}

		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Position < entries[j].Position
		})

		first, last := entries[0], entries[len(entries)-1]
		if first.HasPredecessor && first.Predecessor == src &&
			last.HasSuccessor && last.Successor == dst {
			return true
		}
	}

	return false
}
