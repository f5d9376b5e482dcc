// Package centrality loads the plain-text node rankings consumed by the
// adversary-selection strategies (§4.6, §6 "Centrality files (consumed)").
// Each file is one node id per line, already sorted by the producer in
// descending score order; this package trusts that ordering rather than
// recomputing centrality itself, matching the spec's framing of these files
// as an external collaborator's output.
package centrality

import (
	"bufio"
	"io"
	"strings"

	"github.com/lightningnetwork/lnsim/graph"
)

// Ranking is an ordered node list, most central first.
type Ranking struct {
	order []graph.NodeID
}

// Load parses r into a Ranking, one node id per non-blank line.
func Load(r io.Reader) (*Ranking, error) {
	scanner := bufio.NewScanner(r)

	var order []graph.NodeID
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		order = append(order, graph.NodeID(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Ranking{order: order}, nil
}

// Len returns the number of ranked nodes.
func (r *Ranking) Len() int { return len(r.order) }

// TopK returns the first k node ids, or every ranked node if there are fewer
// than k.
func (r *Ranking) TopK(k int) []graph.NodeID {
	if k > len(r.order) {
		k = len(r.order)
	}
	out := make([]graph.NodeID, k)
	copy(out, r.order[:k])
	return out
}
