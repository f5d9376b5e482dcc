// Package observation maintains, per payment, the set of nodes an observer
// positioned at an adversary-flagged node could learn something from, and
// derives the §4.6 attack metrics from that set. It also implements the
// three adversary-selection strategies the simulation driver chooses
// between at configuration time.
package observation

import "github.com/lightningnetwork/lnsim/graph"
import "github.com/lightningnetwork/lnsim/msat"

// Role is the position a node occupied on a traversed edge when it was
// observed (§4.6).
type Role uint8

const (
	RoleSource Role = iota
	RoleDestination
	RoleIntermediary
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleDestination:
		return "destination"
	case RoleIntermediary:
		return "intermediary"
	default:
		return "unknown"
	}
}

// Entry is one (node, role, shard-amount) fact recorded for a payment
// (§4.6).
type Entry struct {
	Node        graph.Vertex
	Role        Role
	ShardAmount msat.MilliSatoshi

	// Predecessor and Successor are the vertices immediately before and
	// after Node on the attempt that produced this entry; they are only
	// meaningful for RoleIntermediary and are used by the
	// predecessor/successor attack metric. A zero value with ok=false
	// (tracked via HasPredecessor/HasSuccessor) marks an absent hop.
	Predecessor    graph.Vertex
	HasPredecessor bool
	Successor      graph.Vertex
	HasSuccessor   bool

	// AttemptIndex identifies which attempt within the payment produced
	// this entry, used by the path-diversity metric to group entries
	// back into their attempt's edge set.
	AttemptIndex int

	// Position is this node's 0-based hop index along the attempt's
	// path (0 = source), used to order intermediaries when evaluating
	// the confirmation-attack vulnerability.
	Position int
}

// Log accumulates every Entry observed across a single payment's attempts,
// including attempts the splitter later rolls back (§4.5: mutations and
// observations remain recorded even when the overall verdict is Failure).
type Log struct {
	entries     []Entry
	attemptEdges map[int][]graph.EdgeIndex
}

// NewLog returns an empty observation log for one payment.
func NewLog() *Log {
	return &Log{attemptEdges: make(map[int][]graph.EdgeIndex)}
}

// Record appends one entry to the log.
func (l *Log) Record(e Entry) {
	l.entries = append(l.entries, e)
}

// RecordAttemptEdges records the edge set an attempt traversed, keyed by
// attempt index, for later use by the path-diversity metric.
func (l *Log) RecordAttemptEdges(attemptIndex int, edges []graph.EdgeIndex) {
	cp := make([]graph.EdgeIndex, len(edges))
	copy(cp, edges)
	l.attemptEdges[attemptIndex] = cp
}

// Entries returns every recorded entry.
func (l *Log) Entries() []Entry {
	return l.entries
}
