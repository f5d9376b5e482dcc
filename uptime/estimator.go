package uptime

import (
	"time"

	"github.com/lightningnetwork/lnsim/graph"
)

// Estimator tracks one NodeEventLog per node with recorded history and
// derives each node's success probability from it. Nodes with no history
// are left at the graph's default SuccessProb of 1 (§3).
type Estimator struct {
	logs map[graph.NodeID]*NodeEventLog
	now  func() time.Time
}

// NewEstimator returns an empty Estimator. now resolves "the present" for
// logs that end on an open online period; tests should supply a fixed
// clock.
func NewEstimator(now func() time.Time) *Estimator {
	return &Estimator{logs: make(map[graph.NodeID]*NodeEventLog), now: now}
}

// Record adds one online/offline event for node.
func (est *Estimator) Record(node graph.NodeID, timestamp time.Time, online bool) {
	l, ok := est.logs[node]
	if !ok {
		l = NewNodeEventLog(node, est.now)
		est.logs[node] = l
	}
	l.Add(timestamp, online)
}

// SuccessProb returns node's estimated per-attempt success probability over
// [start, end]: its uptime fraction, clamped to [0, 1]. ok is false when no
// history was recorded for node.
func (est *Estimator) SuccessProb(node graph.NodeID, start, end time.Time) (prob float64, ok bool) {
	l, exists := est.logs[node]
	if !exists {
		return 0, false
	}

	window := end.Sub(start)
	if window <= 0 {
		return 0, false
	}

	up, err := l.Uptime(start, end)
	if err != nil {
		return 0, false
	}

	prob = float64(up) / float64(window)
	if prob < 0 {
		prob = 0
	}
	if prob > 1 {
		prob = 1
	}

	return prob, true
}

// ApplyToGraph sets g's per-node SuccessProb for every node this estimator
// has history for, leaving the rest at their default of 1; hopsim's
// node-offline draw reads that value.
func (est *Estimator) ApplyToGraph(g *graph.Graph, start, end time.Time) {
	for node := range est.logs {
		v, ok := g.Vertex(node)
		if !ok {
			continue
		}

		prob, ok := est.SuccessProb(node, start, end)
		if !ok {
			continue
		}

		g.SetSuccessProb(v, prob)
	}
}
