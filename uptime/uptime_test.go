package uptime

import (
	"testing"
	"time"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/stretchr/testify/require"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestUptimeHalfWindowOnline(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mid := start.Add(time.Hour)
	end := start.Add(2 * time.Hour)

	l := NewNodeEventLog("alice", fixedNow(end))
	l.Add(start, true)
	l.Add(mid, false)

	up, err := l.Uptime(start, end)
	require.NoError(t, err)
	require.Equal(t, time.Hour, up)
}

func TestUptimeOpenEndedOnlinePeriod(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	l := NewNodeEventLog("alice", fixedNow(end))
	l.Add(start, true)

	up, err := l.Uptime(start, end)
	require.NoError(t, err)
	require.Equal(t, 3*time.Hour, up)
}

func TestEstimatorSuccessProb(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	offline := start.Add(30 * time.Minute)
	end := start.Add(time.Hour)

	est := NewEstimator(fixedNow(end))
	est.Record("alice", start, true)
	est.Record("alice", offline, false)

	prob, ok := est.SuccessProb("alice", start, end)
	require.True(t, ok)
	require.InDelta(t, 0.5, prob, 0.001)

	_, ok = est.SuccessProb("bob", start, end)
	require.False(t, ok)
}

func TestEstimatorApplyToGraph(t *testing.T) {
	policy := graph.Policy{MinHTLC: 1, MaxHTLC: 1000}
	loader := &graph.MemLoader{
		NodeIDs: []graph.NodeID{"alice", "bob"},
		ChannelList: []graph.Channel{
			{ID: 1, Node1: "alice", Node2: "bob", Capacity: 1000, Policy1: policy, Policy2: policy},
		},
	}
	g, _, err := graph.Build(loader)
	require.NoError(t, err)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	est := NewEstimator(fixedNow(end))
	est.Record("alice", start, true)

	est.ApplyToGraph(g, start, end)

	v, _ := g.Vertex("alice")
	require.InDelta(t, 1.0, g.Node(v).SuccessProb, 0.001)

	bobV, _ := g.Vertex("bob")
	require.Equal(t, 1.0, g.Node(bobV).SuccessProb)
}
