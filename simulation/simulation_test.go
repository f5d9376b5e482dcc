package simulation

import (
	"context"
	"math/rand"
	"testing"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/observation"
	"github.com/lightningnetwork/lnsim/pathfind"
	"github.com/stretchr/testify/require"
)

func chainGraph(t *testing.T) *graph.Graph {
	t.Helper()

	policy := graph.Policy{
		FeeRateMilliMsat: 0,
		MinHTLC:          1,
		MaxHTLC:          1_000_000,
	}

	loader := &graph.MemLoader{
		NodeIDs: []graph.NodeID{"alice", "bob", "carol", "dave"},
		ChannelList: []graph.Channel{
			{ID: 1, Node1: "alice", Node2: "bob", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
			{ID: 2, Node1: "bob", Node2: "carol", Capacity: 1_000_000, Policy1: policy, Policy2: policy},
		},
	}

	g, _, err := graph.Build(loader)
	require.NoError(t, err)
	return g
}

func TestRunProducesOneOutcomePerPairPerFraction(t *testing.T) {
	g := chainGraph(t)

	cfg := Config{
		Amount:             100_000,
		Seed:               7,
		PairCount:          5,
		AdversaryFractions: []float64{0, 0.5},
		Split:              false,
		PathMetric:         pathfind.MinFee,
		MinShard:           1,
		Selector:           observation.NewUniformSelector(),
		Concurrency:        4,
	}

	d := NewDriver(g, cfg, nil)
	outcomes, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, outcomes, len(cfg.AdversaryFractions)*cfg.PairCount)
}

func TestRunSkipsSameSourceAndDestination(t *testing.T) {
	g := chainGraph(t)

	cfg := Config{
		Amount:             100_000,
		Seed:               1,
		PairCount:          50,
		AdversaryFractions: []float64{0},
		PathMetric:         pathfind.MinFee,
		MinShard:           1,
		Selector:           observation.NewUniformSelector(),
		Concurrency:        2,
	}

	d := NewDriver(g, cfg, nil)
	outcomes, err := d.Run(context.Background())
	require.NoError(t, err)

	var sawSkip bool
	for _, o := range outcomes {
		if o.Src == o.Dst {
			require.True(t, o.Skipped)
			sawSkip = true
		}
	}
	_ = sawSkip
}

func TestRunDeterministicForSameSeed(t *testing.T) {
	g := chainGraph(t)

	newCfg := func() Config {
		return Config{
			Amount:             50_000,
			Seed:               42,
			PairCount:          10,
			AdversaryFractions: []float64{0},
			PathMetric:         pathfind.MinFee,
			MinShard:           1,
			Selector:           observation.NewUniformSelector(),
			Concurrency:        1,
		}
	}

	d1 := NewDriver(g, newCfg(), nil)
	out1, err := d1.Run(context.Background())
	require.NoError(t, err)

	d2 := NewDriver(g, newCfg(), nil)
	out2, err := d2.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, len(out1), len(out2))
	for i := range out1 {
		require.Equal(t, out1[i].Src, out2[i].Src)
		require.Equal(t, out1[i].Dst, out2[i].Dst)
		require.Equal(t, out1[i].Skipped, out2[i].Skipped)
		if out1[i].Result != nil && out2[i].Result != nil {
			require.Equal(t, out1[i].Result.Success, out2[i].Result.Success)
		}
	}
}

func TestAdversarySetHashChangesWithSelection(t *testing.T) {
	g := chainGraph(t)

	sel := observation.NewUniformSelector()
	rng := rand.New(rand.NewSource(1))
	sel.Resample(g, 0, rng)
	h1 := adversarySetHash(g)

	sel.Resample(g, g.NodeCount(), rng)
	h2 := adversarySetHash(g)

	require.NotEqual(t, h1, h2)
}
