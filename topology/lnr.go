package topology

import (
	"encoding/json"
	"io"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
)

// lnrDoc is the simulator's second accepted dialect: plain JSON numbers
// rather than lnd's string-encoded satoshi amounts, matching what a
// research-oriented graph dumper (lnresearch-style tooling) tends to emit.
type lnrDoc struct {
	Nodes    []string    `json:"nodes"`
	Channels []lnrChannel `json:"channels"`
}

type lnrChannel struct {
	ID       uint64     `json:"id"`
	Node1    string     `json:"node1"`
	Node2    string     `json:"node2"`
	Capacity uint64     `json:"capacity"`
	Policy1  lnrPolicy `json:"policy1"`
	Policy2  lnrPolicy `json:"policy2"`
}

type lnrPolicy struct {
	BaseFeeMsat      uint64 `json:"base_fee_msat"`
	FeeRateMilliMsat uint32 `json:"fee_rate_milli_msat"`
	TimeLockDelta    uint16 `json:"time_lock_delta"`
	MinHtlc          uint64 `json:"min_htlc"`
	MaxHtlcMsat      uint64 `json:"max_htlc_msat"`
	Disabled         bool   `json:"disabled"`
}

// ParseLNR decodes the lnr dialect into a graph.Loader.
func ParseLNR(r io.Reader) (graph.Loader, error) {
	var doc lnrDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	nodeIDs := make([]graph.NodeID, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodeIDs[i] = graph.NodeID(n)
	}

	channels := make([]graph.Channel, len(doc.Channels))
	for i, c := range doc.Channels {
		channels[i] = graph.Channel{
			ID:       c.ID,
			Node1:    graph.NodeID(c.Node1),
			Node2:    graph.NodeID(c.Node2),
			Capacity: msat.MilliSatoshi(c.Capacity * 1000),
			Policy1:  toLNRPolicy(c.Policy1),
			Policy2:  toLNRPolicy(c.Policy2),
		}
	}

	return &graph.MemLoader{NodeIDs: nodeIDs, ChannelList: channels}, nil
}

func toLNRPolicy(p lnrPolicy) graph.Policy {
	return graph.Policy{
		BaseFee:          msat.MilliSatoshi(p.BaseFeeMsat),
		FeeRateMilliMsat: p.FeeRateMilliMsat,
		CLTVDelta:        p.TimeLockDelta,
		MinHTLC:          msat.MilliSatoshi(p.MinHtlc),
		MaxHTLC:          msat.MilliSatoshi(p.MaxHtlcMsat),
		Disabled:         p.Disabled,
	}
}
