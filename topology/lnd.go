package topology

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/msat"
)

// lndDescribeGraph mirrors the shape of lnd's `describegraph` RPC/CLI JSON
// output: numeric fields are serialized as strings, the dialect's best
// known quirk (guarding against JSON-number precision loss on 64-bit
// satoshi amounts).
type lndDescribeGraph struct {
	Nodes []lndNode `json:"nodes"`
	Edges []lndEdge `json:"edges"`
}

type lndNode struct {
	PubKey string `json:"pub_key"`
}

type lndEdge struct {
	ChannelID    string        `json:"channel_id"`
	Node1Pub     string        `json:"node1_pub"`
	Node2Pub     string        `json:"node2_pub"`
	Capacity     string        `json:"capacity"`
	Node1Policy  *lndRoutingPolicy `json:"node1_policy"`
	Node2Policy  *lndRoutingPolicy `json:"node2_policy"`
}

type lndRoutingPolicy struct {
	TimeLockDelta   uint16 `json:"time_lock_delta"`
	MinHtlc         string `json:"min_htlc"`
	FeeBaseMsat     string `json:"fee_base_msat"`
	FeeRateMilliMsat string `json:"fee_rate_milli_msat"`
	Disabled        bool   `json:"disabled"`
	MaxHtlcMsat     string `json:"max_htlc_msat"`
}

// ParseLND decodes the lnd describegraph dialect into a graph.Loader.
func ParseLND(r io.Reader) (graph.Loader, error) {
	var doc lndDescribeGraph
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}

	nodeIDs := make([]graph.NodeID, len(doc.Nodes))
	for i, n := range doc.Nodes {
		nodeIDs[i] = graph.NodeID(n.PubKey)
	}

	channels := make([]graph.Channel, 0, len(doc.Edges))
	for _, e := range doc.Edges {
		channelID, err := strconv.ParseUint(e.ChannelID, 10, 64)
		if err != nil {
			return nil, err
		}
		capSat, err := strconv.ParseUint(e.Capacity, 10, 64)
		if err != nil {
			return nil, err
		}
		// lnd reports capacity in satoshis; the core works in msat.
		capacity := msat.MilliSatoshi(capSat * 1000)

		p1, err := toLNDPolicy(e.Node1Policy)
		if err != nil {
			return nil, err
		}
		p2, err := toLNDPolicy(e.Node2Policy)
		if err != nil {
			return nil, err
		}

		channels = append(channels, graph.Channel{
			ID:       channelID,
			Node1:    graph.NodeID(e.Node1Pub),
			Node2:    graph.NodeID(e.Node2Pub),
			Capacity: capacity,
			Policy1:  p1,
			Policy2:  p2,
		})
	}

	return &graph.MemLoader{NodeIDs: nodeIDs, ChannelList: channels}, nil
}

func toLNDPolicy(p *lndRoutingPolicy) (graph.Policy, error) {
	if p == nil {
		return graph.Policy{Disabled: true}, nil
	}

	minHtlc, err := parseMsatField(p.MinHtlc)
	if err != nil {
		return graph.Policy{}, err
	}
	maxHtlc, err := parseMsatField(p.MaxHtlcMsat)
	if err != nil {
		return graph.Policy{}, err
	}
	baseFee, err := parseMsatField(p.FeeBaseMsat)
	if err != nil {
		return graph.Policy{}, err
	}
	rate, err := strconv.ParseUint(emptyToZero(p.FeeRateMilliMsat), 10, 32)
	if err != nil {
		return graph.Policy{}, err
	}

	return graph.Policy{
		BaseFee:          baseFee,
		FeeRateMilliMsat: uint32(rate),
		CLTVDelta:        p.TimeLockDelta,
		MinHTLC:          minHtlc,
		MaxHTLC:          maxHtlc,
		Disabled:         p.Disabled,
	}, nil
}

func parseMsatField(s string) (msat.MilliSatoshi, error) {
	v, err := strconv.ParseUint(emptyToZero(s), 10, 64)
	if err != nil {
		return 0, err
	}
	return msat.MilliSatoshi(v), nil
}

func emptyToZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
