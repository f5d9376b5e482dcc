package simulation

import (
	"crypto/sha256"
	"encoding/json"
	"sort"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/lnsimerr"
	"github.com/lightningnetwork/lnsim/mpp"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/record"
)

// Outcome is one sampled pair's result, whether it ran a payment or was
// skipped by the connectivity precheck (§4.7).
type Outcome struct {
	PaymentID uint64
	Fraction  float64
	Src, Dst  graph.NodeID

	Skipped    bool
	SkipReason string

	Amount msat.MilliSatoshi
	Result *mpp.Result
	Err    error

	AdversarySetHash [32]byte
}

// verdictFor maps an Outcome onto the closed §7 verdict set.
func verdictFor(o Outcome) record.Verdict {
	if o.Result != nil && o.Result.Success {
		return record.VerdictSuccess
	}

	switch e := o.Err.(type) {
	case lnsimerr.ErrNoPathFound:
		return record.VerdictNoPathFound
	case lnsimerr.ErrCapacityExhausted:
		return record.VerdictCapacityExhausted
	case lnsimerr.ErrShardTooSmall:
		return record.VerdictShardTooSmall
	case lnsimerr.ErrCLTVExceeded:
		return record.VerdictCLTVExceeded
	case lnsimerr.ErrCandidateBudgetExhausted:
		return record.VerdictCandidateBudgetExhausted
	default:
		_ = e
		return record.VerdictCapacityExhausted
	}
}

// BuildRecord converts an Outcome for a payment that actually ran into the
// §6 result-output shape. Skipped pairs are not recorded; the driver logs
// them instead (§4.7 "skipped and logged").
func BuildRecord(o Outcome, g *graph.Graph) record.PaymentRecord {
	pr := record.PaymentRecord{
		PaymentID:        o.PaymentID,
		Source:           string(o.Src),
		Destination:      string(o.Dst),
		Amount:           o.Amount,
		Verdict:          verdictFor(o),
		AdversarySetHash: o.AdversarySetHash,
	}

	if o.Result == nil {
		return pr
	}

	var maxHops uint32
	var attemptCount uint32
	var totalFee msat.MilliSatoshi

	for _, shard := range o.Result.Shards {
		for _, attempt := range shard.Attempts {
			attemptCount++

			ar := record.AttemptRecord{Success: attempt.Success}
			for _, idx := range attempt.TraversedEdges {
				ar.ChannelIDs = append(ar.ChannelIDs, g.Edge(idx).ChannelID)
			}
			ar.Amounts = append(ar.Amounts, attempt.Path.Amounts[:len(attempt.TraversedEdges)]...)
			pr.Attempts = append(pr.Attempts, ar)

			if attempt.Success {
				if hops := uint32(len(attempt.Path.Edges)); hops > maxHops {
					maxHops = hops
				}
				totalFee += attempt.Path.Fee
			}
		}
	}

	pr.AttemptCount = attemptCount
	pr.TotalFee = totalFee
	pr.MaxPathLength = maxHops

	if o.Result.Log != nil {
		if blob, err := json.Marshal(o.Result.Log.Entries()); err == nil {
			pr.ObservationBlob = blob
		}
	}

	return pr
}

// adversarySetHash fingerprints the current adversary set so two runs can
// be compared without re-deriving the full node list (§6 "adversary-set
// hash").
func adversarySetHash(g *graph.Graph) [32]byte {
	var ids []string
	for v := 0; v < g.NodeCount(); v++ {
		n := g.Node(graph.Vertex(v))
		if n.Adversary {
			ids = append(ids, string(n.ID))
		}
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
