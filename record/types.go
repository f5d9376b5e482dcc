// Package record defines the §6 result output format: one framed record
// per payment plus a per-run manifest. The per-payment stream is TLV
// encoded with lightningnetwork/lnd/tlv, mirroring how the teacher encodes
// its own wire messages; the manifest is a single small JSON document, a
// deliberate split since it is written once per run and never needs TLV's
// forward-compatible extensibility the way a long, evolving result stream
// does.
package record

import "github.com/lightningnetwork/lnsim/msat"

// Verdict is the terminal state of a payment (§7).
type Verdict uint8

const (
	VerdictSuccess Verdict = iota
	VerdictNoPathFound
	VerdictCapacityExhausted
	VerdictShardTooSmall
	VerdictCLTVExceeded
	VerdictCandidateBudgetExhausted
)

// String renders the verdict for reports.
func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return "success"
	case VerdictNoPathFound:
		return "no_path_found"
	case VerdictCapacityExhausted:
		return "capacity_exhausted"
	case VerdictShardTooSmall:
		return "shard_too_small"
	case VerdictCLTVExceeded:
		return "cltv_exceeded"
	case VerdictCandidateBudgetExhausted:
		return "candidate_budget_exhausted"
	default:
		return "unknown"
	}
}

// AttemptRecord is one attempt within a payment: the channel ids it
// traversed (not directional edge indices, which are only meaningful
// within one run's in-memory graph) and the amount carried across each.
type AttemptRecord struct {
	ChannelIDs []uint64
	Amounts    []msat.MilliSatoshi
	Success    bool
}

// PaymentRecord captures everything §6 requires to be reported for one
// payment.
type PaymentRecord struct {
	PaymentID         uint64
	Source, Destination string
	Amount            msat.MilliSatoshi
	Verdict           Verdict
	AttemptCount      uint32
	TotalFee          msat.MilliSatoshi
	MaxPathLength     uint32
	Attempts          []AttemptRecord
	ObservationBlob   []byte
	AdversarySetHash  [32]byte
}
