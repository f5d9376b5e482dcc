// Package lnsimerr defines the typed outcomes and invariant-violation errors
// shared across the simulator, in the style of lnwallet's per-condition
// error types (ErrHtlcIndexAlreadyFailed, ErrUnknownHtlcIndex, ...): small
// named types with an Error() method rather than sentinel strings, so
// callers can switch on the concrete type.
package lnsimerr

import "fmt"

// FailureCause distinguishes why a single hop rejected an HTLC during an
// attempt (§4.4).
type FailureCause uint8

const (
	// CauseInsufficientBalance means the hop's actual balance could not
	// carry the amount requested.
	CauseInsufficientBalance FailureCause = iota

	// CauseNodeOffline means the hop's node dropped the HTLC due to its
	// simulated offline draw.
	CauseNodeOffline

	// CausePolicyViolation means the hop's policy (htlc bounds, enabled
	// flag) rejected the amount.
	CausePolicyViolation
)

// String renders the failure cause for logs and result records.
func (c FailureCause) String() string {
	switch c {
	case CauseInsufficientBalance:
		return "insufficient_balance"
	case CauseNodeOffline:
		return "node_offline"
	case CausePolicyViolation:
		return "policy_violation"
	default:
		return "unknown_cause"
	}
}

// ErrHopFailed is returned internally by the hop simulator when an attempt
// fails partway along its path.
type ErrHopFailed struct {
	HopIndex int
	Cause    FailureCause
}

// Error implements the error interface.
func (e ErrHopFailed) Error() string {
	return fmt.Sprintf("attempt failed at hop %d: %s", e.HopIndex, e.Cause)
}

// ErrNoPathFound means the pathfinder could not produce any feasible path
// for the requested amount.
type ErrNoPathFound struct {
	Src, Dst string
	Amount   uint64
}

// Error implements the error interface.
func (e ErrNoPathFound) Error() string {
	return fmt.Sprintf("no path found from %s to %s for %d msat",
		e.Src, e.Dst, e.Amount)
}

// ErrCapacityExhausted means every candidate path was tried and each
// attempt failed, whatever the hop failure cause.
type ErrCapacityExhausted struct {
	Src, Dst string
	Amount   uint64
	Attempts int
}

// Error implements the error interface.
func (e ErrCapacityExhausted) Error() string {
	return fmt.Sprintf("capacity exhausted from %s to %s for %d msat "+
		"after %d attempts", e.Src, e.Dst, e.Amount, e.Attempts)
}

// ErrShardTooSmall means a shard could not be split further without
// dropping below the configured minimum shard size.
type ErrShardTooSmall struct {
	Amount, MinShard uint64
}

// Error implements the error interface.
func (e ErrShardTooSmall) Error() string {
	return fmt.Sprintf("shard of %d msat cannot split below minimum of "+
		"%d msat", e.Amount, e.MinShard)
}

// ErrCLTVExceeded means every candidate path exceeded the source's maximum
// total CLTV delta.
type ErrCLTVExceeded struct {
	MaxCLTV uint32
}

// Error implements the error interface.
func (e ErrCLTVExceeded) Error() string {
	return fmt.Sprintf("no path found within max total cltv of %d blocks",
		e.MaxCLTV)
}

// ErrCandidateBudgetExhausted means the pathfinder's k-shortest resumption
// cap was reached without settling the attempt.
type ErrCandidateBudgetExhausted struct {
	Budget int
}

// Error implements the error interface.
func (e ErrCandidateBudgetExhausted) Error() string {
	return fmt.Sprintf("exhausted candidate-path budget of %d attempts",
		e.Budget)
}
