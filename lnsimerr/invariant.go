package lnsimerr

import (
	goerrors "github.com/go-errors/errors"
)

// InvariantViolation indicates a bug in the simulator itself, not a
// modeling outcome: a negative balance, a belief inversion, a path
// revisiting a node. These must not occur on valid input (§7) and abort the
// run with diagnostic context attached.
type InvariantViolation struct {
	// PaymentID identifies the payment being processed when the
	// violation was detected.
	PaymentID uint64

	// Attempt is the attempt index within the payment, or -1 if the
	// violation was detected outside of any attempt.
	Attempt int

	// Hop is the hop index within the attempt, or -1 if not applicable.
	Hop int

	// Detail describes the specific invariant that was violated.
	Detail string
}

// NewInvariantViolation wraps an InvariantViolation in a go-errors error so
// that a stack trace is captured at the point of detection, matching how
// the teacher codebase wraps unexpected failures that should carry a trace
// all the way to the top-level recovery handler.
func NewInvariantViolation(paymentID uint64, attempt, hop int,
	detail string) error {

	return goerrors.Wrap(InvariantViolation{
		PaymentID: paymentID,
		Attempt:   attempt,
		Hop:       hop,
		Detail:    detail,
	}, 1)
}

// Error implements the error interface.
func (e InvariantViolation) Error() string {
	return "invariant violation: " + e.Detail
}
