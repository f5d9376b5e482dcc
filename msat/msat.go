// Package msat defines the millisatoshi amount type shared by every layer of
// the simulator, mirroring lnwire.MilliSatoshi's role in the teacher
// codebase.
package msat

import "fmt"

// MilliSatoshi represents a sub-satoshi amount, the unit carried by HTLCs
// and channel balances throughout the simulator.
type MilliSatoshi uint64

// ToSatoshis rounds down to the nearest whole satoshi.
func (m MilliSatoshi) ToSatoshis() uint64 {
	return uint64(m) / 1000
}

// String returns a human readable representation of the amount.
func (m MilliSatoshi) String() string {
	return fmt.Sprintf("%d msat", uint64(m))
}
