package main

import (
	"io"

	"github.com/btcsuite/btclog"

	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/hopsim"
	"github.com/lightningnetwork/lnsim/mpp"
	"github.com/lightningnetwork/lnsim/oracle"
	"github.com/lightningnetwork/lnsim/observation"
	"github.com/lightningnetwork/lnsim/pathfind"
	"github.com/lightningnetwork/lnsim/preflight"
	"github.com/lightningnetwork/lnsim/simulation"
	"github.com/lightningnetwork/lnsim/uptime"
)

// btclogBackend builds the run's single logging backend, writing every
// subsystem's output to w. This mirrors the teacher's root log.go, which
// owns one backend and hands out per-subsystem loggers from it rather than
// letting each package construct its own.
func btclogBackend(w io.Writer) *btclog.Backend {
	return btclog.NewBackend(w)
}

// setupLoggers assigns a subsystem logger to every package that defines
// one, using the same four-character subsystem tags lnd itself uses
// (GRPH, ORCL, PATH, HSIM, "MPP ", OBSV, SIM, plus UPTM and PREF for the
// two packages adapted from the teacher's chanfitness/healthcheck).
func setupLoggers(backend *btclog.Backend) {
	graph.UseLogger(backend.Logger("GRPH"))
	oracle.UseLogger(backend.Logger("ORCL"))
	pathfind.UseLogger(backend.Logger("PATH"))
	hopsim.UseLogger(backend.Logger("HSIM"))
	mpp.UseLogger(backend.Logger("MPP "))
	observation.UseLogger(backend.Logger("OBSV"))
	simulation.UseLogger(backend.Logger("SIM "))
	uptime.UseLogger(backend.Logger("UPTM"))
	preflight.UseLogger(backend.Logger("PREF"))
}
