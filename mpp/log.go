package mpp

import "github.com/btcsuite/btclog"

// log is this package's subsystem logger, following the teacher's
// per-package logging convention.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
