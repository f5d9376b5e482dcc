package oracle

import "github.com/btcsuite/btclog"

// log is this package's subsystem logger, following the teacher's
// per-package logging convention. It starts disabled; cmd/lnsim wires a
// real backend at startup.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
