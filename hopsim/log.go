package hopsim

import "github.com/btcsuite/btclog"

// log is this package's subsystem logger, following the teacher's
// per-package logging convention.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// ForceOnline mirrors the dev-only lncfg.ExperimentalConfig.DisableOfflineDraws
// flag; cmd/lnsim sets this once at startup from the parsed config, and it
// makes nodeAccepts always succeed regardless of any node's SuccessProb.
var ForceOnline bool
