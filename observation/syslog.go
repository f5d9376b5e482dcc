package observation

import "github.com/btcsuite/btclog"

// log is this package's subsystem logger, following the teacher's
// per-package logging convention. Named syslog.go rather than log.go since
// this package's own Log type already owns that name for its accumulated
// per-payment observation record.
var log = btclog.Disabled

// UseLogger sets the package-wide logger.
func UseLogger(logger btclog.Logger) {
	log = logger
}
