//go:build dev
// +build dev

package lncfg

// ExperimentalConfig houses simulator knobs that are only compiled in under
// the dev build tag, mirroring the teacher's ExperimentalProtocol pattern
// for gating unstable features behind a build flag rather than a runtime
// one. Currently this is limited to an override for the node-offline draw
// model while that model is still being tuned.
type ExperimentalConfig struct {
	DisableOfflineDraws bool `long:"disable-offline-draws" description:"dev: force every node to accept forwarding, overriding any uptime-derived successProb"`
}

// OfflineDrawsDisabled reports whether the node-offline draw override is on.
func (e ExperimentalConfig) OfflineDrawsDisabled() bool {
	return e.DisableOfflineDraws
}
