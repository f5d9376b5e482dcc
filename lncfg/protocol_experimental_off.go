//go:build !dev
// +build !dev

package lncfg

// ExperimentalConfig houses simulator knobs that are only compiled in under
// the dev build tag. In a non-dev build it carries no fields, so the
// node-offline draw model can never be silently overridden in a release
// binary.
type ExperimentalConfig struct {
}

// OfflineDrawsDisabled reports whether the node-offline draw override is on.
func (e ExperimentalConfig) OfflineDrawsDisabled() bool {
	return false
}
