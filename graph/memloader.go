package graph

// MemLoader is an in-memory Loader, used directly by package topology once
// it has normalized either JSON dialect, and by tests that construct small
// fixture graphs (e.g. the §8 triangle-graph scenario) without round
// tripping through JSON.
type MemLoader struct {
	NodeIDs     []NodeID
	ChannelList []Channel
}

// Nodes implements Loader.
func (m *MemLoader) Nodes() ([]NodeID, error) {
	return m.NodeIDs, nil
}

// Channels implements Loader.
func (m *MemLoader) Channels() ([]Channel, error) {
	return m.ChannelList, nil
}
