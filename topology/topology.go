// Package topology parses the two JSON dialects the simulator accepts for
// its input channel graph (§6 "Topology input (consumed)") into the
// dialect-agnostic graph.Loader shape the core builds from.
package topology

import (
	"fmt"
	"io"

	"github.com/lightningnetwork/lnsim/graph"
)

// Dialect selects which JSON shape Load expects.
type Dialect string

const (
	DialectLND Dialect = "lnd"
	DialectLNR Dialect = "lnr"
)

// Load parses r according to dialect and builds the resulting Graph.
func Load(dialect Dialect, r io.Reader) (*graph.Graph, graph.LoadStats, error) {
	var loader graph.Loader
	var err error

	switch dialect {
	case DialectLND:
		loader, err = ParseLND(r)
	case DialectLNR:
		loader, err = ParseLNR(r)
	default:
		return nil, graph.LoadStats{}, fmt.Errorf("topology: unknown graph source %q", dialect)
	}
	if err != nil {
		return nil, graph.LoadStats{}, err
	}

	return graph.Build(loader)
}
