package uptime

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lightningnetwork/lnsim/graph"
)

// historyEvent is one line of the optional uptime history file: a
// timestamped online/offline observation for a single node.
type historyEvent struct {
	Node      string    `json:"node"`
	Timestamp time.Time `json:"timestamp"`
	Online    bool      `json:"online"`
}

// LoadHistory parses a JSON array of historyEvents and builds an Estimator
// from them, following the same "whole file, one document" convention as
// package topology and package centrality use for their own external
// inputs. Events need not already be sorted per node; Estimator.Record
// only requires non-decreasing order within a single node's own sequence,
// so the input as a whole is sorted by timestamp first.
func LoadHistory(r io.Reader, now func() time.Time) (*Estimator, error) {
	var events []historyEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding uptime history: %w", err)
	}

	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Timestamp.Before(events[j-1].Timestamp); j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}

	est := NewEstimator(now)
	for _, e := range events {
		est.Record(graph.NodeID(e.Node), e.Timestamp, e.Online)
	}

	return est, nil
}
