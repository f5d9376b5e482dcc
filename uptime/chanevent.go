// Package uptime turns a node's historical online/offline event log into
// the per-attempt success probability the hop simulator draws against
// (§3 "a per-node failure probability derived from historical uptime",
// §4.4 step 3). It is adapted from the teacher's chanfitness subsystem,
// which tracks peer connectivity for channel-close decisions; here the
// same online-period bookkeeping estimates a forwarding node's uptime
// fraction over a simulation window instead.
package uptime

import (
	"fmt"
	"time"

	"github.com/lightningnetwork/lnsim/graph"
)

type eventType int

const (
	nodeOnlineEvent eventType = iota
	nodeOfflineEvent
)

// String provides string representations of node events.
func (e eventType) String() string {
	switch e {
	case nodeOnlineEvent:
		return "node_online"
	case nodeOfflineEvent:
		return "node_offline"
	}

	return "unknown"
}

// nodeEvent is a single timestamped online/offline observation for a node.
type nodeEvent struct {
	timestamp time.Time
	eventType eventType
}

// NodeEventLog stores every online/offline event recorded for one node
// across however much history was supplied, and derives uptime fractions
// from it on demand.
type NodeEventLog struct {
	// Node is the id of the node this log tracks.
	Node graph.NodeID

	events []*nodeEvent

	// now returns the current time; supplied as a field rather than
	// calling time.Now directly so deterministic unit tests can fix it.
	now func() time.Time

	firstSeen time.Time
	lastSeen  time.Time
}

// NewNodeEventLog creates an empty event log for node, using now to resolve
// "the present" whenever a record is evaluated relative to an open-ended
// final period.
func NewNodeEventLog(node graph.NodeID, now func() time.Time) *NodeEventLog {
	return &NodeEventLog{Node: node, now: now}
}

// Add appends one timestamped event to the log. Events must be supplied in
// non-decreasing timestamp order.
func (e *NodeEventLog) Add(timestamp time.Time, online bool) {
	et := nodeOfflineEvent
	if online {
		et = nodeOnlineEvent
	}

	e.events = append(e.events, &nodeEvent{timestamp: timestamp, eventType: et})
	if e.firstSeen.IsZero() {
		e.firstSeen = timestamp
	}
	e.lastSeen = timestamp

	log.Debugf("Node %v recording event: %v", e.Node, et)
}

// onlinePeriod represents a period of time over which a node was online.
type onlinePeriod struct {
	start, end time.Time
}

// getOnlinePeriods returns every period the log recorded the node as
// online. Online periods are defined as an online event terminated by an
// offline event. If the log ends on an online event, a final period
// running to e.now() is appended. The log is expected to be ordered by
// ascending timestamp; consecutive duplicate events of the same type are
// tolerated.
func (e *NodeEventLog) getOnlinePeriods() []*onlinePeriod {
	if len(e.events) == 0 {
		return nil
	}

	var (
		previousEvent *nodeEvent
		onlinePeriods []*onlinePeriod
	)

	for _, event := range e.events {
		switch event.eventType {
		case nodeOnlineEvent:
			if previousEvent == nil {
				previousEvent = event
				break
			}
			if previousEvent.eventType == nodeOfflineEvent {
				previousEvent = event
			}

		case nodeOfflineEvent:
			if previousEvent == nil {
				previousEvent = event
				break
			}
			if previousEvent.eventType == nodeOnlineEvent {
				onlinePeriods = append(onlinePeriods, &onlinePeriod{
					start: previousEvent.timestamp,
					end:   event.timestamp,
				})
				previousEvent = event
			}
		}
	}

	if previousEvent.eventType == nodeOfflineEvent {
		return onlinePeriods
	}

	finalEvent := &onlinePeriod{start: previousEvent.timestamp, end: e.now()}
	return append(onlinePeriods, finalEvent)
}

// Uptime calculates the total time this node was online over the inclusive
// range [start, end].
func (e *NodeEventLog) Uptime(start, end time.Time) (time.Duration, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("end time: %v before start time: %v", end, start)
	}
	if end.IsZero() {
		return 0, fmt.Errorf("zero end time")
	}

	var total time.Duration

	for _, p := range e.getOnlinePeriods() {
		if p.end.Before(start) {
			continue
		}
		if p.start.After(end) {
			break
		}

		periodStart, periodEnd := p.start, p.end
		if periodStart.Before(start) {
			periodStart = start
		}
		if periodEnd.After(end) {
			periodEnd = end
		}

		total += periodEnd.Sub(periodStart)
	}

	return total, nil
}
