// Package pathfind implements the §4.3 backwards label-setting search: a
// Dijkstra-style shortest path search run from destination to source, so
// that the amount each edge forwards — which depends on the fees charged by
// every hop after it — is known the moment that edge is relaxed. The
// teacher's own routing package solves the analogous problem forwards with
// a reversed cost graph (container/heap frontier, per-vertex labels); this
// package keeps that shape but threads a live forwarded-amount computation
// through every relaxation instead of a precomputed one, since here amounts
// are not fixed in advance.
package pathfind

import (
	"container/heap"
	"math"

	"golang.org/x/exp/slices"

	"github.com/lightningnetwork/lnsim/feemath"
	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/lnsimerr"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/oracle"
)

// Metric selects which quantity the search minimizes (§4.3).
type Metric int

const (
	MinFee Metric = iota
	MaxProb
)

// Defaults mirror §4.3's stated defaults.
const (
	DefaultCLTVLimit    = 1008
	DefaultMaxHops      = 20
	DefaultCandidateCap = 10
)

// Params configures one pathfinder invocation.
type Params struct {
	Metric       Metric
	CLTVLimit    uint32
	MaxHops      int
	CandidateCap int
}

// DefaultParams returns the §4.3 defaults for metric m.
func DefaultParams(m Metric) Params {
	return Params{
		Metric:       m,
		CLTVLimit:    DefaultCLTVLimit,
		MaxHops:      DefaultMaxHops,
		CandidateCap: DefaultCandidateCap,
	}
}

// Path is one candidate route, in source-to-destination order.
type Path struct {
	Edges   []graph.EdgeIndex
	Amounts []msat.MilliSatoshi
	Fee     msat.MilliSatoshi
	CLTV    uint32
}

// finalLabel is what the search records once a vertex is popped off the
// frontier for the first time: the best known way to route from this vertex
// onward to the destination.
type finalLabel struct {
	amount msat.MilliSatoshi
	cltv   uint32
	fee    msat.MilliSatoshi
	hops   int
	edge   graph.EdgeIndex
	hasNext bool
}

// item is one frontier entry: a candidate label for v, carrying everything
// needed both to order the heap and, once popped, to record v's finalLabel.
type item struct {
	v      graph.Vertex
	cost   float64
	cltv   uint32
	fee    msat.MilliSatoshi
	hops   int
	amount msat.MilliSatoshi
	edge   graph.EdgeIndex
	hasNext bool
	index  int
}

type frontier struct {
	items []*item
	less  func(a, b *item) bool
}

func (f *frontier) Len() int { return len(f.items) }
func (f *frontier) Less(i, j int) bool {
	return f.less(f.items[i], f.items[j])
}
func (f *frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.items[i].index = i
	f.items[j].index = j
}
func (f *frontier) Push(x any) {
	it := x.(*item)
	it.index = len(f.items)
	f.items = append(f.items, it)
}
func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	f.items = old[:n-1]
	return it
}

func lessFor(g *graph.Graph, metric Metric) func(a, b *item) bool {
	return func(a, b *item) bool {
		if a.cost != b.cost {
			return a.cost < b.cost
		}

		switch metric {
		case MaxProb:
			if a.fee != b.fee {
				return a.fee < b.fee
			}
			return a.hops < b.hops
		default: // MinFee
			if a.cltv != b.cltv {
				return a.cltv < b.cltv
			}
			return g.NodeID(a.v) < g.NodeID(b.v)
		}
	}
}

// FindPath runs one backwards search for the best src->dst path carrying
// destAmount to the destination, excluding any edge in excluded (used by
// FindPaths to produce successive candidates). excluded may be nil.
func FindPath(
	g *graph.Graph,
	view *oracle.PaymentView,
	src, dst graph.Vertex,
	destAmount msat.MilliSatoshi,
	params Params,
	excluded map[graph.EdgeIndex]bool,
) (*Path, error) {

	labels := make([]finalLabel, g.NodeCount())
	finalized := make([]bool, g.NodeCount())

	fr := &frontier{less: lessFor(g, params.Metric)}
	heap.Init(fr)
	heap.Push(fr, &item{v: dst, cost: 0, amount: destAmount})

	cltvDiscarded := false

	for fr.Len() > 0 {
		cur := heap.Pop(fr).(*item)
		if finalized[cur.v] {
			continue
		}
		finalized[cur.v] = true
		labels[cur.v] = finalLabel{
			amount:  cur.amount,
			cltv:    cur.cltv,
			fee:     cur.fee,
			hops:    cur.hops,
			edge:    cur.edge,
			hasNext: cur.hasNext,
		}

		if cur.v == src {
			break
		}
		if cur.hops >= params.MaxHops {
			continue
		}

		// Incoming edges into cur.v are found via cur.v's outgoing
		// edges' Reverse pairing rather than a separate inbound
		// index: graph.Build guarantees every directional edge has a
		// correctly paired Reverse, even when one side of a channel
		// was dropped as unroutable, so this never silently misses a
		// predecessor whose only surviving direction points at cur.v.
		for _, out := range g.OutEdges(cur.v) {
			edge := g.Edge(out)
			revIdx := edge.Reverse
			if excluded[revIdx] {
				continue
			}

			rev := g.Edge(revIdx)
			pred := rev.From
			if finalized[pred] {
				continue
			}
			// The destination may only appear as the final node
			// of the path; once popped it is marked finalized
			// above, so this also rejects it as an intermediary.

			// rev carries cur.amount (what must arrive at cur.v,
			// downstream fees included); pred must additionally
			// cover the fee cur.v charges for forwarding over the
			// next edge, which is rev's fee on cur.amount, matching
			// feemath.AccumulatePath.
			edgeAmount := cur.amount

			if !view.Feasible(revIdx, edgeAmount) {
				continue
			}

			cltv := cur.cltv + uint32(rev.CLTVDelta)
			if cltv > params.CLTVLimit {
				cltvDiscarded = true
				continue
			}

			edgeFee := feemath.Fee(rev.Policy, cur.amount)

			var cost float64
			switch params.Metric {
			case MaxProb:
				p := view.SuccessProbability(revIdx, edgeAmount)
				if p <= 0 {
					cost = math.Inf(1)
				} else {
					cost = cur.cost - math.Log(p)
				}
			default:
				cost = cur.cost + float64(edgeFee)
			}

			heap.Push(fr, &item{
				v:       pred,
				cost:    cost,
				cltv:    cltv,
				fee:     cur.fee + edgeFee,
				hops:    cur.hops + 1,
				amount:  cur.amount + edgeFee,
				edge:    revIdx,
				hasNext: true,
			})
		}
	}

	if !finalized[src] {
		if cltvDiscarded {
			return nil, lnsimerr.ErrCLTVExceeded{MaxCLTV: params.CLTVLimit}
		}
		return nil, lnsimerr.ErrNoPathFound{
			Src: string(g.NodeID(src)), Dst: string(g.NodeID(dst)),
			Amount: uint64(destAmount),
		}
	}

	return reconstruct(g, labels, src, dst, destAmount)
}

func reconstruct(g *graph.Graph, labels []finalLabel, src, dst graph.Vertex, destAmount msat.MilliSatoshi) (*Path, error) {
	var edgeIdx []graph.EdgeIndex

	cur := src
	for cur != dst {
		lbl := labels[cur]
		if !lbl.hasNext {
			return nil, lnsimerr.NewInvariantViolation(0, 0, len(edgeIdx), "pathfind: broken label chain before reaching destination")
		}

		edgeIdx = append(edgeIdx, lbl.edge)
		cur = g.Edge(lbl.edge).To
	}

	edges := make([]*graph.Edge, len(edgeIdx))
	for i, idx := range edgeIdx {
		edges[i] = g.Edge(idx)
	}

	amounts, fee := feemath.AccumulatePath(edges, destAmount)

	return &Path{
		Edges:   edgeIdx,
		Amounts: amounts,
		Fee:     fee,
		CLTV:    labels[src].cltv,
	}, nil
}

// FindPaths returns up to params.CandidateCap distinct candidate paths, most
// preferred first, by repeating FindPath while excluding every edge used by
// a previously returned path (§4.3 "resumed to produce the next-best
// loop-free path ... by re-inserting alternative predecessors"). This is a
// deliberately simplified stand-in for full Yen-style k-shortest-path
// resumption: it guarantees each candidate is structurally distinct from
// its predecessors without tracking per-vertex alternate-predecessor state,
// which the spec leaves as an implementation choice.
func FindPaths(
	g *graph.Graph,
	view *oracle.PaymentView,
	src, dst graph.Vertex,
	destAmount msat.MilliSatoshi,
	params Params,
) ([]*Path, error) {

	excluded := make(map[graph.EdgeIndex]bool)
	var paths []*Path
	var lastErr error

	for len(paths) < params.CandidateCap {
		p, err := FindPath(g, view, src, dst, destAmount, params, excluded)
		if err != nil {
			lastErr = err
			break
		}

		paths = append(paths, p)
		for _, e := range p.Edges {
			excluded[e] = true
		}
	}

	if len(paths) == 0 {
		log.Debugf("no candidate paths %s -> %s for %d msat", g.NodeID(src), g.NodeID(dst), destAmount)
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, lnsimerr.ErrNoPathFound{
			Src: string(g.NodeID(src)), Dst: string(g.NodeID(dst)),
			Amount: uint64(destAmount),
		}
	}

	// FindPath already returns its best candidate first, but successive
	// candidates are only as good as whatever the exclusion set left
	// behind: nothing guarantees the second call costs less than the
	// third. Under the fee metric, re-sort the whole batch so callers can
	// rely on paths[0] being the cheapest (by fee, then CLTV, then hop
	// count) regardless of discovery order. Under MaxProb the batch keeps
	// discovery order, so each search's most probable path comes first.
	if params.Metric != MaxProb {
		slices.SortFunc(paths, func(a, b *Path) bool {
			if a.Fee != b.Fee {
				return a.Fee < b.Fee
			}
			if a.CLTV != b.CLTV {
				return a.CLTV < b.CLTV
			}
			return len(a.Edges) < len(b.Edges)
		})
	}

	log.Tracef("found %d candidate paths %s -> %s for %d msat", len(paths), g.NodeID(src), g.NodeID(dst), destAmount)

	return paths, nil
}
