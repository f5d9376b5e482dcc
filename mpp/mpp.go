// Package mpp implements the §4.5 MPP splitter: when a single-path attempt
// fails and splitting is enabled, the remaining amount is recursively
// halved until every resulting shard settles or hits the minimum shard
// floor. Recursion is modeled as an explicit work stack (fn.List) rather
// than Go call-stack recursion, so a payment that fragments into many tiny
// shards never risks the recursion depth the teacher's own codebase avoids
// in its CPU-bound packet-processing loops.
package mpp

import (
	"math/rand"

	"github.com/lightningnetwork/lnsim/fn"
	"github.com/lightningnetwork/lnsim/graph"
	"github.com/lightningnetwork/lnsim/hopsim"
	"github.com/lightningnetwork/lnsim/lnsimerr"
	"github.com/lightningnetwork/lnsim/msat"
	"github.com/lightningnetwork/lnsim/observation"
	"github.com/lightningnetwork/lnsim/oracle"
	"github.com/lightningnetwork/lnsim/pathfind"
)

// ShardResult is the outcome of attempting one shard amount, possibly
// across several candidate paths.
type ShardResult struct {
	Amount  msat.MilliSatoshi
	Settled bool
	Attempts []*hopsim.Result
}

// Result is the payment-level verdict: Success only once every leaf shard
// the splitter produced has settled (§4.5 Termination).
type Result struct {
	Success bool
	Shards  []ShardResult
	Log     *observation.Log
}

// Params bundles the knobs the splitter needs beyond the pathfinder's own
// Params.
type Params struct {
	Path     pathfind.Params
	MinShard msat.MilliSatoshi
	Split    bool
}

// Run attempts to deliver amount from src to dst. It always tries the full
// amount as a single path first; if that fails and splitting is enabled and
// amount is at least 2*MinShard, it falls back to recursive halving
// (§4.5). rng is the payment-scoped RNG shared by every attempt and shard,
// keeping the whole payment deterministic under one seed.
func Run(
	g *graph.Graph,
	view *oracle.PaymentView,
	rng *rand.Rand,
	src, dst graph.Vertex,
	amount msat.MilliSatoshi,
	params Params,
) (*Result, error) {

	log.Debugf("mpp run %s -> %s for %d msat, split=%v", g.NodeID(src), g.NodeID(dst), amount, params.Split)

	obsLog := observation.NewLog()
	attemptIdx := 0

	whole, err := attemptShard(g, view, rng, src, dst, amount, params.Path, obsLog, &attemptIdx)
	if whole.Settled {
		return &Result{Success: true, Shards: []ShardResult{*whole}, Log: obsLog}, nil
	}

	if !params.Split || amount < 2*params.MinShard {
		return &Result{Success: false, Shards: []ShardResult{*whole}, Log: obsLog}, err
	}

	work := fn.NewList[msat.MilliSatoshi]()
	work.PushBack(ceilHalf(amount))
	work.PushBack(floorHalf(amount))

	var leaves []ShardResult
	success := true
	var splitErr error

	for work.Len() > 0 {
		node := work.Front()
		shardAmt := node.Value
		work.Remove(node)

		shard, shardErr := attemptShard(g, view, rng, src, dst, shardAmt, params.Path, obsLog, &attemptIdx)
		if shard.Settled {
			leaves = append(leaves, *shard)
			continue
		}

		if shardAmt >= 2*params.MinShard {
			// Halve again and keep going, depth-first.
			work.PushFront(floorHalf(shardAmt))
			work.PushFront(ceilHalf(shardAmt))
			continue
		}

		// Below the minimum shard: this leaf cannot be subdivided
		// further, so its failure propagates to the whole payment
		// (§4.5 Termination). Already-settled sibling shards keep
		// their balance mutations and observations; only the
		// reported verdict flips to Failure.
		leaves = append(leaves, *shard)
		success = false
		splitErr = lnsimerr.ErrShardTooSmall{
			Amount:   uint64(shardAmt),
			MinShard: uint64(params.MinShard),
		}
		_ = shardErr
		break
	}

	if success {
		splitErr = nil
	}

	return &Result{Success: success, Shards: leaves, Log: obsLog}, splitErr
}

func ceilHalf(a msat.MilliSatoshi) msat.MilliSatoshi {
	return (a + 1) / 2
}

func floorHalf(a msat.MilliSatoshi) msat.MilliSatoshi {
	return a / 2
}

// attemptShard tries up to params.CandidateCap distinct paths for amount,
// running the hop simulator on each until one settles or the candidate
// budget is exhausted (§4.5 Candidate-exhaustion).
func attemptShard(
	g *graph.Graph,
	view *oracle.PaymentView,
	rng *rand.Rand,
	src, dst graph.Vertex,
	amount msat.MilliSatoshi,
	pathParams pathfind.Params,
	log *observation.Log,
	attemptIdx *int,
) (*ShardResult, error) {

	result := &ShardResult{Amount: amount}

	paths, err := pathfind.FindPaths(g, view, src, dst, amount, pathParams)
	if err != nil {
		return result, err
	}

	for _, p := range paths {
		idx := *attemptIdx
		*attemptIdx++

		attempt := hopsim.Run(g, view, rng, p, src, dst, idx)
		log.RecordAttemptEdges(idx, attempt.TraversedEdges)
		for _, e := range attempt.Observations {
			log.Record(e)
		}

		result.Attempts = append(result.Attempts, attempt)

		if attempt.Success {
			result.Settled = true
			return result, nil
		}
	}

	return result, lnsimerr.ErrCapacityExhausted{
		Src: string(g.NodeID(src)), Dst: string(g.NodeID(dst)),
		Amount: uint64(amount), Attempts: len(paths),
	}
}
